package main

import (
	"context"
	"drawbattle/auth"
	"drawbattle/config"
	"drawbattle/crypto"
	"drawbattle/game"
	"drawbattle/logger"
	"drawbattle/migrations"
	"drawbattle/storage"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CreateServer builds the router with the origin allow-list and CORS in front
// of every route except /health and the public routes.
func CreateServer(allowedOrigins []string, public ...func(gin.IRouter)) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })
	for _, register := range public {
		register(r)
	}

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	logger.Setup(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := migrations.Migrate(cfg.PostgresURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// Dependencies
	pgRepo, err := storage.NewPostgresRepo(context.Background(), cfg.PostgresURL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot reach postgres")
	}
	defer pgRepo.Close()

	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(cfg.JWTKey, cfg.TokenMaxAge)

	authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService, tokenManager.MaxAge(), logger.Component("auth"))

	idGen := game.NewIdGen()
	tickerGen := game.NewTickerGen()
	wg := sync.WaitGroup{}
	lobby := game.NewLobby(&idGen, &tickerGen, cfg.Session.FlushInterval, &wg, logger.Component("lobby"))

	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	gameHandler := game.NewGameHandler(lobby, pgRepo, pgRepo, cfg.Session, cfg.Player, logger.Component("game"))

	r := CreateServer(cfg.AllowedOrigins, func(r gin.IRouter) {
		// <img> requests carry no Origin
		r.GET("/sessions/:id/canvas.png", gameHandler.CanvasHandler)
	})

	authHandler.RegisterRoutes(r.Group("/auth"))
	{
		sessions := r.Group("/sessions")
		sessions.Use(authHandler.RequireAuthMiddleware(cfg.TrollTime))

		sessions.POST("", gameHandler.CreateSessionHandler)
		sessions.GET("", gameHandler.ListSessionsHandler)
		sessions.GET("/:id/join", gameHandler.JoinSessionHandler)
		sessions.GET("/:id/drawings", gameHandler.DrawingsHandler)
		sessions.GET("/:id/drawings/:drawingId", gameHandler.DrawingImageHandler)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("addr", cfg.ListenAddr).Msg("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, os.Interrupt)
	<-sigCh
	log.Info().Msg("SIGTERM or SIGINT received, closing sessions before shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// hijacked websockets are not covered by Shutdown
	lobby.CloseAll()
	wg.Wait()
	log.Info().Msg("shutting down now")
}

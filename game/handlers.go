package game

import (
	"bytes"
	"context"
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/transport"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	joinTimeout  = 5 * time.Second
	minCanvasLen = 16
	maxCanvasLen = 1024
)

type GameHandler struct {
	lobby      Lobby
	userGetter UserGetter
	drawings   DrawingStore
	defaults   SessionConfig
	limits     PlayerLimits
	upgrader   websocket.Upgrader
	logger     zerolog.Logger
}

func NewGameHandler(lobby Lobby, userGetter UserGetter, drawings DrawingStore, defaults SessionConfig, limits PlayerLimits, logger zerolog.Logger) *GameHandler {
	return &GameHandler{
		lobby:      lobby,
		userGetter: userGetter,
		drawings:   drawings,
		defaults:   defaults,
		limits:     limits,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origins are checked by the router middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

type createSessionRequest struct {
	MaxPlayers int  `json:"maxPlayers"`
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Private    bool `json:"private"`
}

func (h *GameHandler) sessionConfig(req createSessionRequest) (SessionConfig, error) {
	cfg := h.defaults
	cfg.Private = req.Private

	if req.MaxPlayers != 0 {
		if req.MaxPlayers < 1 {
			return cfg, errors.New("maxPlayers must be at least 1")
		}
		if req.MaxPlayers > len(cfg.Palette) {
			return cfg, fmt.Errorf("maxPlayers cannot exceed %d", len(cfg.Palette))
		}
		cfg.MaxPlayers = req.MaxPlayers
	}

	for _, side := range []struct {
		name  string
		value int
		dst   *int
	}{
		{"width", req.Width, &cfg.Width},
		{"height", req.Height, &cfg.Height},
	} {
		if side.value == 0 {
			continue
		}
		if side.value < minCanvasLen {
			return cfg, fmt.Errorf("%s must be at least %d", side.name, minCanvasLen)
		}
		if side.value > maxCanvasLen {
			return cfg, fmt.Errorf("%s cannot exceed %d", side.name, maxCanvasLen)
		}
		*side.dst = side.value
	}
	return cfg, nil
}

func (h *GameHandler) CreateSessionHandler(ctx *gin.Context) {
	if ctx.GetString("id") == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	req := createSessionRequest{}
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-request-format"})
			return
		}
	}

	cfg, err := h.sessionConfig(req)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := NewSession(cfg, h.drawings, h.logger)
	id, err := h.lobby.AddAndRunSession(ctx.Request.Context(), s)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to register session")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *GameHandler) ListSessionsHandler(ctx *gin.Context) {
	sessions := h.lobby.GetPublicSessions(ctx.Request.Context())
	if sessions == nil {
		sessions = []SessionDescription{}
	}
	ctx.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *GameHandler) JoinSessionHandler(ctx *gin.Context) {
	userId := ctx.GetString("id")
	if userId == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	sessionId := ctx.Param("id")

	s, err := h.lobby.GetSession(ctx.Request.Context(), sessionId)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrSessionNotFound.Error()})
		return
	}

	user, err := h.userGetter.GetUserById(ctx.Request.Context(), userId)
	if errors.Is(err, domain.ErrUserNotFound) {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user-not-found"})
		return
	}
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed-to-get-user"})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	socket := transport.NewGorillaWebSocketWrapper(conn, FrameLimit(s.Size()))

	p := NewPlayer(user.Id, user.Username, h.limits, h.logger)
	jreq := NewSessionJoinRequest(sessionId, p)

	// the request context dies with this handler, the player outlives it
	joinCtx, cancel := context.WithTimeout(context.Background(), joinTimeout)
	defer cancel()
	h.lobby.ForwardJoinRequest(joinCtx, jreq)

	select {
	case err := <-jreq.errChan:
		if err != nil {
			socket.Close(err.Error())
			return
		}
	case <-joinCtx.Done():
		socket.Close("join-timeout")
		// a late acceptance still needs a reader to notice the dead socket
		go func() {
			if err := <-jreq.errChan; err == nil {
				p.ReadPump(socket)
			}
		}()
		return
	}

	go p.WritePump(socket)
	go p.ReadPump(socket)
}

func (h *GameHandler) CanvasHandler(ctx *gin.Context) {
	s, err := h.lobby.GetSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": ErrSessionNotFound.Error()})
		return
	}

	maxSide, ok := sizeQuery(ctx)
	if !ok {
		return
	}

	img := s.CanvasPreview()
	if img == nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "canvas-not-ready"})
		return
	}

	ctx.Header("Cache-Control", "no-store")
	h.writePNG(ctx, img, maxSide)
}

// sizeQuery reads the optional ?size= thumbnail bound. It answers 400 itself
// when the value is bad.
func sizeQuery(ctx *gin.Context) (int, bool) {
	q := ctx.Query("size")
	if q == "" {
		return 0, true
	}
	maxSide, err := strconv.Atoi(q)
	if err != nil || maxSide <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid-size"})
		return 0, false
	}
	return maxSide, true
}

func (h *GameHandler) writePNG(ctx *gin.Context, img *image.NRGBA, maxSide int) {
	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf, img, maxSide); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode png")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

type drawingSummary struct {
	Id        string          `json:"id"`
	PlayerId  domain.PlayerId `json:"playerId"`
	UserId    string          `json:"userId"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (h *GameHandler) DrawingsHandler(ctx *gin.Context) {
	drawings, err := h.drawings.ListSessionDrawings(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list drawings")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed-to-list-drawings"})
		return
	}
	out := make([]drawingSummary, 0, len(drawings))
	for _, d := range drawings {
		out = append(out, drawingSummary{
			Id:        d.Id,
			PlayerId:  d.PlayerId,
			UserId:    d.UserId,
			Width:     d.Width,
			Height:    d.Height,
			CreatedAt: d.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"drawings": out})
}

// DrawingImageHandler renders a stored drawing of the session as a PNG.
func (h *GameHandler) DrawingImageHandler(ctx *gin.Context) {
	maxSide, ok := sizeQuery(ctx)
	if !ok {
		return
	}

	d, err := h.drawings.GetDrawing(ctx.Request.Context(), ctx.Param("drawingId"))
	switch {
	case errors.Is(err, domain.ErrDrawingNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": domain.ErrDrawingNotFound.Error()})
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to load drawing")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	case d.SessionId != ctx.Param("id"):
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": domain.ErrDrawingNotFound.Error()})
		return
	}

	r := canvas.NewRaster(d.Width, d.Height)
	if err := r.ImportCompressed(d.Texture); err != nil {
		h.logger.Error().Err(err).Str("drawing", d.Id).Msg("stored drawing is unreadable")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unknown-error"})
		return
	}
	h.writePNG(ctx, r.Image(), maxSide)
}

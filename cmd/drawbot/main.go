// Command drawbot joins a drawbattle session as a headless player. It
// scribbles on the lobby board, readies up, draws something and submits it.
package main

import (
	"context"
	"drawbattle/canvas"
	"drawbattle/client"
	"drawbattle/domain"
	"drawbattle/game"
	"drawbattle/logger"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		api      = flag.String("api", "http://localhost:5000", "server base url")
		origin   = flag.String("origin", "http://localhost:5173", "Origin header sent to the server")
		username = flag.String("user", "drawbot", "username")
		password = flag.String("password", "drawbot-password", "password")
		signup   = flag.Bool("signup", false, "create the account first")
		session  = flag.String("session", "", "session to join, a new one is created when empty")
		strokes  = flag.Int("strokes", 5, "strokes per phase")
		radius   = flag.Int("radius", 4, "lobby brush radius, must match the server")
		debug    = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()
	logger.Setup(*debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newAPIClient(*api, *origin)
	if err := c.authenticate(ctx, *username, *password, *signup); err != nil {
		log.Fatal().Err(err).Msg("authentication failed")
	}

	id := *session
	if id == "" {
		var err error
		if id, err = c.createSession(ctx, createSessionRequest{}); err != nil {
			log.Fatal().Err(err).Msg("cannot create session")
		}
		log.Info().Str("session", id).Msg("session created")
	}

	cfg := client.DefaultConfig()
	cfg.LobbyBrushRadius = *radius
	cfg.Logger = logger.Component("peer")
	peer, err := client.Dial(ctx, *api, id, c.header(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot join")
	}

	runErr := make(chan error, 1)
	go func() { runErr <- peer.Run(ctx) }()

	bot := &bot{peer: peer, strokes: *strokes}
	go func() {
		if err := bot.play(ctx); err != nil {
			log.Error().Err(err).Msg("bot gave up")
			stop()
		}
	}()

	if err := <-runErr; err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("connection lost")
		os.Exit(1)
	}
}

type bot struct {
	peer    *client.Peer
	strokes int
}

func (b *bot) play(ctx context.Context) error {
	select {
	case <-b.peer.Joined():
	case <-ctx.Done():
		return ctx.Err()
	}
	log.Info().Int32("player", int32(b.peer.Id())).Msg("seated")

	// stale notifications must not replay a phase
	handled := domain.Phase(-1)
	for {
		if phase := b.peer.Phase(); phase != handled {
			handled = phase
			if err := b.act(phase); err != nil {
				return err
			}
		}

		select {
		case <-b.peer.Phases():
		case <-ctx.Done():
			return nil
		}
	}
}

func (b *bot) act(phase domain.Phase) error {
	switch phase {
	case domain.PhaseLobby:
		if err := b.scribble(); err != nil {
			return err
		}
		return b.peer.RequestReady()
	case domain.PhaseDrawing:
		if err := b.draw(); err != nil {
			return err
		}
		if err := b.peer.CompleteDrawing(); err != nil {
			return err
		}
		log.Info().Msg("drawing submitted")
	default:
		log.Info().Stringer("phase", phase).Msg("nothing to do, idling")
	}
	return nil
}

func (b *bot) randomPoint() canvas.Point {
	w, h := b.peer.Size()
	return canvas.Point{X: rand.Float64() * float64(w), Y: rand.Float64() * float64(h)}
}

// walk drags the pointer along a short random path.
func (b *bot) walk(down func(canvas.Point) error, move func(canvas.Point) error) error {
	at := b.randomPoint()
	if err := down(at); err != nil {
		return err
	}
	for range 8 {
		next := b.randomPoint()
		at = canvas.Point{X: (at.X + next.X) / 2, Y: (at.Y + next.Y) / 2}
		if err := move(at); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (b *bot) scribble() error {
	for range b.strokes {
		if err := b.walk(b.peer.LobbyPointerDown, b.peer.LobbyPointerMove); err != nil {
			return err
		}
		b.peer.LobbyPointerUp()
	}
	return nil
}

func (b *bot) draw() error {
	colors := append([]canvas.Color{canvas.Black, canvas.Red}, game.DefaultPalette...)
	for range b.strokes {
		if err := b.peer.SetColor(colors[rand.IntN(len(colors))]); err != nil {
			return err
		}
		if err := b.peer.SetBrushSize(1 + rand.IntN(6)); err != nil {
			return err
		}
		if err := b.walk(b.peer.DrawPointerDown, b.peer.DrawPointerMove); err != nil {
			return err
		}
		b.peer.DrawPointerUp()
	}
	return nil
}

// Package client is a headless peer of a drawbattle session. It keeps its own
// replicas of the lobby board and of the private drawing, and speaks the
// same rpc frames as the browser clients.
package client

import (
	"context"
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/game"
	"drawbattle/rpc"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Conn is the transport a peer runs on. transport.Conn satisfies it.
type Conn interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Close(reason string)
}

type Config struct {
	// Board settings. They must match the server's or replicas diverge.
	LobbyBrushRadius int
	BrushSpacing     float64
	Palette          game.Palette
	// DrawSize is the initial brush size of the private drawing.
	DrawSize int
	// DrawRate and DrawBurst pace outgoing Draw calls. Servers disconnect
	// peers going over their own limit, so these stay well under it.
	DrawRate  rate.Limit
	DrawBurst int
	// LegacyRecompressSnapshots mirrors the server flag of the same name.
	LegacyRecompressSnapshots bool
	Logger                    zerolog.Logger
}

func DefaultConfig() Config {
	cfg := game.DefaultSessionConfig()
	limits := game.DefaultPlayerLimits()
	return Config{
		LobbyBrushRadius: cfg.LobbyBrushRadius,
		BrushSpacing:     cfg.BrushSpacing,
		Palette:          cfg.Palette,
		DrawSize:         4,
		DrawRate:         limits.DrawRate / 2,
		DrawBurst:        limits.DrawBurst / 2,
		Logger:           zerolog.Nop(),
	}
}

// Peer is one player's view of a session. Its pointer and ready methods may be
// called from any goroutine while Run consumes the connection.
type Peer struct {
	cfg      Config
	conn     Conn
	registry *rpc.Registry
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc

	drawMu   sync.Mutex
	drawPace *rate.Limiter

	mu        sync.Mutex
	id        domain.PlayerId
	sessionId string
	phase     domain.Phase
	lobby     *game.LobbyCanvas
	scribble  *canvas.Stroker
	drawing   *canvas.Raster
	pen       *canvas.Stroker
	dots      []domain.DotState
	ready     bool
	submitted bool

	joined     chan struct{}
	joinedOnce sync.Once
	phases     chan domain.Phase
}

func New(conn Conn, cfg Config) *Peer {
	if len(cfg.Palette) == 0 {
		cfg.Palette = game.DefaultPalette
	}
	if cfg.DrawRate <= 0 {
		cfg.DrawRate = rate.Inf
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Peer{
		cfg:      cfg,
		conn:     conn,
		registry: rpc.NewRegistry(rpc.RoleClient),
		logger:   cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
		drawPace: rate.NewLimiter(cfg.DrawRate, max(cfg.DrawBurst, 1)),
		dots:     make([]domain.DotState, len(cfg.Palette)),
		joined:   make(chan struct{}),
		phases:   make(chan domain.Phase, 8),
	}

	p.registry.Register(rpc.IdWelcome, p.handleWelcome)
	p.registry.Register(rpc.IdDraw, p.handleDraw)
	p.registry.Register(rpc.IdSendFullTexture, p.handleFullTexture)
	p.registry.Register(rpc.IdUpdateDot, p.handleUpdateDot)
	p.registry.Register(rpc.IdChangePhase, p.handleChangePhase)
	p.registry.Register(rpc.IdPlayerLeft, p.handlePlayerLeft)
	return p
}

// Run applies incoming frames until the connection fails or ctx is done.
// Strokes still being paced out are abandoned when it returns.
func (p *Peer) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { p.conn.Close("") })
	defer stop()
	defer p.cancel()

	for {
		data, err := p.conn.Read()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		c, err := rpc.DecodeCall(data)
		if err != nil {
			p.logger.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		p.mu.Lock()
		err = p.registry.Dispatch(c)
		p.mu.Unlock()
		if err != nil {
			p.logger.Warn().Err(err).Stringer("rpc", c.Id).Msg("call not applied")
		}
	}
}

// Joined is closed once the server has assigned this peer a slot.
func (p *Peer) Joined() <-chan struct{} {
	return p.joined
}

// Phases delivers every phase change. Changes are dropped when nobody reads.
func (p *Peer) Phases() <-chan domain.Phase {
	return p.phases
}

func (p *Peer) Id() domain.PlayerId {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *Peer) SessionId() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionId
}

func (p *Peer) Phase() domain.Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Size is the board size announced by the server, zero before joining.
func (p *Peer) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawing == nil {
		return 0, 0
	}
	return p.drawing.Width(), p.drawing.Height()
}

func (p *Peer) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *Peer) Dots() []domain.DotState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.DotState(nil), p.dots...)
}

// LobbyExport returns a copy of the lobby board bytes, nil before joining.
func (p *Peer) LobbyExport() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lobby == nil {
		return nil
	}
	return p.lobby.Raster().Export()
}

// DrawingExport returns a copy of the private drawing, nil before joining.
func (p *Peer) DrawingExport() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawing == nil {
		return nil
	}
	return p.drawing.Export()
}

func (p *Peer) send(receivers rpc.Receivers, msg rpc.Message) error {
	return p.conn.Write(rpc.NewCall(receivers, msg).Encode())
}

func (p *Peer) handleWelcome(_ domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.Welcome)
	if p.lobby != nil {
		p.logger.Warn().Err(ErrUnexpectedWelcome).Msg("ignoring second welcome")
		return
	}
	w, h := int(m.Width), int(m.Height)
	p.id = m.PlayerId
	p.sessionId = m.SessionId
	p.phase = m.Phase
	p.lobby = game.NewLobbyCanvas(w, h, p.cfg.LobbyBrushRadius, p.cfg.BrushSpacing, p.cfg.Palette)
	p.drawing = canvas.NewRaster(w, h)

	scribble, err := p.lobby.Stroker(m.PlayerId)
	if err != nil {
		p.logger.Error().Err(err).Msg("no lobby ink for this slot")
	} else {
		p.scribble = scribble
	}
	p.pen = canvas.NewStroker(canvas.NewBrush(p.drawing, p.cfg.BrushSpacing), canvas.Black, p.cfg.DrawSize)

	p.logger = p.logger.With().Str("session", m.SessionId).Int32("player", int32(m.PlayerId)).Logger()
	p.logger.Info().Stringer("phase", m.Phase).Msg("joined session")
	p.joinedOnce.Do(func() { close(p.joined) })
}

func (p *Peer) handleDraw(from domain.PlayerId, msg rpc.Message) {
	if p.lobby == nil {
		return
	}
	if err := p.lobby.ApplyDraw(msg.(rpc.Draw)); err != nil {
		p.logger.Warn().Err(err).Int32("from", int32(from)).Msg("draw not applied")
	}
}

func (p *Peer) handleFullTexture(from domain.PlayerId, msg rpc.Message) {
	if p.lobby == nil {
		return
	}
	m := msg.(rpc.SendFullTexture)
	if err := p.lobby.ApplySnapshot(m.Texture, p.cfg.LegacyRecompressSnapshots); err != nil {
		p.logger.Warn().Err(err).Int32("from", int32(from)).Msg("snapshot ignored")
	}
}

func (p *Peer) handleUpdateDot(_ domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.UpdateDot)
	if m.PlayerIndex < 0 || int(m.PlayerIndex) >= len(p.dots) {
		return
	}
	p.dots[m.PlayerIndex] = m.State
}

func (p *Peer) handlePlayerLeft(_ domain.PlayerId, msg rpc.Message) {
	i := int(msg.(rpc.PlayerLeft).PlayerId) - 1
	if i >= 0 && i < len(p.dots) {
		p.dots[i] = domain.DotEmpty
	}
}

func (p *Peer) handleChangePhase(_ domain.PlayerId, msg rpc.Message) {
	phase := msg.(rpc.ChangePhase).Phase
	p.phase = phase
	switch phase {
	case domain.PhaseLobby:
		p.ready = false
	case domain.PhaseDrawing:
		p.ready = false
		p.submitted = false
		if p.drawing != nil {
			p.drawing.Reset()
			p.pen.PointerUp()
		}
	}
	p.logger.Info().Stringer("phase", phase).Msg("phase changed")

	select {
	case p.phases <- phase:
	default:
	}
}

func (p *Peer) requirePhase(want domain.Phase) error {
	if p.lobby == nil {
		return ErrNotJoined
	}
	if p.phase != want {
		return fmt.Errorf("%w: %s", ErrWrongPhase, p.phase)
	}
	return nil
}

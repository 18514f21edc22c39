package game

import (
	"context"
	"drawbattle/rpc"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// closeRateLimited is the close reason sent to a peer over its budget.
const closeRateLimited = "rate-limited"

// PlayerLimits bounds what a single connection may cost the session. A peer
// going over a limit is disconnected; client.Peer paces itself under half of
// them.
type PlayerLimits struct {
	// DrawRate limits Draw calls, the bulk of lobby traffic. One Draw is sent
	// per brush stamp.
	DrawRate  rate.Limit
	DrawBurst int
	// ControlRate limits every other call.
	ControlRate  rate.Limit
	ControlBurst int
	// SendBuffer is the number of outgoing frames queued before the player
	// is considered too slow and dropped. It must hold a full replay.
	SendBuffer int
}

func DefaultPlayerLimits() PlayerLimits {
	return PlayerLimits{
		DrawRate:     600,
		DrawBurst:    600,
		ControlRate:  10,
		ControlBurst: 40,
		SendBuffer:   1024,
	}
}

// StrokeBurst is a Draw burst that fits a few strokes across the whole canvas
// diagonal at the given brush spacing.
func StrokeBurst(width, height int, spacing float64) int {
	if spacing <= 0 {
		spacing = 1
	}
	stamps := int(math.Ceil(math.Hypot(float64(width), float64(height))/spacing)) + 2
	return 4 * stamps
}

// frameOverhead covers the frame envelope and the PNG container around a
// texture.
const frameOverhead = 4096

// FrameLimit bounds one incoming frame on a width by height board. The
// largest one a client sends is a texture, which never beats raw RGBA.
func FrameLimit(width, height int) int64 {
	return int64(width)*int64(height)*4 + frameOverhead
}

type player struct {
	userId         string
	username       string
	session        Session
	drawLimiter    *rate.Limiter
	controlLimiter *rate.Limiter
	sendChan       chan []byte
	pingChan       chan struct{}
	logger         zerolog.Logger
	ctx            context.Context
	cancelCtx      context.CancelFunc
}

func NewPlayer(userId, username string, limits PlayerLimits, logger zerolog.Logger) *player {
	ctx, cancel := context.WithCancel(context.Background())
	return &player{
		userId:         userId,
		username:       username,
		drawLimiter:    rate.NewLimiter(limits.DrawRate, limits.DrawBurst),
		controlLimiter: rate.NewLimiter(limits.ControlRate, limits.ControlBurst),
		sendChan:       make(chan []byte, max(limits.SendBuffer, 1)),
		pingChan:       make(chan struct{}, 1),
		logger:         logger.With().Str("user", userId).Logger(),
		ctx:            ctx,
		cancelCtx:      cancel,
	}
}

func (p *player) UserId() string {
	return p.userId
}

func (p *player) Username() string {
	return p.username
}

func (p *player) SetSession(s Session) {
	p.session = s
}

// Send queues a frame for the write pump without blocking.
func (p *player) Send(frame []byte) error {
	select {
	case p.sendChan <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (p *player) Ping() {
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
}

func (p *player) CancelAndRelease() {
	p.cancelCtx()
}

func (p *player) allow(id rpc.Id) bool {
	if id == rpc.IdDraw {
		return p.drawLimiter.Allow()
	}
	return p.controlLimiter.Allow()
}

// ReadPump decodes incoming frames and forwards them to the session until
// the socket fails or the player is released.
func (p *player) ReadPump(socket WebsocketConnection) {
	defer func() {
		socket.Close("")
		p.session.RemoveMe(p.ctx, p)
	}()

	for {
		data, err := socket.Read()
		if err != nil {
			p.logger.Debug().Err(err).Msg("read pump stopped")
			return
		}

		// dropping a call would leave the sender's replica ahead of everyone
		// else's, so a peer over budget is cut off instead
		if id := rpc.PeekId(data); !p.allow(id) {
			p.logger.Warn().Stringer("rpc", id).Msg("rate limit exceeded, disconnecting")
			socket.Close(closeRateLimited)
			return
		}
		c, err := rpc.DecodeCall(data)
		if err != nil {
			p.logger.Warn().Err(err).Msg("dropping malformed frame")
			continue
		}

		select {
		case <-p.ctx.Done():
			return
		default:
		}
		p.session.Send(p.ctx, clientEnvelope{from: p, call: c})
	}
}

func (p *player) WritePump(socket WebsocketConnection) {
	defer socket.Close("")

	for {
		select {
		case <-p.ctx.Done():
			return
		case data := <-p.sendChan:
			if err := socket.Write(data); err != nil {
				p.logger.Debug().Err(err).Msg("write failed")
				p.session.RemoveMe(p.ctx, p)
				return
			}
		case _, ok := <-p.pingChan:
			if !ok {
				return
			}
			if err := socket.Ping(); err != nil {
				p.logger.Debug().Err(err).Msg("ping failed")
				p.session.RemoveMe(p.ctx, p)
				return
			}
		}
	}
}

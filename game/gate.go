package game

import (
	"drawbattle/rpc"
	"fmt"

	"github.com/rs/zerolog"
)

type GateConfig struct {
	// Name shows up in logs, e.g. "ready" or "drawing-complete".
	Name string
	Role rpc.Role
	// Expected is the count that opens the gate. A gate expecting nobody
	// never opens.
	Expected  int
	OnReached func()
	Logger    zerolog.Logger
}

// Gate counts participants that reported in and fires OnReached once the
// count matches the expected total. It fires at most once until Reset.
// Only the authoritative peer may move it.
type Gate struct {
	cfg   GateConfig
	count int
	fired bool
}

func NewGate(cfg GateConfig) *Gate {
	return &Gate{cfg: cfg}
}

func (g *Gate) ApplyDelta(delta int) error {
	if g.cfg.Role != rpc.RoleServer {
		g.cfg.Logger.Error().Str("gate", g.cfg.Name).Int("delta", delta).Msg("gate moved on a non authoritative peer")
		return fmt.Errorf("%w: gate %s", ErrNotAuthoritative, g.cfg.Name)
	}

	next := g.count + delta
	if next < 0 || next > g.cfg.Expected {
		g.cfg.Logger.Warn().
			Str("gate", g.cfg.Name).
			Int("count", g.count).
			Int("delta", delta).
			Int("expected", g.cfg.Expected).
			Msg("gate delta ignored")
		return fmt.Errorf("%w: %s would reach %d of %d", ErrGateOutOfRange, g.cfg.Name, next, g.cfg.Expected)
	}

	g.count = next
	g.evaluate()
	return nil
}

// SetExpected changes the target, for instance when a player leaves, and
// fires if the current count now matches it.
func (g *Gate) SetExpected(n int) {
	g.cfg.Expected = max(n, 0)
	g.count = min(g.count, g.cfg.Expected)
	g.evaluate()
}

func (g *Gate) Reset() {
	g.count = 0
	g.fired = false
}

func (g *Gate) Count() int {
	return g.count
}

func (g *Gate) Expected() int {
	return g.cfg.Expected
}

func (g *Gate) Fired() bool {
	return g.fired
}

func (g *Gate) evaluate() {
	if g.fired || g.cfg.Expected == 0 || g.count != g.cfg.Expected {
		return
	}
	g.fired = true
	g.cfg.Logger.Info().Str("gate", g.cfg.Name).Int("count", g.count).Msg("gate reached")
	if g.cfg.OnReached != nil {
		g.cfg.OnReached()
	}
}

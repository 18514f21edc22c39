package client

import (
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/game"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeEnd is one side of an in-memory websocket.
type pipeEnd struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

func pipe() (*pipeEnd, *pipeEnd) {
	ab, ba := make(chan []byte, 4096), make(chan []byte, 4096)
	done, once := make(chan struct{}), &sync.Once{}
	return &pipeEnd{in: ba, out: ab, done: done, once: once},
		&pipeEnd{in: ab, out: ba, done: done, once: once}
}

func (p *pipeEnd) Write(data []byte) error {
	select {
	case <-p.done:
		return io.ErrClosedPipe
	case p.out <- data:
		return nil
	}
}

func (p *pipeEnd) Read() ([]byte, error) {
	select {
	case data := <-p.in:
		return data, nil
	case <-p.done:
		return nil, io.EOF
	}
}

func (p *pipeEnd) Ping() error {
	return nil
}

func (p *pipeEnd) Close(reason string) {
	p.once.Do(func() { close(p.done) })
}

type table struct {
	t       *testing.T
	session game.Session
	cfg     game.SessionConfig
	limits  game.PlayerLimits
}

func newTable(t *testing.T) *table {
	cfg := game.DefaultSessionConfig()
	cfg.Width, cfg.Height = 48, 32
	cfg.LobbyBrushRadius = 2
	cfg.MaxPlayers = 3
	s := game.NewSession(cfg, nil, zerolog.Nop())
	s.SetId("table")
	go s.GameLoop()
	t.Cleanup(s.CloseAndRelease)
	return &table{t: t, session: s, cfg: cfg, limits: game.DefaultPlayerLimits()}
}

// seat connects a client peer the way JoinSessionHandler does.
func (tb *table) seat(name string) *Peer {
	serverEnd, clientEnd := pipe()
	pl := game.NewPlayer("user-"+name, name, tb.limits, zerolog.Nop())
	tb.session.RequestJoin(game.NewSessionJoinRequest("table", pl))
	go pl.WritePump(serverEnd)
	go pl.ReadPump(serverEnd)

	cfg := DefaultConfig()
	cfg.LobbyBrushRadius = tb.cfg.LobbyBrushRadius
	cfg.DrawRate, cfg.DrawBurst = tb.limits.DrawRate/2, tb.limits.DrawBurst/2
	peer := New(clientEnd, cfg)
	go peer.Run(tb.t.Context())

	select {
	case <-peer.Joined():
	case <-time.After(2 * time.Second):
		require.FailNow(tb.t, "never joined", name)
	}
	return peer
}

func waitPhase(t *testing.T, p *Peer, want domain.Phase) {
	t.Helper()
	for {
		select {
		case got := <-p.Phases():
			if got == want {
				return
			}
		case <-time.After(2 * time.Second):
			require.FailNow(t, "phase never reached", "%s", want)
		}
	}
}

func boardsMatch(peers ...*Peer) func() bool {
	return func() bool {
		first := peers[0].LobbyExport()
		for _, p := range peers[1:] {
			if !assert.ObjectsAreEqual(first, p.LobbyExport()) {
				return false
			}
		}
		return true
	}
}

func TestSession_EndToEnd(t *testing.T) {
	t.Parallel()
	tb := newTable(t)

	naruto := tb.seat("naruto")
	sasuke := tb.seat("sasuke")
	assert.Equal(t, domain.PlayerId(1), naruto.Id())
	assert.Equal(t, domain.PlayerId(2), sasuke.Id())

	require.NoError(t, naruto.LobbyPointerDown(canvas.Point{X: 3, Y: 3}))
	require.NoError(t, naruto.LobbyPointerMove(canvas.Point{X: 40, Y: 20}))
	naruto.LobbyPointerUp()
	require.NoError(t, sasuke.LobbyPointerDown(canvas.Point{X: 20, Y: 2}))
	require.NoError(t, sasuke.LobbyPointerMove(canvas.Point{X: 20, Y: 30}))
	sasuke.LobbyPointerUp()

	assert.Eventually(t, boardsMatch(naruto, sasuke), 2*time.Second, 5*time.Millisecond)

	// a latecomer replays the buffered history
	kakashi := tb.seat("kakashi")
	assert.Eventually(t, boardsMatch(naruto, sasuke, kakashi), 2*time.Second, 5*time.Millisecond)
	assert.NotEqual(t, make([]byte, 48*32*4), kakashi.LobbyExport())

	require.NoError(t, naruto.RequestReady())
	require.NoError(t, sasuke.RequestReady())
	require.NoError(t, sasuke.CancelReady())
	require.NoError(t, sasuke.RequestReady())
	assert.Eventually(t, func() bool {
		dots := kakashi.Dots()
		return dots[0] == domain.DotReady && dots[1] == domain.DotReady && dots[2] == domain.DotJoined
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.PhaseLobby, kakashi.Phase())

	require.NoError(t, kakashi.RequestReady())
	for _, p := range []*Peer{naruto, sasuke, kakashi} {
		waitPhase(t, p, domain.PhaseDrawing)
	}

	for _, p := range []*Peer{naruto, sasuke, kakashi} {
		require.NoError(t, p.DrawPointerDown(canvas.Point{X: 10, Y: 10}))
		require.NoError(t, p.DrawPointerMove(canvas.Point{X: 30, Y: 12}))
		p.DrawPointerUp()
		require.NoError(t, p.CompleteDrawing())
	}
	for _, p := range []*Peer{naruto, sasuke, kakashi} {
		waitPhase(t, p, domain.PhaseBattling)
	}
}

func TestSession_LeavingLetsTheOthersStart(t *testing.T) {
	t.Parallel()
	tb := newTable(t)

	a := tb.seat("a")
	b := tb.seat("b")
	require.NoError(t, a.RequestReady())
	assert.Eventually(t, func() bool { return b.Dots()[0] == domain.DotReady }, 2*time.Second, 5*time.Millisecond)

	b.conn.Close("")
	waitPhase(t, a, domain.PhaseDrawing)
}

func TestSession_FastScribblesConverge(t *testing.T) {
	t.Parallel()
	tb := newTable(t)
	// tight enough that the gesture below gets a peer kicked unless its
	// stamps are paced
	tb.limits.DrawRate = 200
	tb.limits.DrawBurst = game.StrokeBurst(tb.cfg.Width, tb.cfg.Height, tb.cfg.BrushSpacing)

	naruto := tb.seat("naruto")
	sasuke := tb.seat("sasuke")

	scribble := func(p *Peer, from, to canvas.Point) {
		for range 5 {
			assert.NoError(t, p.LobbyPointerDown(from))
			for i := range 8 {
				at := to
				if i%2 == 1 {
					at = from
				}
				assert.NoError(t, p.LobbyPointerMove(at))
				time.Sleep(10 * time.Millisecond)
			}
			p.LobbyPointerUp()
		}
	}
	var wg sync.WaitGroup
	wg.Go(func() { scribble(naruto, canvas.Point{X: 4, Y: 4}, canvas.Point{X: 20, Y: 14}) })
	wg.Go(func() { scribble(sasuke, canvas.Point{X: 44, Y: 4}, canvas.Point{X: 26, Y: 28}) })
	wg.Wait()

	assert.Eventually(t, boardsMatch(naruto, sasuke), 5*time.Second, 10*time.Millisecond)
	assert.NotEqual(t, make([]byte, 48*32*4), naruto.LobbyExport())

	// both are still seated
	require.NoError(t, naruto.RequestReady())
	assert.Eventually(t, func() bool { return sasuke.Dots()[0] == domain.DotReady }, 2*time.Second, 5*time.Millisecond)
}

package rpc

import (
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/rpc/rpcpb"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var replicaColors = map[domain.PlayerId]canvas.Color{
	1: canvas.Red,
	2: canvas.Black,
}

// replica is a client that paints every Draw it receives onto its own
// canvas, the way a game client would.
type replica struct {
	id       domain.PlayerId
	registry *Registry
	raster   *canvas.Raster
	frames   []Call
}

func newReplica(t *testing.T, id domain.PlayerId) *replica {
	r := &replica{
		id:       id,
		registry: NewRegistry(RoleClient),
		raster:   canvas.NewRaster(32, 32),
	}
	brush := canvas.NewBrush(r.raster, 1)
	r.registry.Register(IdDraw, func(_ domain.PlayerId, msg Message) {
		d := msg.(Draw)
		brush.StampCircle(canvas.Point{X: float64(d.X), Y: float64(d.Y)}, replicaColors[d.PlayerId], 2)
	})
	r.registry.RegisterServerOnly(IdPlayerReady, func(domain.PlayerId, Message) {
		assert.Fail(t, "clients never run ready handlers")
	})
	return r
}

func (r *replica) PlayerId() domain.PlayerId {
	return r.id
}

func (r *replica) Send(frame []byte) error {
	c, err := DecodeCall(frame)
	if err != nil {
		return err
	}
	r.frames = append(r.frames, c)
	return r.registry.Dispatch(c)
}

func draw(sender domain.PlayerId, x, y float32) Call {
	c := NewCall(AllBuffered, Draw{PlayerId: sender, X: x, Y: y})
	c.Sender = sender
	return c
}

func TestHub_LateJoinerReplaysBufferInOrder(t *testing.T) {
	t.Parallel()
	server := NewRegistry(RoleServer)
	hub := NewHub(server, HubConfig{})

	first := newReplica(t, 1)
	require.NoError(t, hub.Join(first))

	calls := []Call{draw(1, 3, 3), draw(1, 4, 3), draw(1, 5, 3)}
	for _, c := range calls {
		require.NoError(t, hub.Route(c))
	}

	late := newReplica(t, 2)
	require.NoError(t, hub.Join(late))

	require.Len(t, late.frames, 3)
	for i, c := range calls {
		assert.Equal(t, c, late.frames[i])
	}
	assert.Equal(t, first.frames, late.frames)
}

func TestHub_RelaysFramesWithServerSender(t *testing.T) {
	t.Parallel()
	hub := NewHub(NewRegistry(RoleServer), HubConfig{})
	var frames [][]byte
	peer := &MockPeer{}
	peer.On("PlayerId").Return(domain.PlayerId(2))
	peer.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		frames = append(frames, args.Get(0).([]byte))
	}).Return(nil)
	require.NoError(t, hub.Join(peer))

	require.NoError(t, hub.Route(draw(1, 6, 7)))

	require.Len(t, frames, 1)
	var frame rpcpb.Frame
	require.NoError(t, proto.Unmarshal(frames[0], &frame))
	payload := frame.GetPayload()
	frame.Payload = nil
	assertProtoEqual(t, &rpcpb.Frame{Id: int32(IdDraw), Receivers: int32(AllBuffered), Sender: 1}, &frame)

	var d rpcpb.Draw
	require.NoError(t, proto.Unmarshal(payload, &d))
	assertProtoEqual(t, &rpcpb.Draw{PlayerId: 1, X: 6, Y: 7}, &d)
}

func TestHub_ReplicasConverge(t *testing.T) {
	t.Parallel()
	hub := NewHub(NewRegistry(RoleServer), HubConfig{})
	a := newReplica(t, 1)
	require.NoError(t, hub.Join(a))

	// two authors painting over each other; order decides the overlap
	require.NoError(t, hub.Route(draw(1, 10, 10)))
	require.NoError(t, hub.Route(draw(1, 11, 10)))
	b := newReplica(t, 2)
	require.NoError(t, hub.Join(b))
	require.NoError(t, hub.Route(draw(2, 11, 11)))
	require.NoError(t, hub.Route(draw(1, 12, 12)))

	c := newReplica(t, 3)
	require.NoError(t, hub.Join(c))

	assert.True(t, a.raster.Equal(b.raster))
	assert.True(t, a.raster.Equal(c.raster))
	assert.Equal(t, canvas.Red, c.raster.Get(12, 12))
}

func TestHub_Route(t *testing.T) {
	t.Parallel()

	t.Run("server calls reach only the local handler", func(t *testing.T) {
		t.Parallel()
		server := NewRegistry(RoleServer)
		var gotFrom domain.PlayerId
		server.RegisterServerOnly(IdPlayerReady, func(from domain.PlayerId, _ Message) { gotFrom = from })
		hub := NewHub(server, HubConfig{})
		p := newReplica(t, 1)
		require.NoError(t, hub.Join(p))

		c := NewCall(Server, PlayerReady{PlayerId: 1, Delta: 1})
		c.Sender = 1
		require.NoError(t, hub.Route(c))

		assert.Equal(t, domain.PlayerId(1), gotFrom)
		assert.Empty(t, p.frames)
		assert.Zero(t, hub.BufferLen())
	})

	t.Run("rejected calls are not relayed", func(t *testing.T) {
		t.Parallel()
		hub := NewHub(NewRegistry(RoleServer), HubConfig{})
		peer := &MockPeer{}
		peer.On("PlayerId").Return(domain.PlayerId(1))
		require.NoError(t, hub.Join(peer))

		assert.ErrorIs(t, hub.Route(NewCall(All, ChangePhase{Phase: domain.PhaseDrawing})), ErrForbiddenRpc)
		assert.ErrorIs(t, hub.Route(NewCall(Server, Draw{})), ErrReceiversMismatch)
		assert.ErrorIs(t, hub.Route(Call{Id: IdDraw, Receivers: AllBuffered, Payload: []byte{0xff}}), ErrMalformedPayload)

		peer.AssertNotCalled(t, "Send", mock.Anything)
		assert.Zero(t, hub.BufferLen())
	})

	t.Run("authorizer vetoes before delivery", func(t *testing.T) {
		t.Parallel()
		hub := NewHub(NewRegistry(RoleServer), HubConfig{
			Authorize: func(c Call, msg Message) error {
				if a, ok := msg.(Attributed); ok && a.Author() != c.Sender {
					return ErrSenderMismatch
				}
				return nil
			},
		})
		p := newReplica(t, 1)
		require.NoError(t, hub.Join(p))

		spoofed := NewCall(AllBuffered, Draw{PlayerId: 2, X: 1, Y: 1})
		spoofed.Sender = 1
		assert.ErrorIs(t, hub.Route(spoofed), ErrSenderMismatch)
		assert.Empty(t, p.frames)
		assert.Zero(t, hub.BufferLen())
	})
}

func TestHub_Send(t *testing.T) {
	t.Parallel()
	hub := NewHub(NewRegistry(RoleServer), HubConfig{})
	p := newReplica(t, 1)
	require.NoError(t, hub.Join(p))

	require.NoError(t, hub.Send(All, ChangePhase{Phase: domain.PhaseBattling}))
	require.NoError(t, hub.Send(AllBuffered, UpdateDot{PlayerIndex: 0, State: domain.DotJoined}))
	assert.ErrorIs(t, hub.Send(Target, Welcome{}), ErrReceiversMismatch)

	require.Len(t, p.frames, 2)
	assert.Equal(t, IdChangePhase, p.frames[0].Id)
	assert.Equal(t, domain.PlayerId(0), p.frames[0].Sender)

	// only the buffered call is replayed
	late := newReplica(t, 2)
	require.NoError(t, hub.Join(late))
	require.Len(t, late.frames, 1)
	assert.Equal(t, IdUpdateDot, late.frames[0].Id)
}

func TestHub_SendTo(t *testing.T) {
	t.Parallel()
	hub := NewHub(NewRegistry(RoleServer), HubConfig{})
	a, b := newReplica(t, 1), newReplica(t, 2)
	require.NoError(t, hub.Join(a))
	require.NoError(t, hub.Join(b))

	require.NoError(t, hub.SendTo(b, Welcome{PlayerId: 2, Width: 32, Height: 32}))
	assert.Empty(t, a.frames)
	require.Len(t, b.frames, 1)
	assert.Equal(t, Target, b.frames[0].Receivers)
	assert.Zero(t, hub.BufferLen())
}

func TestHub_Compaction(t *testing.T) {
	t.Parallel()
	compactions := 0
	hub := NewHub(NewRegistry(RoleServer), HubConfig{
		BufferLimit: 3,
		Compact: func(buffered []Call) []Call {
			compactions++
			return buffered[len(buffered)-1:]
		},
	})

	for i := range 4 {
		require.NoError(t, hub.Route(draw(1, float32(i), 0)))
	}
	assert.Equal(t, 1, compactions)
	require.Equal(t, 1, hub.BufferLen())
	assert.Equal(t, draw(1, 3, 0), hub.Buffered()[0])

	hub.ClearBuffer()
	assert.Zero(t, hub.BufferLen())
}

func TestHub_SendErrors(t *testing.T) {
	t.Parallel()

	t.Run("broadcast reports failing peers and keeps going", func(t *testing.T) {
		t.Parallel()
		var failed []domain.PlayerId
		hub := NewHub(NewRegistry(RoleServer), HubConfig{
			OnSendError: func(p Peer, err error) {
				assert.ErrorIs(t, err, assert.AnError)
				failed = append(failed, p.PlayerId())
			},
		})
		broken := &MockPeer{}
		broken.On("PlayerId").Return(domain.PlayerId(1))
		broken.On("Send", mock.Anything).Return(assert.AnError)
		healthy := newReplica(t, 2)
		require.NoError(t, hub.Join(broken))
		require.NoError(t, hub.Join(healthy))

		require.NoError(t, hub.Route(draw(2, 1, 1)))
		assert.Equal(t, []domain.PlayerId{1}, failed)
		assert.Len(t, healthy.frames, 1)
		assert.Len(t, hub.Peers(), 2)
	})

	t.Run("failed replay keeps the peer out", func(t *testing.T) {
		t.Parallel()
		hub := NewHub(NewRegistry(RoleServer), HubConfig{})
		require.NoError(t, hub.Route(draw(1, 1, 1)))

		broken := &MockPeer{}
		broken.On("PlayerId").Return(domain.PlayerId(3))
		broken.On("Send", mock.Anything).Return(assert.AnError).Once()
		assert.ErrorIs(t, hub.Join(broken), assert.AnError)
		assert.Empty(t, hub.Peers())
		broken.AssertExpectations(t)
	})
}

func TestHub_Leave(t *testing.T) {
	t.Parallel()
	hub := NewHub(NewRegistry(RoleServer), HubConfig{})
	a, b := newReplica(t, 1), newReplica(t, 2)
	require.NoError(t, hub.Join(a))
	require.NoError(t, hub.Join(b))

	assert.True(t, hub.Leave(1))
	assert.False(t, hub.Leave(1))
	require.NoError(t, hub.Route(draw(2, 1, 1)))
	assert.Empty(t, a.frames)
	assert.Len(t, b.frames, 1)
}

package rpc

import (
	"drawbattle/domain"
	"fmt"
	"slices"
)

// Sender is the outgoing half of the replication envelope.
type Sender interface {
	Send(receivers Receivers, msg Message) error
}

// Peer is a connected remote peer as seen by the hub.
type Peer interface {
	PlayerId() domain.PlayerId
	Send(frame []byte) error
}

// Compactor rewrites the replay buffer into a shorter history that leaves a
// fresh peer in the same state.
type Compactor func(buffered []Call) []Call

// Authorizer vets a decoded client call before it is relayed.
type Authorizer func(c Call, msg Message) error

type HubConfig struct {
	// BufferLimit triggers Compact once the replay buffer grows past it.
	// Zero disables compaction.
	BufferLimit int
	Compact     Compactor
	Authorize   Authorizer
	// OnSendError is told about peers whose outgoing queue rejected a frame.
	// The hub keeps them; removing them is the caller's decision.
	OnSendError func(p Peer, err error)
}

type bufferedCall struct {
	call  Call
	frame []byte
}

// Hub relays calls between the peers of one session and owns the replay
// buffer of AllBuffered calls. Like the registry it belongs to a single
// goroutine.
type Hub struct {
	local  *Registry
	cfg    HubConfig
	peers  []Peer
	buffer []bufferedCall
}

func NewHub(local *Registry, cfg HubConfig) *Hub {
	return &Hub{local: local, cfg: cfg}
}

// Join replays the buffered history to p, in send order, then starts
// delivering live calls to it.
func (h *Hub) Join(p Peer) error {
	for _, bc := range h.buffer {
		if err := p.Send(bc.frame); err != nil {
			return fmt.Errorf("replaying %s to player %d: %w", bc.call.Id, p.PlayerId(), err)
		}
	}
	h.peers = append(h.peers, p)
	return nil
}

// Leave forgets the peer. Unknown ids are ignored.
func (h *Hub) Leave(id domain.PlayerId) bool {
	i := slices.IndexFunc(h.peers, func(p Peer) bool { return p.PlayerId() == id })
	if i < 0 {
		return false
	}
	h.peers = slices.Delete(h.peers, i, i+1)
	return true
}

func (h *Hub) Peers() []Peer {
	return slices.Clone(h.peers)
}

// Route handles a call received from a client. Sender must already hold the
// id the server assigned to the connection.
func (h *Hub) Route(c Call) error {
	if err := CheckClientCall(c); err != nil {
		return err
	}
	msg, err := c.Message()
	if err != nil {
		return err
	}
	if h.cfg.Authorize != nil {
		if err := h.cfg.Authorize(c, msg); err != nil {
			return err
		}
	}
	return h.deliver(c, msg)
}

// Send emits a call originated by the server itself.
func (h *Hub) Send(receivers Receivers, msg Message) error {
	if receivers == Target {
		return fmt.Errorf("%w: use SendTo for targeted calls", ErrReceiversMismatch)
	}
	return h.deliver(NewCall(receivers, msg), msg)
}

// SendTo delivers msg to a single peer, outside of any buffer.
func (h *Hub) SendTo(p Peer, msg Message) error {
	return p.Send(NewCall(Target, msg).Encode())
}

func (h *Hub) deliver(c Call, msg Message) error {
	switch c.Receivers {
	case Server:
		return h.local.Handle(c.Sender, msg)
	case All:
		h.broadcast(c.Encode())
		return h.local.Handle(c.Sender, msg)
	case AllBuffered:
		frame := c.Encode()
		h.broadcast(frame)
		err := h.local.Handle(c.Sender, msg)
		h.record(bufferedCall{call: c, frame: frame})
		return err
	}
	return fmt.Errorf("%w: %s", ErrReceiversMismatch, c.Receivers)
}

func (h *Hub) broadcast(frame []byte) {
	for _, p := range h.peers {
		if err := p.Send(frame); err != nil && h.cfg.OnSendError != nil {
			h.cfg.OnSendError(p, err)
		}
	}
}

func (h *Hub) record(bc bufferedCall) {
	h.buffer = append(h.buffer, bc)
	if h.cfg.BufferLimit <= 0 || h.cfg.Compact == nil || len(h.buffer) <= h.cfg.BufferLimit {
		return
	}
	compacted := h.cfg.Compact(h.Buffered())
	h.buffer = make([]bufferedCall, 0, len(compacted))
	for _, c := range compacted {
		h.buffer = append(h.buffer, bufferedCall{call: c, frame: c.Encode()})
	}
}

// Buffered returns the replay history in order.
func (h *Hub) Buffered() []Call {
	calls := make([]Call, len(h.buffer))
	for i, bc := range h.buffer {
		calls[i] = bc.call
	}
	return calls
}

func (h *Hub) BufferLen() int {
	return len(h.buffer)
}

func (h *Hub) ClearBuffer() {
	h.buffer = nil
}

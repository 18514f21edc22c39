package rpc

import (
	"drawbattle/domain"
	"fmt"
)

// Handler runs an RPC on the local peer. from is the sender assigned by the
// server, 0 for calls the server originated.
type Handler func(from domain.PlayerId, msg Message)

type registration struct {
	handle     Handler
	serverOnly bool
}

// Registry maps RPC ids to the handlers of one peer. It is not safe for
// concurrent use; it belongs to the peer's update loop.
type Registry struct {
	role     Role
	handlers map[Id]registration
}

func NewRegistry(role Role) *Registry {
	return &Registry{role: role, handlers: make(map[Id]registration)}
}

func (r *Registry) Role() Role {
	return r.role
}

func (r *Registry) Register(id Id, h Handler) {
	r.handlers[id] = registration{handle: h}
}

// RegisterServerOnly registers a handler that only runs on the authoritative
// peer. On a client, calls to it are rejected with ErrServerOnly and nothing
// runs.
func (r *Registry) RegisterServerOnly(id Id, h Handler) {
	r.handlers[id] = registration{handle: h, serverOnly: true}
}

// OnRpcReceived decodes payload and runs the matching handler. Calls without
// a handler are ignored: not every peer cares about every RPC.
func (r *Registry) OnRpcReceived(from domain.PlayerId, id Id, payload []byte) error {
	msg, err := Decode(id, payload)
	if err != nil {
		return err
	}
	return r.Handle(from, msg)
}

// Handle runs the handler for an already decoded message.
func (r *Registry) Handle(from domain.PlayerId, msg Message) error {
	reg, ok := r.handlers[msg.RpcId()]
	if !ok {
		return nil
	}
	if reg.serverOnly && r.role != RoleServer {
		return fmt.Errorf("%w: %s was called on a %s", ErrServerOnly, msg.RpcId(), r.role)
	}
	reg.handle(from, msg)
	return nil
}

// Dispatch is OnRpcReceived for a decoded frame.
func (r *Registry) Dispatch(c Call) error {
	return r.OnRpcReceived(c.Sender, c.Id, c.Payload)
}

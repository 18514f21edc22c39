package rpc

import "fmt"

// Receivers is the addressing mode of a call. Every call site states it
// explicitly.
type Receivers int32

const (
	// Target delivers to a single peer chosen by the server. Clients may not
	// use it.
	Target Receivers = iota
	// Server delivers to the authoritative peer only.
	Server
	// All delivers to every connected peer. Late joiners never see it.
	All
	// AllBuffered delivers to every connected peer and keeps the call so
	// peers joining later replay it, in order.
	AllBuffered
)

func (r Receivers) String() string {
	switch r {
	case Target:
		return "target"
	case Server:
		return "server"
	case All:
		return "all"
	case AllBuffered:
		return "all-buffered"
	}
	return fmt.Sprintf("receivers(%d)", int32(r))
}

func (r Receivers) valid() bool {
	return r >= Target && r <= AllBuffered
}

// Role tells a registry whether it runs on the authoritative peer.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

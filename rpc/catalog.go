package rpc

import "fmt"

// Id is the wire number of an RPC. Values are a contract shared by every peer.
type Id int32

const (
	IdDraw                Id = 1
	IdPlayerReady         Id = 2
	IdSendDrawingComplete Id = 3
	IdSendFullTexture     Id = 4
	IdChangePhase         Id = 5
	IdUpdateDot           Id = 6
	// 7 was SendSwitchToNextDrawing, a battle phase call.
	IdWelcome    Id = 8
	IdPlayerLeft Id = 9
)

type rpcEntry struct {
	name        string
	receivers   Receivers
	fromClients bool
	decode      func([]byte) (Message, error)
}

var catalog = map[Id]rpcEntry{
	IdDraw:                {"Draw", AllBuffered, true, decodeDraw},
	IdPlayerReady:         {"PlayerReady", Server, true, decodePlayerReady},
	IdSendDrawingComplete: {"SendDrawingComplete", Server, true, decodeSendDrawingComplete},
	IdSendFullTexture:     {"SendFullTexture", AllBuffered, true, decodeSendFullTexture},
	IdChangePhase:         {"ChangePhase", All, false, decodeChangePhase},
	IdUpdateDot:           {"UpdateDot", AllBuffered, true, decodeUpdateDot},
	IdWelcome:             {"Welcome", Target, false, decodeWelcome},
	IdPlayerLeft:          {"PlayerLeft", All, false, decodePlayerLeft},
}

func (id Id) String() string {
	if s, ok := catalog[id]; ok {
		return s.name
	}
	return fmt.Sprintf("rpc(%d)", int32(id))
}

// Receivers is the addressing mode the RPC is declared with.
func (id Id) Receivers() Receivers {
	return catalog[id].receivers
}

func (id Id) Known() bool {
	_, ok := catalog[id]
	return ok
}

// Decode parses a payload into the typed message registered for id.
func Decode(id Id, payload []byte) (Message, error) {
	s, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRpc, id)
	}
	msg, err := s.decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return msg, nil
}

// CheckClientCall rejects calls a client is not allowed to make, or makes with
// the wrong addressing mode.
func CheckClientCall(c Call) error {
	s, ok := catalog[c.Id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRpc, c.Id)
	}
	if !s.fromClients {
		return fmt.Errorf("%w: %s", ErrForbiddenRpc, s.name)
	}
	if c.Receivers != s.receivers {
		return fmt.Errorf("%w: %s is %s, called as %s", ErrReceiversMismatch, s.name, s.receivers, c.Receivers)
	}
	return nil
}

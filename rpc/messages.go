package rpc

import (
	"drawbattle/domain"
	"drawbattle/rpc/rpcpb"
)

// Message is the typed payload of one RPC.
type Message interface {
	RpcId() Id
	AppendPayload(b []byte) []byte
}

// Attributed messages name the player that produced them. The server checks
// the claim against the connection the call arrived on.
type Attributed interface {
	Message
	Author() domain.PlayerId
}

// Draw paints one lobby brush stamp in the author's color.
type Draw struct {
	PlayerId domain.PlayerId
	X, Y     float32
}

func (Draw) RpcId() Id                 { return IdDraw }
func (m Draw) Author() domain.PlayerId { return m.PlayerId }

func (m Draw) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.Draw{PlayerId: int32(m.PlayerId), X: m.X, Y: m.Y})
}

func decodeDraw(b []byte) (Message, error) {
	var pb rpcpb.Draw
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	if err := checkFinite(pb.GetX()); err != nil {
		return nil, err
	}
	if err := checkFinite(pb.GetY()); err != nil {
		return nil, err
	}
	return Draw{PlayerId: domain.PlayerId(pb.GetPlayerId()), X: pb.GetX(), Y: pb.GetY()}, nil
}

// PlayerReady toggles the author's ready flag: +1 ready, -1 cancel.
type PlayerReady struct {
	PlayerId domain.PlayerId
	Delta    int32
}

func (PlayerReady) RpcId() Id                 { return IdPlayerReady }
func (m PlayerReady) Author() domain.PlayerId { return m.PlayerId }

func (m PlayerReady) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.PlayerReady{PlayerId: int32(m.PlayerId), Delta: m.Delta})
}

func decodePlayerReady(b []byte) (Message, error) {
	var pb rpcpb.PlayerReady
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	if d := pb.GetDelta(); d != 1 && d != -1 {
		return nil, malformed("ready delta must be +1 or -1, got %d", d)
	}
	return PlayerReady{PlayerId: domain.PlayerId(pb.GetPlayerId()), Delta: pb.GetDelta()}, nil
}

// SendDrawingComplete tells the server the author finished painting. Texture
// optionally carries the compressed canvas.
type SendDrawingComplete struct {
	PlayerId domain.PlayerId
	Texture  []byte
}

func (SendDrawingComplete) RpcId() Id                 { return IdSendDrawingComplete }
func (m SendDrawingComplete) Author() domain.PlayerId { return m.PlayerId }

func (m SendDrawingComplete) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.SendDrawingComplete{PlayerId: int32(m.PlayerId), Texture: m.Texture})
}

func decodeSendDrawingComplete(b []byte) (Message, error) {
	var pb rpcpb.SendDrawingComplete
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	return SendDrawingComplete{PlayerId: domain.PlayerId(pb.GetPlayerId()), Texture: pb.GetTexture()}, nil
}

// SendFullTexture replaces a whole canvas with a compressed snapshot. It is
// the legacy sync path; per-stamp Draw calls superseded it. The server still
// emits it when compacting its replay buffer, with PlayerId 0.
type SendFullTexture struct {
	Texture  []byte
	PlayerId domain.PlayerId
}

func (SendFullTexture) RpcId() Id                 { return IdSendFullTexture }
func (m SendFullTexture) Author() domain.PlayerId { return m.PlayerId }

func (m SendFullTexture) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.SendFullTexture{Texture: m.Texture, PlayerId: int32(m.PlayerId)})
}

func decodeSendFullTexture(b []byte) (Message, error) {
	var pb rpcpb.SendFullTexture
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	return SendFullTexture{Texture: pb.GetTexture(), PlayerId: domain.PlayerId(pb.GetPlayerId())}, nil
}

// ChangePhase broadcasts the authoritative phase.
type ChangePhase struct {
	Phase domain.Phase
}

func (ChangePhase) RpcId() Id { return IdChangePhase }

func (m ChangePhase) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.ChangePhase{Phase: int32(m.Phase)})
}

func decodeChangePhase(b []byte) (Message, error) {
	var pb rpcpb.ChangePhase
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	m := ChangePhase{Phase: domain.Phase(pb.GetPhase())}
	if !m.Phase.Valid() {
		return nil, malformed("unknown phase %d", m.Phase)
	}
	return m, nil
}

// UpdateDot sets the lobby progress dot of a player slot. PlayerIndex is the
// zero based slot, i.e. PlayerId-1.
type UpdateDot struct {
	PlayerIndex int32
	State       domain.DotState
}

func (UpdateDot) RpcId() Id { return IdUpdateDot }

func (m UpdateDot) Author() domain.PlayerId { return domain.PlayerId(m.PlayerIndex + 1) }

func (m UpdateDot) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.UpdateDot{PlayerIndex: m.PlayerIndex, State: int32(m.State)})
}

func decodeUpdateDot(b []byte) (Message, error) {
	var pb rpcpb.UpdateDot
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if pb.GetPlayerIndex() < 0 {
		return nil, malformed("negative player index %d", pb.GetPlayerIndex())
	}
	m := UpdateDot{PlayerIndex: pb.GetPlayerIndex(), State: domain.DotState(pb.GetState())}
	if !m.State.Valid() {
		return nil, malformed("unknown dot state %d", m.State)
	}
	return m, nil
}

// Welcome is the first call a peer receives after joining.
type Welcome struct {
	PlayerId  domain.PlayerId
	Phase     domain.Phase
	Width     int32
	Height    int32
	SessionId string
}

func (Welcome) RpcId() Id { return IdWelcome }

func (m Welcome) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.Welcome{
		PlayerId:  int32(m.PlayerId),
		Phase:     int32(m.Phase),
		Width:     m.Width,
		Height:    m.Height,
		SessionId: m.SessionId,
	})
}

func decodeWelcome(b []byte) (Message, error) {
	var pb rpcpb.Welcome
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	m := Welcome{
		PlayerId:  domain.PlayerId(pb.GetPlayerId()),
		Phase:     domain.Phase(pb.GetPhase()),
		Width:     pb.GetWidth(),
		Height:    pb.GetHeight(),
		SessionId: pb.GetSessionId(),
	}
	if !m.Phase.Valid() {
		return nil, malformed("unknown phase %d", m.Phase)
	}
	if m.Width < 0 || m.Height < 0 {
		return nil, malformed("negative size %dx%d", m.Width, m.Height)
	}
	return m, nil
}

// PlayerLeft announces a disconnected player.
type PlayerLeft struct {
	PlayerId domain.PlayerId
}

func (PlayerLeft) RpcId() Id { return IdPlayerLeft }

func (m PlayerLeft) AppendPayload(b []byte) []byte {
	return appendProto(b, &rpcpb.PlayerLeft{PlayerId: int32(m.PlayerId)})
}

func decodePlayerLeft(b []byte) (Message, error) {
	var pb rpcpb.PlayerLeft
	if err := unmarshal(b, &pb); err != nil {
		return nil, err
	}
	if err := checkPlayerId(pb.GetPlayerId()); err != nil {
		return nil, err
	}
	return PlayerLeft{PlayerId: domain.PlayerId(pb.GetPlayerId())}, nil
}

package rpc

import (
	"drawbattle/domain"
	"drawbattle/rpc/rpcpb"

	"google.golang.org/protobuf/encoding/protowire"
)

// Call is one RPC invocation as it travels between peers, framed as an
// rpcpb.Frame.
type Call struct {
	Id        Id
	Receivers Receivers
	Sender    domain.PlayerId
	Payload   []byte
}

// NewCall encodes msg for the given addressing mode. The sender is filled in
// by the server.
func NewCall(receivers Receivers, msg Message) Call {
	return Call{
		Id:        msg.RpcId(),
		Receivers: receivers,
		Payload:   msg.AppendPayload(nil),
	}
}

func (c Call) Message() (Message, error) {
	return Decode(c.Id, c.Payload)
}

func (c Call) Encode() []byte {
	return appendProto(make([]byte, 0, len(c.Payload)+12), &rpcpb.Frame{
		Id:        int32(c.Id),
		Receivers: int32(c.Receivers),
		Sender:    int32(c.Sender),
		Payload:   c.Payload,
	})
}

// DecodeCall parses a frame. The payload is not decoded here; see
// Call.Message.
func DecodeCall(b []byte) (Call, error) {
	if len(b) == 0 {
		return Call{}, malformed("empty frame")
	}
	var f rpcpb.Frame
	if err := unmarshal(b, &f); err != nil {
		return Call{}, err
	}
	c := Call{
		Id:        Id(f.GetId()),
		Receivers: Receivers(f.GetReceivers()),
		Sender:    domain.PlayerId(f.GetSender()),
		Payload:   f.GetPayload(),
	}
	if c.Id == 0 {
		return Call{}, malformed("missing rpc id")
	}
	if !c.Receivers.valid() {
		return Call{}, malformed("unknown receivers %d", c.Receivers)
	}
	if err := checkPlayerId(int32(c.Sender)); err != nil {
		return Call{}, err
	}
	return c, nil
}

// PeekId reads the rpc id of a frame without decoding the rest. It returns 0
// when the frame carries no readable id.
func PeekId(b []byte) Id {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0
		}
		b = b[n:]
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0
			}
			return Id(int32(v))
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return 0
		}
		b = b[n:]
	}
	return 0
}

package rpc

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"
)

// Payloads and frames are the messages of rpcpb/rpc.proto.

var marshalOptions = proto.MarshalOptions{Deterministic: true}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
}

// appendProto marshals m after b. Only a string that is not UTF-8 can fail
// to marshal; the field is then sent empty.
func appendProto(b []byte, m proto.Message) []byte {
	out, err := marshalOptions.MarshalAppend(b, m)
	if err != nil {
		return b
	}
	return out
}

func unmarshal(b []byte, m proto.Message) error {
	if err := proto.Unmarshal(b, m); err != nil {
		return malformed("%v", err)
	}
	return nil
}

func checkPlayerId(id int32) error {
	if id < 0 {
		return malformed("negative player id %d", id)
	}
	return nil
}

func checkFinite(f float32) error {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return malformed("non finite coordinate")
	}
	return nil
}

package rpc

import "errors"

var (
	ErrMalformedPayload  = errors.New("malformed-payload")
	ErrUnknownRpc        = errors.New("unknown-rpc")
	ErrReceiversMismatch = errors.New("receivers-mismatch")
	ErrForbiddenRpc      = errors.New("forbidden-rpc")
	ErrServerOnly        = errors.New("server-only-rpc")
	ErrSenderMismatch    = errors.New("sender-mismatch")
)

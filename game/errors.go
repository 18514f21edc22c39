package game

import "errors"

var (
	ErrSessionNotFound = errors.New("session-not-found")
	ErrSessionFull     = errors.New("session-full")
	ErrSessionStarted  = errors.New("session-already-started")
	ErrHistoryTooLong  = errors.New("session-history-too-long")
	ErrWrongPhase      = errors.New("wrong-phase")
)

var ErrSendBufferFull = errors.New("send-buffer-full")

var (
	ErrNotAuthoritative   = errors.New("not-authoritative")
	ErrGateOutOfRange     = errors.New("gate-out-of-range")
	ErrUnknownPlayerColor = errors.New("unknown-player-color")
)

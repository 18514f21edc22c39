package client

import "errors"

var (
	ErrNotJoined         = errors.New("not-joined")
	ErrWrongPhase        = errors.New("wrong-phase")
	ErrAlreadySubmitted  = errors.New("drawing-already-submitted")
	ErrUnexpectedWelcome = errors.New("unexpected-welcome")
)

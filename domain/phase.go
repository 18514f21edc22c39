package domain

import "fmt"

// PlayerId identifies a player inside a session. Ids are small, start at 1 and
// are handed out by the session on join. 0 means unassigned.
type PlayerId int32

const Unassigned PlayerId = 0

// Phase is the global stage of a match. The integer values travel on the wire
// and must not be reordered.
type Phase int32

const (
	PhaseLobby Phase = iota
	PhaseDrawing
	PhaseBattling
	PhaseScoreboard
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseDrawing:
		return "drawing"
	case PhaseBattling:
		return "battling"
	case PhaseScoreboard:
		return "scoreboard"
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

func (p Phase) Valid() bool {
	return p >= PhaseLobby && p <= PhaseScoreboard
}

// DotState is the lobby progress indicator shown next to each player slot.
type DotState int32

const (
	DotEmpty DotState = iota
	DotJoined
	DotReady
)

func (d DotState) Valid() bool {
	return d >= DotEmpty && d <= DotReady
}

package game

import (
	"drawbattle/domain"
	"drawbattle/rpc"
	"time"
)

type SessionConfig struct {
	MaxPlayers int
	Width      int
	Height     int
	Private    bool

	LobbyBrushRadius int
	BrushSpacing     float64
	Palette          Palette

	// FlushInterval is how often the lobby canvas preview is republished.
	FlushInterval time.Duration
	// IdleTimeout closes a session nobody has been connected to for that
	// long.
	IdleTimeout time.Duration
	// BufferLimit is the replay history length above which the history is
	// compacted into a single snapshot. Zero disables compaction.
	BufferLimit int
	// SaveTimeout bounds each drawing write to storage.
	SaveTimeout time.Duration

	LegacyRecompressSnapshots bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxPlayers:       4,
		Width:            256,
		Height:           256,
		LobbyBrushRadius: 4,
		BrushSpacing:     4,
		Palette:          DefaultPalette,
		FlushInterval:    time.Second / 60,
		IdleTimeout:      2 * time.Minute,
		BufferLimit:      20000,
		SaveTimeout:      5 * time.Second,
	}
}

type SessionDescription struct {
	Id           string       `json:"id"`
	Private      bool         `json:"private"`
	PlayersCount int          `json:"playersCount"`
	MaxPlayers   int          `json:"maxPlayers"`
	Phase        domain.Phase `json:"phase"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
}

type clientEnvelope struct {
	from Player
	call rpc.Call
}

type sessionJoinRequest struct {
	sessionId string
	player    Player
	errChan   chan error
}

func NewSessionJoinRequest(sessionId string, player Player) sessionJoinRequest {
	return sessionJoinRequest{sessionId: sessionId, player: player, errChan: make(chan error, 1)}
}

// reject answers a join request with err. A request is answered exactly once,
// either by reject or by closing errChan on success.
func (r sessionJoinRequest) reject(err error) {
	r.errChan <- err
	close(r.errChan)
}

// seat is a joined player as the replication hub sees it.
type seat struct {
	id     domain.PlayerId
	player Player
}

func (s *seat) PlayerId() domain.PlayerId {
	return s.id
}

func (s *seat) Send(frame []byte) error {
	return s.player.Send(frame)
}

package game

import (
	"context"
	"drawbattle/domain"
	"image"
	"time"
)

type WebsocketConnection interface {
	Close(reason string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

type UserGetter interface {
	GetUserById(ctx context.Context, id string) (domain.User, error)
}

type DrawingSaver interface {
	SaveDrawing(ctx context.Context, d domain.Drawing) (string, error)
}

type DrawingLister interface {
	ListSessionDrawings(ctx context.Context, sessionId string) ([]domain.Drawing, error)
	GetDrawing(ctx context.Context, id string) (domain.Drawing, error)
}

type DrawingStore interface {
	DrawingSaver
	DrawingLister
}

type Player interface {
	UserId() string
	Username() string
	Send(frame []byte) error
	Ping()
	SetSession(s Session)
	CancelAndRelease()
}

type Session interface {
	Send(ctx context.Context, e clientEnvelope)
	RemoveMe(ctx context.Context, p Player)
	RequestJoin(jreq sessionJoinRequest)
	Tick(now time.Time)
	PingPlayers()
	GameLoop()
	CloseAndRelease()
	Description() SessionDescription
	SetParentLobby(l Lobby)
	SetId(id string)
	CanvasPreview() *image.NRGBA
	// Size is the board size, fixed at creation.
	Size() (width, height int)
}

type Lobby interface {
	AddAndRunSession(ctx context.Context, s Session) (string, error)
	ForwardJoinRequest(ctx context.Context, jreq sessionJoinRequest)
	GetSession(ctx context.Context, id string) (Session, error)
	GetPublicSessions(ctx context.Context) []SessionDescription
	RequestUpdateDescription(desc SessionDescription)
	RemoveSession(id string)
}

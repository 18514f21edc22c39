package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const pingInterval = 30 * time.Second

type sessionAddRequest struct {
	session Session
	idChan  chan string
}

type sessionLookup struct {
	id       string
	respChan chan Session
}

type lobby struct {
	sessions             map[string]Session
	pubDescriptions      map[string]SessionDescription
	addAndRunSessionChan chan sessionAddRequest
	removeSessionChan    chan string
	pubSessionsReq       chan chan []SessionDescription
	sessionReqs          chan sessionLookup
	descUpdate           chan SessionDescription
	joinReqs             chan sessionJoinRequest
	closeAll             chan struct{}
	idGenerator          UniqueIdGenerator
	tickerCreator        PeriodicTickerChannelCreator
	tickInterval         time.Duration
	wg                   *sync.WaitGroup
	logger               zerolog.Logger
}

// NewLobby builds the session directory. Sessions are ticked every
// tickInterval; wg tracks running session loops.
func NewLobby(idgen UniqueIdGenerator, tickerCreator PeriodicTickerChannelCreator, tickInterval time.Duration, wg *sync.WaitGroup, logger zerolog.Logger) *lobby {
	return &lobby{
		sessions:             map[string]Session{},
		pubDescriptions:      map[string]SessionDescription{},
		addAndRunSessionChan: make(chan sessionAddRequest, 32),
		removeSessionChan:    make(chan string, 32),
		pubSessionsReq:       make(chan chan []SessionDescription, 256),
		sessionReqs:          make(chan sessionLookup, 256),
		descUpdate:           make(chan SessionDescription, 256),
		joinReqs:             make(chan sessionJoinRequest, 256),
		closeAll:             make(chan struct{}),
		idGenerator:          idgen,
		tickerCreator:        tickerCreator,
		tickInterval:         tickInterval,
		wg:                   wg,
		logger:               logger,
	}
}

func (l *lobby) RequestUpdateDescription(desc SessionDescription) {
	select {
	case l.descUpdate <- desc:
	default:
	}
}

// AddAndRunSession registers s under a fresh id, starts its loop and returns
// the id.
func (l *lobby) AddAndRunSession(ctx context.Context, s Session) (string, error) {
	req := sessionAddRequest{session: s, idChan: make(chan string, 1)}
	select {
	case l.addAndRunSessionChan <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case id := <-req.idChan:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *lobby) ForwardJoinRequest(ctx context.Context, jreq sessionJoinRequest) {
	select {
	case <-ctx.Done():
	case l.joinReqs <- jreq:
	}
}

func (l *lobby) RemoveSession(id string) {
	select {
	case l.removeSessionChan <- id:
	case <-l.closeAll:
	}
}

func (l *lobby) GetSession(ctx context.Context, id string) (Session, error) {
	req := sessionLookup{id: id, respChan: make(chan Session, 1)}
	select {
	case l.sessionReqs <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case s := <-req.respChan:
		if s == nil {
			return nil, ErrSessionNotFound
		}
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *lobby) GetPublicSessions(ctx context.Context) []SessionDescription {
	respChan := make(chan []SessionDescription, 1)
	select {
	case l.pubSessionsReq <- respChan:
		select {
		case resp := <-respChan:
			return resp
		case <-ctx.Done():
			return nil
		}
	case <-ctx.Done():
		return nil
	}
}

// CloseAll releases every session and stops the actor. Running session loops
// are still tracked by the lobby's WaitGroup.
func (l *lobby) CloseAll() {
	close(l.closeAll)
}

func (l *lobby) LobbyActor(started chan struct{}) {
	ticker, stopTicker := l.tickerCreator.Create(l.tickInterval)
	defer stopTicker()
	pingTicker, stopPings := l.tickerCreator.Create(pingInterval)
	defer stopPings()

	close(started)

	for {
		select {
		case now := <-ticker:
			for _, s := range l.sessions {
				s.Tick(now)
			}
		case <-pingTicker:
			for _, s := range l.sessions {
				s.PingPlayers()
			}

		case req := <-l.addAndRunSessionChan:
			l.handleAddAndRunSession(req)

		case id := <-l.removeSessionChan:
			l.handleRemoveSession(id)

		case desc := <-l.descUpdate:
			l.handleDescriptionUpdate(desc)

		case respChan := <-l.pubSessionsReq:
			l.handleGetPublicSessions(respChan)

		case req := <-l.sessionReqs:
			req.respChan <- l.sessions[req.id]

		case jreq := <-l.joinReqs:
			l.handleJoinReq(jreq)

		case <-l.closeAll:
			for id := range l.sessions {
				l.handleRemoveSession(id)
			}
			return
		}
	}
}

func (l *lobby) handleAddAndRunSession(req sessionAddRequest) {
	id := l.idGenerator.Generate()
	s := req.session
	s.SetId(id)
	s.SetParentLobby(l)
	l.sessions[id] = s

	if desc := s.Description(); !desc.Private {
		l.pubDescriptions[id] = desc
	}
	l.wg.Go(s.GameLoop)
	req.idChan <- id
	l.logger.Info().Str("session", id).Msg("session created")
}

func (l *lobby) handleRemoveSession(id string) {
	s, ok := l.sessions[id]
	if !ok {
		return
	}
	delete(l.sessions, id)
	delete(l.pubDescriptions, id)
	s.CloseAndRelease()
	l.logger.Info().Str("session", id).Msg("session removed")
}

func (l *lobby) handleDescriptionUpdate(desc SessionDescription) {
	if _, ok := l.sessions[desc.Id]; !ok || desc.Private {
		return
	}
	l.pubDescriptions[desc.Id] = desc
}

func (l *lobby) handleGetPublicSessions(respChan chan []SessionDescription) {
	descs := make([]SessionDescription, 0, len(l.pubDescriptions))
	for _, d := range l.pubDescriptions {
		descs = append(descs, d)
	}
	respChan <- descs
}

func (l *lobby) handleJoinReq(jreq sessionJoinRequest) {
	s, ok := l.sessions[jreq.sessionId]
	if !ok {
		jreq.reject(ErrSessionNotFound)
		return
	}
	s.RequestJoin(jreq)
}

package game

import (
	"context"
	"drawbattle/canvas"
	"drawbattle/domain"
	"drawbattle/rpc"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type session struct {
	id     string
	cfg    SessionConfig
	logger zerolog.Logger

	phase    domain.Phase
	registry *rpc.Registry
	hub      *rpc.Hub
	board    *LobbyCanvas
	dots     []domain.DotState

	seats     map[Player]*seat
	byId      map[domain.PlayerId]*seat
	ready     map[domain.PlayerId]bool
	completed map[domain.PlayerId]bool
	dropped   []*seat

	readyGate   *Gate
	drawingGate *Gate

	scheduler    *Scheduler
	flushed      uint64
	preview      atomic.Pointer[image.NRGBA]
	emptySince   time.Time
	closing      bool
	saver        DrawingSaver
	pendingSaves sync.WaitGroup
	parentLobby  Lobby

	inbox                 chan clientEnvelope
	playerRemovalRequests chan Player
	joinRequests          chan sessionJoinRequest
	ticks                 chan time.Time
	pingPlayers           chan struct{}

	ctx       context.Context
	cancelCtx context.CancelFunc
}

func NewSession(cfg SessionConfig, saver DrawingSaver, logger zerolog.Logger) *session {
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette
	}
	cfg.MaxPlayers = min(cfg.MaxPlayers, len(cfg.Palette))

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		cfg:                   cfg,
		logger:                logger,
		phase:                 domain.PhaseLobby,
		registry:              rpc.NewRegistry(rpc.RoleServer),
		board:                 NewLobbyCanvas(cfg.Width, cfg.Height, cfg.LobbyBrushRadius, cfg.BrushSpacing, cfg.Palette),
		dots:                  make([]domain.DotState, cfg.MaxPlayers),
		seats:                 make(map[Player]*seat),
		byId:                  make(map[domain.PlayerId]*seat),
		ready:                 make(map[domain.PlayerId]bool),
		completed:             make(map[domain.PlayerId]bool),
		scheduler:             NewScheduler(),
		saver:                 saver,
		inbox:                 make(chan clientEnvelope, 1024),
		playerRemovalRequests: make(chan Player, 64),
		joinRequests:          make(chan sessionJoinRequest, 16),
		ticks:                 make(chan time.Time, 24),
		pingPlayers:           make(chan struct{}, 1),
		ctx:                   ctx,
		cancelCtx:             cancel,
	}

	s.readyGate = NewGate(GateConfig{
		Name:      "ready",
		Role:      s.registry.Role(),
		OnReached: func() { s.changePhase(domain.PhaseDrawing) },
		Logger:    logger,
	})
	s.drawingGate = NewGate(GateConfig{
		Name:      "drawing-complete",
		Role:      s.registry.Role(),
		OnReached: func() { s.changePhase(domain.PhaseBattling) },
		Logger:    logger,
	})

	hubCfg := rpc.HubConfig{
		Authorize: s.authorize,
		OnSendError: func(p rpc.Peer, err error) {
			s.logger.Warn().Err(err).Int32("player", int32(p.PlayerId())).Msg("dropping player that can't keep up")
			if st, ok := p.(*seat); ok {
				s.dropped = append(s.dropped, st)
			}
		},
	}
	// Snapshots are unreadable by legacy receivers, so their history is
	// never compacted. Joins are refused instead once it reaches BufferLimit.
	if !cfg.LegacyRecompressSnapshots {
		hubCfg.BufferLimit = cfg.BufferLimit
		hubCfg.Compact = s.compact
	}
	s.hub = rpc.NewHub(s.registry, hubCfg)

	s.registry.Register(rpc.IdDraw, s.handleDraw)
	s.registry.Register(rpc.IdSendFullTexture, s.handleFullTexture)
	s.registry.Register(rpc.IdUpdateDot, s.handleUpdateDot)
	s.registry.RegisterServerOnly(rpc.IdPlayerReady, s.handlePlayerReady)
	s.registry.RegisterServerOnly(rpc.IdSendDrawingComplete, s.handleDrawingComplete)

	s.scheduler.Every("flush", cfg.FlushInterval, s.flushPreview)
	s.scheduler.Every("reap", time.Second, s.reapIfIdle)
	s.publishPreview()

	return s
}

func (s *session) SetId(id string) {
	s.id = id
	s.logger = s.logger.With().Str("session", id).Logger()
	s.readyGate.cfg.Logger = s.logger
	s.drawingGate.cfg.Logger = s.logger
}

func (s *session) SetParentLobby(l Lobby) {
	s.parentLobby = l
}

func (s *session) Description() SessionDescription {
	return SessionDescription{
		Id:           s.id,
		Private:      s.cfg.Private,
		PlayersCount: len(s.seats),
		MaxPlayers:   s.cfg.MaxPlayers,
		Phase:        s.phase,
		Width:        s.cfg.Width,
		Height:       s.cfg.Height,
	}
}

func (s *session) Size() (width, height int) {
	return s.cfg.Width, s.cfg.Height
}

// CanvasPreview returns the last published lobby canvas. It is safe to call
// from any goroutine; the image must not be modified.
func (s *session) CanvasPreview() *image.NRGBA {
	return s.preview.Load()
}

func (s *session) Send(ctx context.Context, e clientEnvelope) {
	select {
	case s.inbox <- e:
	case <-ctx.Done():
	case <-s.ctx.Done():
	}
}

func (s *session) RemoveMe(ctx context.Context, p Player) {
	select {
	case s.playerRemovalRequests <- p:
	case <-ctx.Done():
	case <-s.ctx.Done():
	}
}

func (s *session) RequestJoin(jreq sessionJoinRequest) {
	select {
	case s.joinRequests <- jreq:
	case <-s.ctx.Done():
		jreq.reject(ErrSessionNotFound)
	}
}

func (s *session) Tick(now time.Time) {
	select {
	case s.ticks <- now:
	default:
	}
}

func (s *session) PingPlayers() {
	select {
	case s.pingPlayers <- struct{}{}:
	default:
	}
}

func (s *session) CloseAndRelease() {
	s.cancelCtx()
}

func (s *session) GameLoop() {
	s.scheduler.Start(time.Now())
	s.logger.Info().Msg("session started")

	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return
		case e := <-s.inbox:
			s.handleEnvelope(e)
		case p := <-s.playerRemovalRequests:
			s.handleRemovePlayer(p)
		case jreq := <-s.joinRequests:
			s.handleJoinRequest(jreq)
		case now := <-s.ticks:
			s.scheduler.Run(now)
		case <-s.pingPlayers:
			for p := range s.seats {
				p.Ping()
			}
		}
		s.dropSlowPlayers()
	}
}

func (s *session) shutdown() {
	s.scheduler.Stop()
	for p := range s.seats {
		p.CancelAndRelease()
	}
	s.pendingSaves.Wait()
	s.logger.Info().Msg("session closed")
}

func (s *session) handleJoinRequest(jreq sessionJoinRequest) {
	if s.phase != domain.PhaseLobby {
		jreq.reject(ErrSessionStarted)
		return
	}
	id, ok := s.freeSlot()
	if !ok {
		jreq.reject(ErrSessionFull)
		return
	}
	if s.historyFull() {
		jreq.reject(ErrHistoryTooLong)
		return
	}

	st := &seat{id: id, player: jreq.player}
	jreq.player.SetSession(s)

	welcome := rpc.Welcome{
		PlayerId:  id,
		Phase:     s.phase,
		Width:     int32(s.cfg.Width),
		Height:    int32(s.cfg.Height),
		SessionId: s.id,
	}
	if err := s.hub.SendTo(st, welcome); err != nil {
		jreq.reject(err)
		return
	}
	if err := s.hub.Join(st); err != nil {
		jreq.reject(err)
		return
	}

	s.seats[jreq.player] = st
	s.byId[id] = st
	s.readyGate.SetExpected(len(s.seats))
	s.sendLogged(rpc.AllBuffered, rpc.UpdateDot{PlayerIndex: int32(id) - 1, State: domain.DotJoined})
	close(jreq.errChan)

	s.logger.Info().Int32("player", int32(id)).Str("username", jreq.player.Username()).Msg("player joined")
	s.updateDescription()
}

// historyFull reports a replay too long to hand to a new player. Only an
// uncompacted history can get there.
func (s *session) historyFull() bool {
	return s.cfg.LegacyRecompressSnapshots && s.cfg.BufferLimit > 0 && s.hub.BufferLen() >= s.cfg.BufferLimit
}

// freeSlot returns the lowest id in [1, MaxPlayers] nobody holds.
func (s *session) freeSlot() (domain.PlayerId, bool) {
	for i := 1; i <= s.cfg.MaxPlayers; i++ {
		id := domain.PlayerId(i)
		if _, taken := s.byId[id]; !taken {
			return id, true
		}
	}
	return domain.Unassigned, false
}

func (s *session) handleRemovePlayer(p Player) {
	st, ok := s.seats[p]
	if !ok {
		return
	}
	delete(s.seats, p)
	delete(s.byId, st.id)
	s.hub.Leave(st.id)
	p.CancelAndRelease()

	if s.ready[st.id] {
		delete(s.ready, st.id)
		s.readyGate.ApplyDelta(-1)
	}
	if s.completed[st.id] {
		delete(s.completed, st.id)
		s.drawingGate.ApplyDelta(-1)
	}

	s.sendLogged(rpc.All, rpc.PlayerLeft{PlayerId: st.id})
	s.logger.Info().Int32("player", int32(st.id)).Msg("player left")

	switch s.phase {
	case domain.PhaseLobby:
		s.sendLogged(rpc.AllBuffered, rpc.UpdateDot{PlayerIndex: int32(st.id) - 1, State: domain.DotEmpty})
		s.readyGate.SetExpected(len(s.seats))
	case domain.PhaseDrawing:
		s.drawingGate.SetExpected(len(s.seats))
	}
	if len(s.seats) == 0 {
		s.emptySince = time.Time{}
	}
	s.updateDescription()
}

func (s *session) dropSlowPlayers() {
	for len(s.dropped) > 0 {
		st := s.dropped[0]
		s.dropped = s.dropped[1:]
		s.handleRemovePlayer(st.player)
	}
}

func (s *session) handleEnvelope(e clientEnvelope) {
	st, ok := s.seats[e.from]
	if !ok {
		return
	}
	c := e.call
	c.Sender = st.id
	if err := s.hub.Route(c); err != nil {
		s.logger.Warn().Err(err).Int32("player", int32(st.id)).Stringer("rpc", c.Id).Msg("call dropped")
	}
}

// authorize runs on every client call before it is relayed.
func (s *session) authorize(c rpc.Call, msg rpc.Message) error {
	if a, ok := msg.(rpc.Attributed); ok && a.Author() != c.Sender {
		return fmt.Errorf("%w: claims %d, connection is %d", rpc.ErrSenderMismatch, a.Author(), c.Sender)
	}
	want := domain.PhaseLobby
	if c.Id == rpc.IdSendDrawingComplete {
		want = domain.PhaseDrawing
	}
	if s.phase != want {
		return fmt.Errorf("%w: %s during %s", ErrWrongPhase, c.Id, s.phase)
	}
	return nil
}

func (s *session) handleDraw(from domain.PlayerId, msg rpc.Message) {
	if err := s.board.ApplyDraw(msg.(rpc.Draw)); err != nil {
		s.logger.Warn().Err(err).Msg("draw not applied")
	}
}

func (s *session) handleFullTexture(from domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.SendFullTexture)
	if err := s.board.ApplySnapshot(m.Texture, s.cfg.LegacyRecompressSnapshots); err != nil {
		s.logger.Warn().Err(err).Int32("player", int32(from)).Msg("snapshot ignored")
	}
}

func (s *session) handleUpdateDot(from domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.UpdateDot)
	if m.PlayerIndex < 0 || int(m.PlayerIndex) >= len(s.dots) {
		return
	}
	s.dots[m.PlayerIndex] = m.State
}

func (s *session) handlePlayerReady(from domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.PlayerReady)
	ready := m.Delta > 0
	if s.ready[from] == ready {
		s.logger.Debug().Int32("player", int32(from)).Bool("ready", ready).Msg("ready state unchanged")
		return
	}
	s.ready[from] = ready
	if err := s.readyGate.ApplyDelta(int(m.Delta)); err != nil {
		s.ready[from] = !ready
	}
}

func (s *session) handleDrawingComplete(from domain.PlayerId, msg rpc.Message) {
	m := msg.(rpc.SendDrawingComplete)
	if s.completed[from] {
		s.logger.Warn().Int32("player", int32(from)).Msg("drawing already submitted")
		return
	}
	s.completed[from] = true
	if len(m.Texture) > 0 {
		s.saveDrawing(from, m.Texture)
	}
	if err := s.drawingGate.ApplyDelta(1); err != nil {
		s.completed[from] = false
	}
}

func (s *session) saveDrawing(from domain.PlayerId, texture []byte) {
	st, ok := s.byId[from]
	if !ok || s.saver == nil {
		return
	}
	size := s.cfg.Width * s.cfg.Height * 4
	raw, err := canvas.Decompress(texture, size)
	if err == nil && len(raw) != size {
		err = fmt.Errorf("%w: got %d bytes, want %d", canvas.ErrSnapshotSize, len(raw), size)
	}
	if err != nil {
		s.logger.Warn().Err(err).Int32("player", int32(from)).Msg("submitted drawing not stored")
		return
	}

	d := domain.Drawing{
		SessionId: s.id,
		UserId:    st.player.UserId(),
		PlayerId:  from,
		Width:     s.cfg.Width,
		Height:    s.cfg.Height,
		Texture:   texture,
	}
	logger := s.logger
	s.pendingSaves.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SaveTimeout)
		defer cancel()
		id, err := s.saver.SaveDrawing(ctx, d)
		if err != nil {
			logger.Error().Err(err).Int32("player", int32(d.PlayerId)).Msg("failed to store drawing")
			return
		}
		logger.Debug().Str("drawing", id).Int32("player", int32(d.PlayerId)).Msg("drawing stored")
	})
}

func (s *session) changePhase(p domain.Phase) {
	prev := s.phase
	s.phase = p

	switch p {
	case domain.PhaseLobby:
		clear(s.ready)
		s.readyGate.Reset()
		s.readyGate.SetExpected(len(s.seats))
	case domain.PhaseDrawing:
		s.hub.ClearBuffer()
		clear(s.completed)
		s.drawingGate.Reset()
		s.drawingGate.SetExpected(len(s.seats))
	}

	s.sendLogged(rpc.All, rpc.ChangePhase{Phase: p})
	s.logger.Info().Stringer("from", prev).Stringer("to", p).Msg("phase changed")
	s.updateDescription()
}

// compact replaces the replay history by what a fresh peer needs: one board
// snapshot and the current dot of every slot.
func (s *session) compact(buffered []rpc.Call) []rpc.Call {
	snap, err := s.board.Snapshot()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compact replay history")
		return buffered
	}
	out := []rpc.Call{rpc.NewCall(rpc.AllBuffered, snap)}
	for i, state := range s.dots {
		if state == domain.DotEmpty {
			continue
		}
		out = append(out, rpc.NewCall(rpc.AllBuffered, rpc.UpdateDot{PlayerIndex: int32(i), State: state}))
	}
	s.logger.Debug().Int("from", len(buffered)).Int("to", len(out)).Msg("replay history compacted")
	return out
}

func (s *session) sendLogged(receivers rpc.Receivers, msg rpc.Message) {
	if err := s.hub.Send(receivers, msg); err != nil {
		s.logger.Error().Err(err).Stringer("rpc", msg.RpcId()).Msg("server call failed")
	}
}

func (s *session) flushPreview(now time.Time) {
	if s.board.Raster().Version() == s.flushed {
		return
	}
	s.publishPreview()
}

func (s *session) publishPreview() {
	raster := s.board.Raster()
	s.flushed = raster.Version()
	s.preview.Store(raster.Image())
}

func (s *session) reapIfIdle(now time.Time) {
	if len(s.seats) > 0 {
		return
	}
	if s.emptySince.IsZero() {
		s.emptySince = now
		return
	}
	if s.closing || s.parentLobby == nil || now.Sub(s.emptySince) < s.cfg.IdleTimeout {
		return
	}
	s.closing = true
	s.logger.Info().Msg("closing idle session")
	s.parentLobby.RemoveSession(s.id)
}

func (s *session) updateDescription() {
	if s.parentLobby != nil {
		s.parentLobby.RequestUpdateDescription(s.Description())
	}
}

package game

import (
	"context"
	"drawbattle/domain"
	"image"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- WebsocketConnection ---

type MockWebsocketConnection struct {
	mock.Mock
}

func (m *MockWebsocketConnection) Close(reason string) {
	m.Called(reason)
}

func (m *MockWebsocketConnection) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockWebsocketConnection) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockWebsocketConnection) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

// --- PeriodicTickerChannelCreator ---

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) (<-chan time.Time, func()) {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time), func() {}
}

// --- UserGetter ---

type MockUserGetter struct {
	mock.Mock
}

func (m *MockUserGetter) GetUserById(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

// --- DrawingStore ---

type MockDrawingStore struct {
	mock.Mock
}

func (m *MockDrawingStore) SaveDrawing(ctx context.Context, d domain.Drawing) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockDrawingStore) ListSessionDrawings(ctx context.Context, sessionId string) ([]domain.Drawing, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).([]domain.Drawing), args.Error(1)
}

func (m *MockDrawingStore) GetDrawing(ctx context.Context, id string) (domain.Drawing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Drawing), args.Error(1)
}

// --- Player ---

type MockPlayer struct {
	mock.Mock
}

func (m *MockPlayer) UserId() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlayer) Send(frame []byte) error {
	args := m.Called(frame)
	return args.Error(0)
}

func (m *MockPlayer) Ping() {
	m.Called()
}

func (m *MockPlayer) SetSession(s Session) {
	m.Called(s)
}

func (m *MockPlayer) CancelAndRelease() {
	m.Called()
}

// --- Session ---

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Send(ctx context.Context, e clientEnvelope) {
	m.Called(ctx, e)
}

func (m *MockSession) RemoveMe(ctx context.Context, p Player) {
	m.Called(ctx, p)
}

func (m *MockSession) RequestJoin(jreq sessionJoinRequest) {
	m.Called(jreq)
}

func (m *MockSession) Tick(now time.Time) {
	m.Called(now)
}

func (m *MockSession) PingPlayers() {
	m.Called()
}

func (m *MockSession) GameLoop() {
	m.Called()
}

func (m *MockSession) CloseAndRelease() {
	m.Called()
}

func (m *MockSession) Description() SessionDescription {
	args := m.Called()
	return args.Get(0).(SessionDescription)
}

func (m *MockSession) SetParentLobby(l Lobby) {
	m.Called(l)
}

func (m *MockSession) SetId(id string) {
	m.Called(id)
}

func (m *MockSession) Size() (width, height int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

func (m *MockSession) CanvasPreview() *image.NRGBA {
	args := m.Called()
	img, _ := args.Get(0).(*image.NRGBA)
	return img
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) AddAndRunSession(ctx context.Context, s Session) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockLobby) ForwardJoinRequest(ctx context.Context, jreq sessionJoinRequest) {
	m.Called(ctx, jreq)
}

func (m *MockLobby) GetSession(ctx context.Context, id string) (Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(Session)
	return s, args.Error(1)
}

func (m *MockLobby) GetPublicSessions(ctx context.Context) []SessionDescription {
	args := m.Called(ctx)
	return args.Get(0).([]SessionDescription)
}

func (m *MockLobby) RequestUpdateDescription(desc SessionDescription) {
	m.Called(desc)
}

func (m *MockLobby) RemoveSession(id string) {
	m.Called(id)
}

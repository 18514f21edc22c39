package rpc

import (
	"drawbattle/domain"

	"github.com/stretchr/testify/mock"
)

// --- Peer ---

type MockPeer struct {
	mock.Mock
}

func (m *MockPeer) PlayerId() domain.PlayerId {
	args := m.Called()
	return args.Get(0).(domain.PlayerId)
}

func (m *MockPeer) Send(frame []byte) error {
	args := m.Called(frame)
	return args.Error(0)
}

package game

import "time"

// PeriodicTickerChannelCreator hands out tickers. The returned stop func must
// be called once the channel is no longer read.
type PeriodicTickerChannelCreator interface {
	Create(every time.Duration) (<-chan time.Time, func())
}

type wallClock struct{}

func (wallClock) Create(every time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(every)
	return t.C, t.Stop
}

func NewTickerGen() wallClock {
	return wallClock{}
}

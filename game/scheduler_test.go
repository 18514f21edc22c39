package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewScheduler()
	var runs []time.Time
	s.Every("flush", 10*time.Millisecond, func(now time.Time) { runs = append(runs, now) })

	assert.Zero(t, s.Run(t0), "not started")

	s.Start(t0)
	assert.True(t, s.Running())
	assert.Zero(t, s.Run(t0.Add(5*time.Millisecond)))
	assert.Equal(t, 1, s.Run(t0.Add(10*time.Millisecond)))
	// missed intervals collapse into one run
	assert.Equal(t, 1, s.Run(t0.Add(55*time.Millisecond)))
	assert.Zero(t, s.Run(t0.Add(60*time.Millisecond)))
	assert.Equal(t, 1, s.Run(t0.Add(65*time.Millisecond)))

	s.Stop()
	assert.Zero(t, s.Run(t0.Add(time.Second)))
	assert.Equal(t, []time.Time{
		t0.Add(10 * time.Millisecond),
		t0.Add(55 * time.Millisecond),
		t0.Add(65 * time.Millisecond),
	}, runs)
}

func TestScheduler_TaskAddedWhileRunning(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewScheduler()
	s.Start(t0)
	ran := 0
	s.Every("late", time.Second, func(time.Time) { ran++ })

	assert.Zero(t, s.Run(t0.Add(time.Hour)), "first run only arms it")
	assert.Zero(t, s.Run(t0.Add(time.Hour+time.Millisecond)))
	assert.Equal(t, 1, s.Run(t0.Add(time.Hour+time.Second)))
	assert.Equal(t, 1, ran)
}

package game

import "time"

type scheduledTask struct {
	name  string
	every time.Duration
	next  time.Time
	run   func(now time.Time)
}

// Scheduler runs interval tasks from its owner's tick, on the owner's
// goroutine. Missed intervals are not replayed.
type Scheduler struct {
	tasks   []*scheduledTask
	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run at most once per interval while the scheduler is
// running. Registering on a running scheduler arms the task at the next Run.
func (s *Scheduler) Every(name string, interval time.Duration, fn func(now time.Time)) {
	s.tasks = append(s.tasks, &scheduledTask{name: name, every: interval, run: fn})
}

func (s *Scheduler) Start(now time.Time) {
	s.running = true
	for _, t := range s.tasks {
		t.next = now.Add(t.every)
	}
}

func (s *Scheduler) Stop() {
	s.running = false
}

func (s *Scheduler) Running() bool {
	return s.running
}

// Run executes every due task and returns how many ran.
func (s *Scheduler) Run(now time.Time) int {
	if !s.running {
		return 0
	}
	ran := 0
	for _, t := range s.tasks {
		if t.next.IsZero() {
			t.next = now.Add(t.every)
			continue
		}
		if now.Before(t.next) {
			continue
		}
		t.run(now)
		t.next = now.Add(t.every)
		ran++
	}
	return ran
}

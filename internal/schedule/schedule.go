// Package schedule runs fire-and-forget deferred tasks such as timers and
// timed re-enables.
package schedule

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Handle identifies one scheduled task. There is no cancellation.
type Handle struct {
	ID   string
	Name string
	Due  time.Time
}

// Scheduler starts tasks after a delay and tracks the ones still pending.
type Scheduler struct {
	logger *slog.Logger
	now    func() time.Time
	after  func(time.Duration, func()) *time.Timer

	mu      sync.Mutex
	pending map[string]Handle
	wg      sync.WaitGroup
}

// New constructs a scheduler backed by time.AfterFunc.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger:  logger,
		now:     time.Now,
		after:   time.AfterFunc,
		pending: make(map[string]Handle),
	}
}

// After runs fn once d has elapsed and returns immediately.
func (s *Scheduler) After(d time.Duration, name string, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	h := Handle{
		ID:   ulid.Make().String(),
		Name: name,
		Due:  s.now().Add(d),
	}

	s.mu.Lock()
	s.pending[h.ID] = h
	s.mu.Unlock()
	s.wg.Add(1)

	s.after(d, func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.pending, h.ID)
			s.mu.Unlock()
		}()
		defer func() {
			if r := recover(); r != nil && s.logger != nil {
				s.logger.Error("scheduled task panicked", "task", h.Name, "id", h.ID, "panic", r)
			}
		}()
		if s.logger != nil {
			s.logger.Debug("scheduled task firing", "task", h.Name, "id", h.ID)
		}
		fn()
	})

	if s.logger != nil {
		s.logger.Info("scheduled task", "task", h.Name, "id", h.ID, "due", h.Due.Format(time.RFC3339))
	}
	return h
}

// Pending lists tasks that have not fired yet, earliest first.
func (s *Scheduler) Pending() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Handle, 0, len(s.pending))
	for _, h := range s.pending {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Due.Before(out[j].Due) })
	return out
}

// Wait blocks until every task scheduled so far has run.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

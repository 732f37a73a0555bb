// Package session tracks running replay sessions. Sequencing several
// snapshots back to back lives here, outside the replay core, which only
// ever executes one (current, target) pair at a time.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/typecast/typecast-go/lib/replay"
)

// Session is one replay run (possibly a sequence of targets) on a document.
type Session struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	SnapshotID string    `json:"snapshotId,omitempty"`
	StartedAt  time.Time `json:"startedAt"`

	cancel context.CancelFunc

	mu         sync.RWMutex
	sched      *replay.Scheduler
	result     *replay.Result
	finishedAt time.Time
}

// Cancel requests cooperative cancellation. The replay stops at its next
// checkpoint; at most one in-flight mutation completes after this call.
func (s *Session) Cancel() {
	s.cancel()
}

// Done reports whether the session has finished.
func (s *Session) Done() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result != nil
}

// Result returns the final result, or nil while the session is running.
func (s *Session) Result() *replay.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	resultCopy := *s.result
	return &resultCopy
}

// State snapshots the progress of the currently running scheduler.
func (s *Session) State() replay.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sched == nil {
		return replay.State{}
	}
	return s.sched.State()
}

// FinishedAt returns when the session ended, zero while running.
func (s *Session) FinishedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finishedAt
}

func (s *Session) setScheduler(sched *replay.Scheduler) {
	s.mu.Lock()
	s.sched = sched
	s.mu.Unlock()
}

func (s *Session) finish(result replay.Result) {
	s.mu.Lock()
	s.result = &result
	s.finishedAt = time.Now().UTC()
	s.mu.Unlock()
}

// Package replay drives a live buffer through an edit script with real-time
// pacing. Deletions are applied atomically in source order, insertions are
// typed one unit at a time in target order, and cancellation is polled
// before every mutation.
package replay

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/diff"
	"github.com/typecast/typecast-go/lib/document"
)

// ErrInvalidRate is returned as a Failed result when the configured typing
// rate is not positive.
var ErrInvalidRate = errors.New("chars per second must be positive")

// ErrAlreadyRun is returned when a Scheduler is reused. Each replay owns its
// own Scheduler; state is discarded with it.
var ErrAlreadyRun = errors.New("scheduler has already run")

// Options configure one replay invocation.
type Options struct {
	// CharsPerSecond is the typing rate. Must be > 0.
	CharsPerSecond float64
	// AnimateDeletions paces the deletion pass the same way as the insertion
	// pass instead of removing each deleted span in one mutation. Offset
	// bookkeeping is identical either way.
	AnimateDeletions bool
}

// Delay returns the pause between two paced mutations.
func (o Options) Delay() time.Duration {
	return time.Duration(float64(time.Second) / o.CharsPerSecond)
}

// Scheduler executes one edit script against one buffer. A Scheduler is
// single-use: create it, call Run (or ComputeAndReplay), read the result.
type Scheduler struct {
	log *zap.SugaredLogger

	mu    sync.RWMutex
	state State
	ran   bool
}

// NewScheduler creates a scheduler in the Idle phase.
func NewScheduler(log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{log: log}
}

// State returns a snapshot of the replay's progress. Safe to call from other
// goroutines while Run is in flight.
func (s *Scheduler) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Scheduler) setPhase(p Phase) {
	s.mu.Lock()
	s.state.Phase = p
	s.mu.Unlock()
}

func (s *Scheduler) setCursor(scriptCursor int, bufferCursor int) {
	s.mu.Lock()
	s.state.ScriptCursor = scriptCursor
	s.state.BufferCursor = bufferCursor
	s.mu.Unlock()
}

func (s *Scheduler) countMutation() int {
	s.mu.Lock()
	s.state.Mutations++
	n := s.state.Mutations
	s.mu.Unlock()
	return n
}

func (s *Scheduler) finish(outcome Outcome, err error) Result {
	switch outcome {
	case Completed:
		s.setPhase(Done)
	case Cancelled:
		s.setPhase(PhaseCancelled)
	case Failed:
		s.setPhase(PhaseFailed)
	}
	return Result{Outcome: outcome, Err: err, Mutations: s.State().Mutations}
}

// Run executes the script against buf. It returns Completed once every
// mutation has been applied; the convergence replace is the caller's move
// (ComputeAndReplay performs it).
func (s *Scheduler) Run(ctx context.Context, buf document.Buffer, script diff.Script, opts Options) Result {
	s.mu.Lock()
	if s.ran {
		s.mu.Unlock()
		return Result{Outcome: Failed, Err: ErrAlreadyRun}
	}
	s.ran = true
	s.mu.Unlock()

	if opts.CharsPerSecond <= 0 {
		return s.finish(Failed, ErrInvalidRate)
	}

	if res, done := s.deletionPass(ctx, buf, script, opts); done {
		return res
	}
	if res, done := s.insertionPass(ctx, buf, script, opts); done {
		return res
	}
	return s.finish(Completed, nil)
}

// deletionPass removes every Delete span in source order. Each removal
// shifts all later buffer positions left, so the live position is re-derived
// from the source offset and the running removed total before every splice.
// After this pass the buffer holds exactly the retained skeleton of the
// target.
func (s *Scheduler) deletionPass(ctx context.Context, buf document.Buffer, script diff.Script, opts Options) (Result, bool) {
	s.setPhase(Deleting)
	var tracker offsetTracker

	for i, op := range script {
		switch op.Kind {
		case diff.Retain:
			tracker.advance(op.Len())
		case diff.Insert:
			// applied by the insertion pass
		case diff.Delete:
			if opts.AnimateDeletions {
				for _, unit := range diff.Units(op.Text) {
					s.setCursor(i, tracker.bufferPos())
					if err := ctx.Err(); err != nil {
						return s.finish(Cancelled, nil), true
					}
					if err := buf.Splice(tracker.bufferPos(), len(unit), ""); err != nil {
						s.log.Warnw("deletion rejected by buffer", "offset", tracker.bufferPos(), "error", err)
						return s.finish(Failed, err), true
					}
					s.countMutation()
					buf.Reveal(tracker.bufferPos())
					tracker.drop(len(unit))
					if err := s.pause(ctx, opts.Delay()); err != nil {
						return s.finish(Cancelled, nil), true
					}
				}
				continue
			}

			s.setCursor(i, tracker.bufferPos())
			if err := ctx.Err(); err != nil {
				return s.finish(Cancelled, nil), true
			}
			if err := buf.Splice(tracker.bufferPos(), op.Len(), ""); err != nil {
				s.log.Warnw("deletion rejected by buffer", "offset", tracker.bufferPos(), "error", err)
				return s.finish(Failed, err), true
			}
			s.countMutation()
			buf.Reveal(tracker.bufferPos())
			tracker.drop(op.Len())
		}
	}
	return Result{}, false
}

// insertionPass types every Insert span one unit at a time in target order,
// pausing between units. Target offsets are live buffer offsets here: the
// deletion pass already reduced the buffer to the retained skeleton, so
// everything left of the next insertion point is exactly the target's
// content up to that point.
func (s *Scheduler) insertionPass(ctx context.Context, buf document.Buffer, script diff.Script, opts Options) (Result, bool) {
	s.setPhase(Inserting)
	targetOffset := 0

	for i, op := range script {
		switch op.Kind {
		case diff.Retain:
			targetOffset += op.Len()
		case diff.Delete:
			// already applied
		case diff.Insert:
			for _, unit := range diff.Units(op.Text) {
				s.setCursor(i, targetOffset)
				if err := ctx.Err(); err != nil {
					return s.finish(Cancelled, nil), true
				}
				if err := buf.Splice(targetOffset, 0, unit); err != nil {
					s.log.Warnw("insertion rejected by buffer", "offset", targetOffset, "error", err)
					return s.finish(Failed, err), true
				}
				s.countMutation()
				targetOffset += len(unit)
				buf.Reveal(targetOffset)
				if err := s.pause(ctx, opts.Delay()); err != nil {
					return s.finish(Cancelled, nil), true
				}
			}
		}
	}
	return Result{}, false
}

// pause sleeps for the inter-mutation delay, waking early on cancellation.
func (s *Scheduler) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

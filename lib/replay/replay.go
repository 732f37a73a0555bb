package replay

import (
	"context"

	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/diff"
	"github.com/typecast/typecast-go/lib/document"
)

// ComputeAndReplay is the single entry point of the core: it diffs the
// buffer's current content against target, runs the scheduler, and on a
// completed run issues one final unconditional replace with the literal
// target. The animation is a best-effort affordance; the final replace is
// the guarantee that a Completed replay never leaves the buffer different
// from the target.
func (s *Scheduler) ComputeAndReplay(ctx context.Context, buf document.Buffer, target string, opts Options) Result {
	current := buf.Read()
	script := diff.Diff(current, target)

	if !script.HasChanges() {
		s.mu.Lock()
		s.ran = true
		s.mu.Unlock()
		s.log.Debugw("buffer already matches target, nothing to replay", "bytes", len(target))
		return s.finish(Completed, nil)
	}

	res := s.Run(ctx, buf, script, opts)
	if res.Outcome != Completed {
		return res
	}

	// Convergence safety net. Any drift left by the animation is corrected
	// here; a replay must never finish with content other than the target.
	if buf.Read() != target {
		s.log.Warnw("replay drifted from target, applying convergence replace",
			"buffer", buf.Len(), "target", len(target))
		if err := buf.Splice(0, buf.Len(), target); err != nil {
			return s.finish(Failed, err)
		}
	}
	return res
}

// ComputeAndReplay runs a one-shot replay with a fresh scheduler.
func ComputeAndReplay(ctx context.Context, log *zap.SugaredLogger, buf document.Buffer, target string, opts Options) Result {
	return NewScheduler(log).ComputeAndReplay(ctx, buf, target, opts)
}

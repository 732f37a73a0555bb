package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/exception"
	"github.com/typecast/typecast-go/lib/replay"
	"github.com/typecast/typecast-go/lib/ws"
)

// Stats are the cumulative replay figures the metrics endpoint polls.
type Stats struct {
	ActiveReplays    int
	CompletedReplays int
	CancelledReplays int
	FailedReplays    int
	CharactersTyped  int
}

// Target is one step of a replay sequence.
type Target struct {
	SnapshotID string
	Content    string
}

// Manager owns all replay sessions. One replay per document at a time;
// concurrent replays on the same buffer would desynchronize offsets.
type Manager struct {
	log *zap.SugaredLogger
	hub *ws.Hub

	mu       sync.Mutex
	sessions map[string]*Session
	byPath   map[string]*Session
	stats    Stats
}

// NewManager creates an empty session manager publishing events to hub.
func NewManager(log *zap.SugaredLogger, hub *ws.Hub) *Manager {
	return &Manager{
		log:      log,
		hub:      hub,
		sessions: make(map[string]*Session),
		byPath:   make(map[string]*Session),
	}
}

// Start begins a replay of the given targets against buf, in order, with
// pause between consecutive targets. It returns immediately; the replay runs
// in its own goroutine.
func (m *Manager) Start(path string, buf document.Buffer, targets []Target, opts replay.Options, pause time.Duration) (*Session, error) {
	if len(targets) == 0 {
		return nil, exception.NewReplayNotFoundError("")
	}

	m.mu.Lock()
	if running, ok := m.byPath[path]; ok && !running.Done() {
		m.mu.Unlock()
		return nil, exception.NewReplayConflictError(path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		ID:         uuid.NewString(),
		Path:       path,
		SnapshotID: targets[0].SnapshotID,
		StartedAt:  time.Now().UTC(),
		cancel:     cancel,
	}
	m.sessions[sess.ID] = sess
	m.byPath[path] = sess
	m.stats.ActiveReplays++
	m.mu.Unlock()

	m.hub.Publish(ws.MessageTypeReplayStarted, path, ws.ReplayStartedEvent{
		ReplayID:       sess.ID,
		SnapshotID:     sess.SnapshotID,
		CharsPerSecond: opts.CharsPerSecond,
	})

	go m.run(ctx, sess, buf, targets, opts, pause)
	return sess, nil
}

func (m *Manager) run(ctx context.Context, sess *Session, buf document.Buffer, targets []Target, opts replay.Options, pause time.Duration) {
	var total = replay.Result{Outcome: replay.Completed}

	for i, target := range targets {
		sched := replay.NewScheduler(m.log)
		sess.setScheduler(sched)

		res := sched.ComputeAndReplay(ctx, buf, target.Content, opts)
		total.Mutations += res.Mutations
		if res.Outcome != replay.Completed {
			total.Outcome = res.Outcome
			total.Err = res.Err
			break
		}

		if i < len(targets)-1 && pause > 0 {
			timer := time.NewTimer(pause)
			select {
			case <-ctx.Done():
				timer.Stop()
				total.Outcome = replay.Cancelled
			case <-timer.C:
			}
			if total.Outcome != replay.Completed {
				break
			}
		}
	}

	sess.finish(total)

	m.mu.Lock()
	m.stats.ActiveReplays--
	m.stats.CharactersTyped += total.Mutations
	switch total.Outcome {
	case replay.Completed:
		m.stats.CompletedReplays++
	case replay.Cancelled:
		m.stats.CancelledReplays++
	case replay.Failed:
		m.stats.FailedReplays++
	}
	m.mu.Unlock()

	event := ws.ReplayFinishedEvent{
		ReplayID:  sess.ID,
		Outcome:   total.Outcome.String(),
		Mutations: total.Mutations,
	}
	if total.Err != nil {
		event.Error = total.Err.Error()
	}
	m.hub.Publish(ws.MessageTypeReplayFinished, sess.Path, event)

	m.log.Infow("replay finished",
		"replayId", sess.ID,
		"path", sess.Path,
		"outcome", total.Outcome.String(),
		"mutations", total.Mutations)
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, exception.NewReplayNotFoundError(id)
	}
	return sess, nil
}

// Cancel requests cancellation of the session with the given id.
func (m *Manager) Cancel(id string) error {
	sess, err := m.Get(id)
	if err != nil {
		return err
	}
	sess.Cancel()
	return nil
}

// GetStats returns the cumulative replay statistics.
func (m *Manager) GetStats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

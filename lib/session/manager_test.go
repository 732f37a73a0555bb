package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/exception"
	"github.com/typecast/typecast-go/lib/replay"
	"github.com/typecast/typecast-go/lib/ws"
)

var fastOpts = replay.Options{CharsPerSecond: 1_000_000}

func newTestManager() *Manager {
	return NewManager(zap.NewNop().Sugar(), ws.NewHub())
}

func waitForDone(t *testing.T, sess *Session) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !sess.Done() {
		if time.Now().After(deadline) {
			t.Fatal("session did not finish in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManagerStartAndComplete(t *testing.T) {
	manager := newTestManager()
	buf := document.NewMemoryBuffer("")

	sess, err := manager.Start("main.go", buf, []Target{{SnapshotID: "s1", Content: "hello"}}, fastOpts, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "main.go", sess.Path)
	assert.Equal(t, "s1", sess.SnapshotID)

	waitForDone(t, sess)

	result := sess.Result()
	require.NotNil(t, result)
	assert.Equal(t, replay.Completed, result.Outcome)
	assert.Equal(t, "hello", buf.Read())
	assert.False(t, sess.FinishedAt().IsZero())

	stats, err := manager.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ActiveReplays)
	assert.Equal(t, 1, stats.CompletedReplays)
	assert.Equal(t, result.Mutations, stats.CharactersTyped)
}

func TestManagerSequencesTargets(t *testing.T) {
	manager := newTestManager()
	buf := document.NewMemoryBuffer("")

	targets := []Target{
		{SnapshotID: "s1", Content: "step one"},
		{SnapshotID: "s2", Content: "step one and two"},
		{SnapshotID: "s3", Content: "final"},
	}
	sess, err := manager.Start("main.go", buf, targets, fastOpts, 0)
	require.NoError(t, err)

	waitForDone(t, sess)

	result := sess.Result()
	require.NotNil(t, result)
	assert.Equal(t, replay.Completed, result.Outcome)
	assert.Equal(t, "final", buf.Read())
}

func TestManagerRejectsConcurrentReplayOnSamePath(t *testing.T) {
	manager := newTestManager()
	buf := document.NewMemoryBuffer("")

	slow := replay.Options{CharsPerSecond: 5}
	sess, err := manager.Start("main.go", buf, []Target{{Content: "a slow replay target"}}, slow, 0)
	require.NoError(t, err)
	defer func() {
		sess.Cancel()
		waitForDone(t, sess)
	}()

	_, err = manager.Start("main.go", document.NewMemoryBuffer(""), []Target{{Content: "x"}}, fastOpts, 0)
	var conflict *exception.ReplayConflictError
	assert.True(t, errors.As(err, &conflict))

	// A different document is unaffected.
	other, err := manager.Start("other.go", document.NewMemoryBuffer(""), []Target{{Content: "x"}}, fastOpts, 0)
	require.NoError(t, err)
	waitForDone(t, other)
}

func TestManagerCancel(t *testing.T) {
	manager := newTestManager()
	buf := document.NewMemoryBuffer("")

	slow := replay.Options{CharsPerSecond: 5}
	sess, err := manager.Start("main.go", buf, []Target{{Content: "a slow replay target"}}, slow, 0)
	require.NoError(t, err)

	require.NoError(t, manager.Cancel(sess.ID))
	waitForDone(t, sess)

	result := sess.Result()
	require.NotNil(t, result)
	assert.Equal(t, replay.Cancelled, result.Outcome)
	assert.Nil(t, result.Err)

	stats, err := manager.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CancelledReplays)
	assert.Equal(t, 0, stats.ActiveReplays)
}

func TestManagerAllowsNewReplayAfterFinish(t *testing.T) {
	manager := newTestManager()
	buf := document.NewMemoryBuffer("")

	first, err := manager.Start("main.go", buf, []Target{{Content: "one"}}, fastOpts, 0)
	require.NoError(t, err)
	waitForDone(t, first)

	second, err := manager.Start("main.go", buf, []Target{{Content: "two"}}, fastOpts, 0)
	require.NoError(t, err)
	waitForDone(t, second)

	assert.Equal(t, "two", buf.Read())
}

func TestManagerGetUnknown(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Get("nope")
	var notFound *exception.ReplayNotFoundError
	assert.True(t, errors.As(err, &notFound))

	err = manager.Cancel("nope")
	assert.True(t, errors.As(err, &notFound))
}

func TestManagerRejectsEmptyTargets(t *testing.T) {
	manager := newTestManager()

	_, err := manager.Start("main.go", document.NewMemoryBuffer(""), nil, fastOpts, 0)
	require.Error(t, err)
}

package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	err      error
	messages map[string][]string
}

func newRecordingNotifier(err error) *recordingNotifier {
	return &recordingNotifier{err: err, messages: make(map[string][]string)}
}

func (n *recordingNotifier) Notify(ctx context.Context, userID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[userID] = append(n.messages[userID], message)
	return n.err
}

func (n *recordingNotifier) count(userID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages[userID])
}

func TestDispatch_Delivers(t *testing.T) {
	n := newRecordingNotifier(nil)

	Dispatch(context.Background(), n, "user-1", "You leveled up!")

	assert.Equal(t, []string{"You leveled up!"}, n.messages["user-1"])
}

func TestDispatch_SwallowsDeliveryError(t *testing.T) {
	n := newRecordingNotifier(assert.AnError)

	// Must not panic or propagate; the caller has already committed state.
	Dispatch(context.Background(), n, "user-1", "hello")

	assert.Equal(t, 1, n.count("user-1"))
}

func TestDispatch_NilNotifier(t *testing.T) {
	Dispatch(context.Background(), nil, "user-1", "hello")
}

func TestDispatchAsync(t *testing.T) {
	n := newRecordingNotifier(nil)

	DispatchAsync(n, "user-1", "streak extended")
	DispatchAsync(nil, "user-2", "ignored")

	require.Eventually(t, func() bool {
		return n.count("user-1") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLogNotifier(t *testing.T) {
	require.NoError(t, LogNotifier{}.Notify(context.Background(), "user-1", "hi"))
}

package mail

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, subject, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to+"|"+subject)
	return s.err
}

func (s *recordingSender) delivered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)

	require.NoError(t, d.Send(context.Background(), "a@example.com", "uno", "<p>1</p>"))
	require.NoError(t, d.Send(context.Background(), "b@example.com", "dos", "<p>2</p>"))
	d.Close()

	assert.Equal(t, []string{"a@example.com|uno", "b@example.com|dos"}, sender.delivered())
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Send(context.Background(), "a@example.com", "msg", "<p>x</p>"))
	}
	d.Close()

	assert.Len(t, sender.delivered(), 10)
}

func TestDispatcher_SenderFailureDoesNotStopWorker(t *testing.T) {
	sender := &recordingSender{err: errors.New("relay down")}
	d := NewDispatcher(sender)

	require.NoError(t, d.Send(context.Background(), "a@example.com", "uno", "<p>1</p>"))
	require.NoError(t, d.Send(context.Background(), "b@example.com", "dos", "<p>2</p>"))
	d.Close()

	assert.Len(t, sender.delivered(), 2, "a failed delivery must not wedge the queue")
}

package email

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return f.err
}

func TestDispatcherDelivers(t *testing.T) {
	fake := &fakeSender{}
	d := NewDispatcher(fake, 2, 16, nil)

	d.Enqueue("a@example.com", "subject", "body")
	d.Enqueue("b@example.com", "subject", "body")
	d.Close()

	require.Len(t, fake.sent, 2)
	require.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, fake.sent)
}

func TestDispatcherSwallowsSendErrors(t *testing.T) {
	fake := &fakeSender{err: errors.New("smtp down")}
	d := NewDispatcher(fake, 1, 4, nil)

	d.Enqueue("a@example.com", "subject", "body")
	d.Close()

	require.Len(t, fake.sent, 1, "failure is logged, not surfaced")
}

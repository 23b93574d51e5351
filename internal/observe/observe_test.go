package observe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// counter: изменяемый источник данных для запросов.
type counter struct {
	mu  sync.Mutex
	val int
	err error
}

func (c *counter) set(v int) {
	c.mu.Lock()
	c.val = v
	c.mu.Unlock()
}

func (c *counter) fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func (c *counter) query(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val, c.err
}

func next[T any](t *testing.T, s *Stream[T]) T {
	t.Helper()
	select {
	case v, ok := <-s.Updates():
		require.True(t, ok, "stream closed unexpectedly")
		return v
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for snapshot")
	}
	var zero T
	return zero
}

func TestWatch_InitialSnapshotThenChanges(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{val: 1}

	s := Watch(context.Background(), hub, "users", src.query, nil)
	defer s.Close()

	assert.Equal(t, 1, next(t, s))

	src.set(2)
	hub.Publish("users")
	assert.Equal(t, 2, next(t, s))
}

func TestWatch_OtherTopicDoesNotWake(t *testing.T) {
	hub := NewHub(nil)
	var calls atomic.Int32
	q := func(context.Context) (int, error) { return int(calls.Add(1)), nil }

	s := Watch(context.Background(), hub, "entries/a", q, nil)
	defer s.Close()
	assert.Equal(t, 1, next(t, s))

	hub.Publish("entries/b")
	select {
	case v := <-s.Updates():
		t.Fatalf("unexpected snapshot %d", v)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatch_CoalescesToLatest(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{}

	s := Watch(context.Background(), hub, "t", src.query, nil)
	defer s.Close()
	assert.Equal(t, 0, next(t, s))

	for i := 1; i <= 10; i++ {
		src.set(i)
		hub.Publish("t")
	}

	// промежуточные снимки могут пропасть, но последний обязан прийти
	deadline := time.After(waitFor)
	for {
		select {
		case v := <-s.Updates():
			if v == 10 {
				return
			}
		case <-deadline:
			t.Fatal("latest snapshot was not delivered")
		}
	}
}

func TestWatch_QueryErrorKeepsStreamAlive(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{val: 1}
	boom := errors.New("boom")

	s := Watch(context.Background(), hub, "t", src.query, nil)
	defer s.Close()
	assert.Equal(t, 1, next(t, s))

	src.fail(boom)
	hub.Publish("t")
	require.Eventually(t, func() bool { return errors.Is(s.Err(), boom) }, waitFor, 5*time.Millisecond)

	src.fail(nil)
	src.set(3)
	hub.Publish("t")
	assert.Equal(t, 3, next(t, s))
	assert.NoError(t, s.Err())
}

func TestStream_CloseStopsDelivery(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{val: 1}

	s := Watch(context.Background(), hub, "t", src.query, nil)
	assert.Equal(t, 1, next(t, s))
	assert.Equal(t, 1, hub.Subscribers("t"))

	s.Close()
	s.Close()

	_, ok := <-s.Updates()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.Subscribers("t"))

	// публикация после закрытия не паникует и ничего не доставляет
	hub.Publish("t")
}

func TestWatch_ContextCancel(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{}
	ctx, cancel := context.WithCancel(context.Background())

	s := Watch(ctx, hub, "t", src.query, nil)
	next(t, s)
	cancel()

	select {
	case <-s.Done():
	case <-time.After(waitFor):
		t.Fatal("stream did not stop on context cancel")
	}
	_, ok := <-s.Updates()
	assert.False(t, ok)
}

func TestHub_CloseEndsStreams(t *testing.T) {
	hub := NewHub(nil)
	src := &counter{val: 7}

	s := Watch(context.Background(), hub, "t", src.query, nil)
	assert.Equal(t, 7, next(t, s))

	hub.Close()
	select {
	case <-s.Done():
	case <-time.After(waitFor):
		t.Fatal("stream did not stop after hub Close")
	}
	assert.Equal(t, 0, hub.Subscribers("t"))
	s.Close()

	// поток, открытый после Close, закрыт сразу
	late := Watch(context.Background(), hub, "t", src.query, nil)
	_, ok := <-late.Updates()
	assert.False(t, ok)
	late.Close()
}

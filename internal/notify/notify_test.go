package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutordesk/internal/academy"
	"tutordesk/internal/queue"
)

func note(msg string) academy.Notification {
	return academy.Notification{Level: academy.LevelSuccess, Message: msg, Entity: "session", Op: "start"}
}

func messages(ns []academy.Notification) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Message)
	}
	return out
}

func TestFeedKeepsNewestFirst(t *testing.T) {
	f := NewFeed(3)
	ctx := context.Background()

	assert.Empty(t, f.Recent(0))
	for _, m := range []string{"a", "b"} {
		require.NoError(t, f.Notify(ctx, note(m)))
	}
	assert.Equal(t, []string{"b", "a"}, messages(f.Recent(0)))

	for _, m := range []string{"c", "d", "e"} {
		require.NoError(t, f.Notify(ctx, note(m)))
	}
	assert.Equal(t, []string{"e", "d", "c"}, messages(f.Recent(0)))
	assert.Equal(t, []string{"e", "d"}, messages(f.Recent(2)))
}

func TestPublisherRoundTrip(t *testing.T) {
	q := queue.NewInMemory(2)
	ctx := context.Background()
	want := note("Session started")
	want.At = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, NewPublisher(q).Notify(ctx, want))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ch, err := q.Consume(ctx)
	require.NoError(t, err)
	msg := <-ch

	got, err := Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Decode(queue.Message{Type: "checkin"})
	assert.Error(t, err)
}

type failing struct{}

func (failing) Notify(context.Context, academy.Notification) error { return errors.New("boom") }

func TestMultiDeliversToAll(t *testing.T) {
	f := NewFeed(2)
	err := Multi{failing{}, f}.Notify(context.Background(), note("x"))
	assert.EqualError(t, err, "boom")
	assert.Len(t, f.Recent(0), 1)
}

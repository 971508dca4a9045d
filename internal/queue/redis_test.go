package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	q := NewRedisQueue(client, "test:notifications")
	q.timeout = time.Second
	return q, mr
}

func TestRedisQueueDefaultKey(t *testing.T) {
	q := NewRedisQueue(nil, "")
	assert.Equal(t, "tutordesk:notifications", q.key)
}

func TestRedisQueuePublishStoresJSON(t *testing.T) {
	q, mr := newTestRedisQueue(t)

	require.NoError(t, q.Publish(context.Background(), Message{Type: "notification", Body: json.RawMessage(`{"n":1}`)}))

	items, err := mr.List("test:notifications")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"type":"notification","body":{"n":1}}`, items[0])
}

func TestRedisQueueConsumeInOrderAndSkipsGarbage(t *testing.T) {
	q, mr := newTestRedisQueue(t)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, q.Publish(ctx, Message{Type: "notification", Body: json.RawMessage(`{"n":1}`)}))
	mr.Lpush("test:notifications", "not json")
	require.NoError(t, q.Publish(ctx, Message{Type: "notification", Body: json.RawMessage(`{"n":2}`)}))

	messages, err := q.Consume(ctx)
	require.NoError(t, err)

	for _, want := range []string{`{"n":1}`, `{"n":2}`} {
		select {
		case msg := <-messages:
			assert.Equal(t, "notification", msg.Type)
			assert.JSONEq(t, want, string(msg.Body))
		case <-time.After(3 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	for range messages {
	}
}

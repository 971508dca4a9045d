// Package notify delivers operation feedback to the people using the
// dashboard: an in-process feed for polling clients and a queue for workers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tutordesk/internal/academy"
	"tutordesk/internal/queue"
)

// MessageType tags notification messages on the queue.
const MessageType = "notification"

// Feed keeps the most recent notifications in memory.
type Feed struct {
	mu    sync.Mutex
	items []academy.Notification
	next  int
	full  bool
}

// NewFeed creates a feed holding at most size notifications.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 50
	}
	return &Feed{items: make([]academy.Notification, size)}
}

// Notify records n, evicting the oldest entry when the feed is full.
func (f *Feed) Notify(_ context.Context, n academy.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[f.next] = n
	f.next = (f.next + 1) % len(f.items)
	if f.next == 0 {
		f.full = true
	}
	return nil
}

// Recent returns up to limit notifications, newest first. limit <= 0 returns all.
func (f *Feed) Recent(limit int) []academy.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := f.next
	if f.full {
		count = len(f.items)
	}
	if limit > 0 && limit < count {
		count = limit
	}
	out := make([]academy.Notification, 0, count)
	for i := 1; i <= count; i++ {
		idx := (f.next - i + len(f.items)) % len(f.items)
		out = append(out, f.items[idx])
	}
	return out
}

// Publisher forwards notifications onto a queue.
type Publisher struct {
	q queue.Queue
}

// NewPublisher creates a publisher over q.
func NewPublisher(q queue.Queue) *Publisher {
	return &Publisher{q: q}
}

// Notify encodes n and publishes it.
func (p *Publisher) Notify(ctx context.Context, n academy.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return p.q.Publish(ctx, queue.Message{Type: MessageType, Body: body})
}

// Decode extracts a notification from a queue message.
func Decode(msg queue.Message) (academy.Notification, error) {
	if msg.Type != MessageType {
		return academy.Notification{}, fmt.Errorf("unexpected message type %q", msg.Type)
	}
	var n academy.Notification
	if err := json.Unmarshal(msg.Body, &n); err != nil {
		return academy.Notification{}, fmt.Errorf("decode notification: %w", err)
	}
	return n, nil
}

// Multi fans a notification out to every notifier, joining their errors.
type Multi []academy.Notifier

// Notify delivers n to all notifiers even when some fail.
func (m Multi) Notify(ctx context.Context, n academy.Notification) error {
	var errs []error
	for _, target := range m {
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package notify

import (
	"sync"
	"time"
)

// Default toast lifetimes
const (
	DefaultTTL      = 4 * time.Second
	DefaultErrorTTL = 6 * time.Second
	DefaultMaxToast = 5
)

// Toast is a queued notification with an expiry
type Toast struct {
	Notification
	ID        uint64
	ExpiresAt time.Time
}

// Queue is the in-app toast sink. The TUI reads Active on every render and
// calls Expire from a tick. At most DefaultMaxToast toasts are kept; the
// oldest are dropped first.
type Queue struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   uint64
	max      int
	ttl      time.Duration
	errorTTL time.Duration
	now      func() time.Time
}

// QueueOption configures a Queue
type QueueOption func(*Queue)

// WithTTL sets the lifetime of info/success and error toasts
func WithTTL(ttl, errorTTL time.Duration) QueueOption {
	return func(q *Queue) {
		q.ttl = ttl
		q.errorTTL = errorTTL
	}
}

// WithQueueClock replaces time.Now
func WithQueueClock(now func() time.Time) QueueOption {
	return func(q *Queue) {
		q.now = now
	}
}

// NewQueue creates an empty toast queue
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		max:      DefaultMaxToast,
		ttl:      DefaultTTL,
		errorTTL: DefaultErrorTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Send queues the notification as a toast
func (q *Queue) Send(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ttl := q.ttl
	if n.Kind == KindError {
		ttl = q.errorTTL
	}
	q.nextID++
	q.toasts = append(q.toasts, Toast{
		Notification: n,
		ID:           q.nextID,
		ExpiresAt:    q.now().Add(ttl),
	})
	if len(q.toasts) > q.max {
		q.toasts = append([]Toast(nil), q.toasts[len(q.toasts)-q.max:]...)
	}
}

// Active returns the toasts that have not expired, oldest first
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	var active []Toast
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			active = append(active, t)
		}
	}
	return active
}

// Expire drops expired toasts and returns how many were removed
func (q *Queue) Expire() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.toasts[:0]
	removed := 0
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		} else {
			removed++
		}
	}
	q.toasts = kept
	return removed
}

// Dismiss removes a toast by id
func (q *Queue) Dismiss(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// Len returns the number of queued toasts, expired or not
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

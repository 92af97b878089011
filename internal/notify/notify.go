package notify

import (
	"sync"
)

// Kind classifies a notification
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a short user-facing message (toast)
type Notification struct {
	Kind        Kind
	Title       string
	Description string
	Icon        string // Optional icon name or glyph
}

// Sender delivers notifications. Delivery is fire-and-forget: callers never
// learn whether a notification was shown.
type Sender interface {
	Send(Notification)
}

// Info builds an info notification
func Info(title, description string) Notification {
	return Notification{Kind: KindInfo, Title: title, Description: description}
}

// Success builds a success notification
func Success(title, description string) Notification {
	return Notification{Kind: KindSuccess, Title: title, Description: description}
}

// Error builds an error notification
func Error(title, description string) Notification {
	return Notification{Kind: KindError, Title: title, Description: description}
}

// WithIcon returns the notification with an icon set
func (n Notification) WithIcon(icon string) Notification {
	n.Icon = icon
	return n
}

type discard struct{}

func (discard) Send(Notification) {}

// Discard drops every notification
var Discard Sender = discard{}

// Notifier fans notifications out to every registered sender
type Notifier struct {
	mu      sync.RWMutex
	senders []Sender
}

// NewNotifier creates a new notifier
func NewNotifier(senders ...Sender) *Notifier {
	return &Notifier{senders: senders}
}

// Add registers another sender
func (n *Notifier) Add(s Sender) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.senders = append(n.senders, s)
}

// Send delivers the notification to every sender
func (n *Notifier) Send(notification Notification) {
	n.mu.RLock()
	senders := append([]Sender(nil), n.senders...)
	n.mu.RUnlock()

	for _, s := range senders {
		s.Send(notification)
	}
}

// Recorder keeps every notification it receives. Used in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// Send records the notification
func (r *Recorder) Send(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// All returns the recorded notifications in order
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

// Count returns how many notifications of a kind were recorded
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.sent {
		if n.Kind == kind {
			count++
		}
	}
	return count
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

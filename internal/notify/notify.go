// Package notify holds the short-lived messages ("toasts") shown to the
// operator after an action completes.
package notify

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeveritySuccess, SeverityError, SeverityInfo:
		return sev, nil
	case "":
		return SeveritySuccess, nil
	}

	return "", fmt.Errorf("unknown severity %q", s)
}

type Toast struct {
	ID        uuid.UUID
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Remaining returns the fraction of display time left at now, in [0, 1].
func (t Toast) Remaining(now time.Time) float64 {
	total := t.ExpiresAt.Sub(t.CreatedAt)
	if total <= 0 {
		return 0
	}

	left := t.ExpiresAt.Sub(now)

	return min(1, max(0, float64(left)/float64(total)))
}

// Notifier is the fire-and-forget sink used by services.
type Notifier interface {
	Notify(message string, severity Severity) Toast
}

// Queue is an ordered set of toasts, oldest first, each expiring after ttl.
// It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast
}

type Option func(*Queue)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	q := &Queue{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}

	return q
}

func (q *Queue) Notify(message string, severity Severity) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	t := Toast{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}

	q.pruneLocked(now)
	q.toasts = append(q.toasts, t)

	return t
}

// Active drops expired toasts and returns the rest, oldest first.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pruneLocked(q.now())

	return slices.Clone(q.toasts)
}

func (q *Queue) pruneLocked(now time.Time) {
	q.toasts = slices.DeleteFunc(q.toasts, func(t Toast) bool {
		return !now.Before(t.ExpiresAt)
	})
}

// Dismiss removes a toast before it expires. It reports whether it was present.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.toasts)
	q.toasts = slices.DeleteFunc(q.toasts, func(t Toast) bool {
		return t.ID == id
	})

	return len(q.toasts) != n
}

func (q *Queue) Now() time.Time {
	return q.now()
}

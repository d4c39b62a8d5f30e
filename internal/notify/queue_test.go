package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_NotifySweepsExpired(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	q := NewQueue(time.Second, WithClock(func() time.Time { return now }))

	for range 50 {
		q.Notify("Transaksi berhasil diselesaikan!", SeveritySuccess)
		now = now.Add(2 * time.Second)
	}

	require.Len(t, q.toasts, 1)
	assert.Equal(t, now.Add(-2*time.Second), q.toasts[0].CreatedAt)
}

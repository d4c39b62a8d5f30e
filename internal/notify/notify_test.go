package notify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kasir/internal/notify"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestQueue_OrderAndExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	q := notify.NewQueue(3*time.Second, notify.WithClock(clock.Now))

	first := q.Notify("Sale TRX/2026/10/001 completed", notify.SeveritySuccess)

	clock.Advance(time.Second)
	second := q.Notify("User removed", notify.SeverityError)

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)

	clock.Advance(2 * time.Second)

	active = q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	clock.Advance(time.Second)
	assert.Empty(t, q.Active())
}

func TestQueue_Dismiss(t *testing.T) {
	q := notify.NewQueue(time.Minute)

	toast := q.Notify("User data updated", notify.SeverityInfo)

	assert.True(t, q.Dismiss(toast.ID))
	assert.False(t, q.Dismiss(toast.ID))
	assert.False(t, q.Dismiss(uuid.New()))
	assert.Empty(t, q.Active())
}

func TestToast_Remaining(t *testing.T) {
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	toast := notify.Toast{CreatedAt: start, ExpiresAt: start.Add(4 * time.Second)}

	assert.InDelta(t, 1.0, toast.Remaining(start), 1e-9)
	assert.InDelta(t, 0.25, toast.Remaining(start.Add(3*time.Second)), 1e-9)
	assert.InDelta(t, 0.0, toast.Remaining(start.Add(time.Minute)), 1e-9)
}

func TestParseSeverity(t *testing.T) {
	sev, err := notify.ParseSeverity("")
	require.NoError(t, err)
	assert.Equal(t, notify.SeveritySuccess, sev)

	sev, err = notify.ParseSeverity("ERROR")
	require.NoError(t, err)
	assert.Equal(t, notify.SeverityError, sev)

	_, err = notify.ParseSeverity("warning")
	assert.Error(t, err)
}

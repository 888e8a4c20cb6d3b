package timer

import (
	"testing"
	"time"

	cron "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestRegistry() (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry()
	r.now = clock.now
	return r, clock
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatElapsed(0))
	assert.Equal(t, "01:02:05", FormatElapsed(3725))
	assert.Equal(t, "00:00:59", FormatElapsed(59))
	assert.Equal(t, "100:00:00", FormatElapsed(360000))
	assert.Equal(t, "00:00:00", FormatElapsed(-4))
}

func TestStartTickStop(t *testing.T) {
	r, _ := newTestRegistry()
	key := Key{UserID: "staff-1", BookingID: 42}

	require.True(t, r.Start(key))
	assert.False(t, r.Start(key), "second start is a no-op")

	for i := 0; i < 3725; i++ {
		r.Tick()
	}
	d, ok := r.Get(key)
	require.True(t, ok)
	assert.True(t, d.Running)
	assert.Equal(t, int64(3725), d.ElapsedSeconds)
	assert.Equal(t, "01:02:05", d.Elapsed)

	require.True(t, r.Stop(key))
	assert.False(t, r.Stop(key))
	r.Tick()
	d, _ = r.Get(key)
	assert.False(t, d.Running)
	assert.Equal(t, "01:02:05", d.Elapsed, "stopped timer keeps its last value")

	require.True(t, r.Start(key))
	d, _ = r.Get(key)
	assert.Equal(t, int64(0), d.ElapsedSeconds, "restart counts from zero")
}

func TestTimersAreIndependent(t *testing.T) {
	r, _ := newTestRegistry()
	a := Key{UserID: "staff-1", BookingID: 1}
	b := Key{UserID: "staff-1", BookingID: 2}
	c := Key{UserID: "staff-2", BookingID: 1}

	r.Start(a)
	r.Tick()
	r.Start(b)
	r.Tick()
	r.Start(c)

	da, _ := r.Get(a)
	db, _ := r.Get(b)
	dc, _ := r.Get(c)
	assert.Equal(t, int64(2), da.ElapsedSeconds)
	assert.Equal(t, int64(1), db.ElapsedSeconds)
	assert.Equal(t, int64(0), dc.ElapsedSeconds)
	assert.Len(t, r.ForUser("staff-1"), 2)

	assert.Equal(t, 2, r.DropUser("staff-1"))
	assert.Empty(t, r.ForUser("staff-1"))
	assert.Len(t, r.ForUser("staff-2"), 1)
}

func TestResetForgetsTimer(t *testing.T) {
	r, _ := newTestRegistry()
	key := Key{UserID: "staff-1", BookingID: 42}
	r.Start(key)
	r.Tick()
	r.Reset(key)

	d, ok := r.Get(key)
	assert.False(t, ok)
	assert.Equal(t, "00:00:00", d.Elapsed)
}

func TestPruneStopped(t *testing.T) {
	r, clock := newTestRegistry()
	stopped := Key{UserID: "staff-1", BookingID: 1}
	running := Key{UserID: "staff-1", BookingID: 2}
	r.Start(stopped)
	r.Stop(stopped)
	r.Start(running)

	clock.t = clock.t.Add(13 * time.Hour)
	assert.Equal(t, 1, r.PruneStopped(12*time.Hour))

	_, ok := r.Get(stopped)
	assert.False(t, ok)
	_, ok = r.Get(running)
	assert.True(t, ok, "running timers are never pruned")
}

func TestScheduleRegistersTick(t *testing.T) {
	r, _ := newTestRegistry()
	c := cron.New()
	require.NoError(t, r.Schedule(c))
	assert.Len(t, c.Entries(), 1)
}

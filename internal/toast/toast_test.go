package toast

import (
	"testing"
	"time"

	"github.com/idilsaglam/pokestats/internal/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier() (*Notifier, *sched.Manual) {
	clock := sched.NewManual(time.Unix(0, 0))
	return New(clock), clock
}

func TestShow_Lifecycle(t *testing.T) {
	n, clock := newTestNotifier()
	assert.Equal(t, 0, n.Len())
	assert.Empty(t, n.View())

	id := n.Show("Copied!", KindSuccess, 1000*time.Millisecond)

	msgs := n.Snapshot()
	require.Len(t, msgs, 1, "toast is in the container immediately")
	assert.Equal(t, id, msgs[0].ID)
	assert.Equal(t, KindSuccess, msgs[0].Kind)
	assert.False(t, msgs[0].Visible)

	clock.Advance(10 * time.Millisecond)
	assert.True(t, n.Snapshot()[0].Visible)

	clock.Advance(990 * time.Millisecond)
	require.Equal(t, 1, n.Len(), "fading out, not yet removed")
	assert.False(t, n.Snapshot()[0].Visible)

	clock.Advance(299 * time.Millisecond)
	assert.Equal(t, 1, n.Len())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 0, n.Len())
}

func TestShow_Defaults(t *testing.T) {
	n, clock := newTestNotifier()
	n.Show("hello", "", -1)

	m := n.Snapshot()[0]
	assert.Equal(t, KindInfo, m.Kind)
	assert.Equal(t, DefaultDuration, m.Duration)

	clock.Advance(DefaultDuration + 300*time.Millisecond)
	assert.Equal(t, 0, n.Len())
}

func TestShow_ZeroDurationHidesAtOnce(t *testing.T) {
	n, clock := newTestNotifier()
	n.Show("gone", KindInfo, 0)
	require.Equal(t, 1, n.Len())

	clock.Advance(10 * time.Millisecond)
	assert.False(t, n.Snapshot()[0].Visible, "fade-out already started")

	clock.Advance(290 * time.Millisecond)
	assert.Equal(t, 0, n.Len())
}

func TestShortcuts(t *testing.T) {
	n, _ := newTestNotifier()
	n.Success("a")
	n.Error("b")
	n.Info("c")

	msgs := n.Snapshot()
	require.Len(t, msgs, 3)
	assert.Equal(t, []Kind{KindSuccess, KindError, KindInfo}, []Kind{msgs[0].Kind, msgs[1].Kind, msgs[2].Kind})
	for _, m := range msgs {
		assert.Equal(t, DefaultDuration, m.Duration)
	}
}

func TestToastsAreTimedIndependently(t *testing.T) {
	n, clock := newTestNotifier()
	n.Show("long", KindInfo, 2*time.Second)
	clock.Advance(500 * time.Millisecond)
	n.Show("short", KindError, 100*time.Millisecond)
	require.Equal(t, 2, n.Len())

	clock.Advance(400 * time.Millisecond)
	msgs := n.Snapshot()
	require.Len(t, msgs, 1)
	assert.Equal(t, "long", msgs[0].Text)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, n.Len())
}

func TestOnChange(t *testing.T) {
	n, clock := newTestNotifier()
	calls := 0
	n.OnChange(func() {
		calls++
		_ = n.Len() // must not deadlock
	})

	n.Show("x", KindInfo, 100*time.Millisecond)
	clock.Advance(time.Second)
	// added, visible, hidden, removed
	assert.Equal(t, 4, calls)
}

func TestView(t *testing.T) {
	n, clock := newTestNotifier()
	n.Show("Saved", KindSuccess, time.Second)
	n.Show("Failed", KindError, time.Second)
	clock.Advance(20 * time.Millisecond)

	v := n.View()
	assert.Contains(t, v, "Saved")
	assert.Contains(t, v, "Failed")
}

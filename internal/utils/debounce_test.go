package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/idilsaglam/pokestats/internal/sched"
	"github.com/stretchr/testify/assert"
)

func TestDebounce_CallsOnceWithLastArgument(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	var calls []string
	fn := Debounce(clock, 300*time.Millisecond, func(q string) { calls = append(calls, q) })

	fn("p")
	clock.Advance(100 * time.Millisecond)
	fn("pi")
	clock.Advance(100 * time.Millisecond)
	fn("pik")

	clock.Advance(299 * time.Millisecond)
	assert.Empty(t, calls, "still inside the quiet window")

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"pik"}, calls)

	clock.Advance(time.Second)
	assert.Len(t, calls, 1)
}

func TestDebounce_SeparateBursts(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	var calls []int
	fn := Debounce(clock, 50*time.Millisecond, func(n int) { calls = append(calls, n) })

	for i := 1; i <= 5; i++ {
		fn(i)
	}
	clock.Advance(60 * time.Millisecond)
	fn(6)
	clock.Advance(60 * time.Millisecond)

	assert.Equal(t, []int{5, 6}, calls)
}

func TestDebouncer_FlushAndCancel(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	var calls []string
	d := NewDebouncer(clock, time.Second, func(s string) { calls = append(calls, s) })

	d.Call("a")
	d.Flush()
	assert.Equal(t, []string{"a"}, calls)
	assert.Equal(t, 0, clock.Pending())

	d.Call("b")
	d.Cancel()
	clock.Advance(2 * time.Second)
	assert.Equal(t, []string{"a"}, calls)

	d.Flush()
	assert.Equal(t, []string{"a"}, calls, "flush with nothing pending is a no-op")
}

func TestDebounce_RealClock(t *testing.T) {
	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	fn := Debounce(sched.Real(), 20*time.Millisecond, func(n int) {
		mu.Lock()
		got = append(got, n)
		mu.Unlock()
		close(done)
	})
	for i := 0; i < 10; i++ {
		fn(i)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{9}, got)
}

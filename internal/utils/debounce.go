package utils

import (
	"sync"
	"time"

	"github.com/idilsaglam/pokestats/internal/sched"
)

// Debouncer delays fn until wait has passed without another Call.
// Only the latest argument is delivered. There is no leading-edge call.
type Debouncer[T any] struct {
	clock sched.Clock
	wait  time.Duration
	fn    func(T)

	mu   sync.Mutex
	gen  uint64
	task sched.Task
	last T
}

func NewDebouncer[T any](clock sched.Clock, wait time.Duration, fn func(T)) *Debouncer[T] {
	if clock == nil {
		clock = sched.Real()
	}
	return &Debouncer[T]{clock: clock, wait: wait, fn: fn}
}

// Debounce is the functional form of NewDebouncer(...).Call.
func Debounce[T any](clock sched.Clock, wait time.Duration, fn func(T)) func(T) {
	return NewDebouncer(clock, wait, fn).Call
}

// Call supersedes any pending invocation and reschedules fn with arg.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.task != nil {
		d.task.Cancel()
	}
	d.gen++
	gen := d.gen
	d.last = arg
	d.task = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Flush runs a pending invocation now. No-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.task == nil {
		d.mu.Unlock()
		return
	}
	d.task.Cancel()
	gen := d.gen
	d.mu.Unlock()
	d.fire(gen)
}

// Cancel drops a pending invocation.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task != nil {
		d.task.Cancel()
		d.task = nil
	}
	d.gen++
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// a newer Call (or Cancel) won the race with this timer
	if gen != d.gen || d.task == nil {
		d.mu.Unlock()
		return
	}
	arg := d.last
	d.task = nil
	d.mu.Unlock()

	d.fn(arg)
}

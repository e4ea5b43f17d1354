// Package toast shows short-lived notifications. Each toast fades in
// shortly after it is added, stays for its duration, fades out and is
// then removed. Toasts are timed independently; there is no queue.
package toast

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/idilsaglam/pokestats/internal/sched"
)

// Kind selects the toast colour.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

const (
	DefaultDuration = 3000 * time.Millisecond
	enterDelay      = 10 * time.Millisecond
	leaveDelay      = 300 * time.Millisecond
)

// Message is one toast. Visible is false while it fades in or out.
type Message struct {
	ID       string
	Text     string
	Kind     Kind
	Duration time.Duration
	Visible  bool

	leaving bool
}

// container is created on the first Show and reused afterwards.
type container struct {
	items []*Message
}

type styles struct {
	kinds  map[Kind]lipgloss.Style
	hidden lipgloss.Style
	stack  lipgloss.Style
}

// Notifier owns the toast container. It is safe for concurrent use.
type Notifier struct {
	clock sched.Clock

	mu        sync.Mutex
	box       *container
	onChange  func()
	stylesFor sync.Once
	st        *styles
}

// New returns a notifier scheduling on clock (real time when nil).
func New(clock sched.Clock) *Notifier {
	if clock == nil {
		clock = sched.Real()
	}
	return &Notifier{clock: clock}
}

// OnChange registers fn to be called after every state change, outside
// the notifier lock. The TUI uses it to trigger a repaint.
func (n *Notifier) OnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Show adds a toast and returns its id. A negative duration means
// DefaultDuration. Zero starts the fade-out at once, so the toast is
// never drawn visible. An empty kind means KindInfo.
func (n *Notifier) Show(text string, kind Kind, d time.Duration) string {
	if d < 0 {
		d = DefaultDuration
	}
	if kind == "" {
		kind = KindInfo
	}
	msg := &Message{ID: uuid.NewString(), Text: text, Kind: kind, Duration: d}

	n.mu.Lock()
	box := n.containerLocked()
	box.items = append(box.items, msg)
	n.mu.Unlock()
	n.changed()

	n.clock.AfterFunc(enterDelay, func() {
		n.setVisible(msg, true)
	})
	n.clock.AfterFunc(d, func() {
		n.mu.Lock()
		msg.leaving = true
		n.mu.Unlock()
		n.setVisible(msg, false)
		n.clock.AfterFunc(leaveDelay, func() { n.remove(msg) })
	})
	return msg.ID
}

func (n *Notifier) Success(text string) string { return n.Show(text, KindSuccess, DefaultDuration) }
func (n *Notifier) Error(text string) string   { return n.Show(text, KindError, DefaultDuration) }
func (n *Notifier) Info(text string) string    { return n.Show(text, KindInfo, DefaultDuration) }

// Snapshot returns copies of the toasts currently in the container,
// oldest first.
func (n *Notifier) Snapshot() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.box == nil {
		return nil
	}
	out := make([]Message, 0, len(n.box.items))
	for _, m := range n.box.items {
		out = append(out, *m)
	}
	return out
}

// Len is the number of toasts in the container.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.box == nil {
		return 0
	}
	return len(n.box.items)
}

// View renders the stack, newest at the bottom, right aligned.
// Toasts that are fading are drawn faint.
func (n *Notifier) View() string {
	msgs := n.Snapshot()
	if len(msgs) == 0 {
		return ""
	}
	st := n.styles()
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		s := st.kinds[m.Kind]
		if !m.Visible {
			s = s.Inherit(st.hidden)
		}
		lines = append(lines, s.Render(m.Text))
	}
	return st.stack.Render(strings.Join(lines, "\n"))
}

func (n *Notifier) containerLocked() *container {
	if n.box == nil {
		n.box = &container{}
	}
	return n.box
}

func (n *Notifier) styles() *styles {
	n.stylesFor.Do(func() {
		base := lipgloss.NewStyle().
			Padding(0, 2).
			MarginTop(1).
			Foreground(lipgloss.Color("#FFFFFF"))
		n.st = &styles{
			kinds: map[Kind]lipgloss.Style{
				KindSuccess: base.Background(lipgloss.Color("#009C3B")),
				KindError:   base.Background(lipgloss.Color("#DC3545")),
				KindInfo:    base.Background(lipgloss.Color("#0D6EFD")),
			},
			hidden: lipgloss.NewStyle().Faint(true),
			stack:  lipgloss.NewStyle().Align(lipgloss.Right),
		}
	})
	return n.st
}

func (n *Notifier) setVisible(m *Message, v bool) {
	n.mu.Lock()
	if v && m.leaving {
		n.mu.Unlock()
		return
	}
	m.Visible = v
	n.mu.Unlock()
	n.changed()
}

func (n *Notifier) remove(m *Message) {
	n.mu.Lock()
	if n.box != nil {
		for i, it := range n.box.items {
			if it == m {
				n.box.items = append(n.box.items[:i], n.box.items[i+1:]...)
				break
			}
		}
	}
	n.mu.Unlock()
	n.changed()
}

func (n *Notifier) changed() {
	n.mu.Lock()
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Package menu implements the open/closed state of a click-toggled menu.
package menu

import "sync"

// State of a menu.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Rect is a hit area in terminal cells. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Controller toggles a menu from its button and closes it on clicks
// outside both the button and the menu. It starts closed.
type Controller struct {
	mu     sync.Mutex
	state  State
	button Rect
	menu   Rect
}

func New() *Controller {
	return &Controller{}
}

// Bind sets the hit areas of the button and of the open menu.
func (c *Controller) Bind(button, menu Rect) {
	c.mu.Lock()
	c.button, c.menu = button, menu
	c.mu.Unlock()
}

// Click applies a click at (x, y) and returns the resulting state.
func (c *Controller) Click(x, y int) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.button.Contains(x, y):
		c.toggleLocked()
	case c.state == Open && c.menu.Contains(x, y):
		// clicks inside the menu are handled by its items
	default:
		c.state = Closed
	}
	return c.state
}

// Toggle flips the state, as a button click does.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggleLocked()
	return c.state
}

// Close forces the menu closed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.state = Closed
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsOpen() bool { return c.State() == Open }

func (c *Controller) toggleLocked() {
	if c.state == Open {
		c.state = Closed
	} else {
		c.state = Open
	}
}

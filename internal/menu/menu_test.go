package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBound() *Controller {
	c := New()
	// button in the top-left corner, menu panel below it
	c.Bind(Rect{X: 0, Y: 0, W: 8, H: 1}, Rect{X: 0, Y: 1, W: 24, H: 6})
	return c
}

func TestController_StartsClosed(t *testing.T) {
	assert.Equal(t, Closed, New().State())
	assert.False(t, New().IsOpen())
}

func TestController_ButtonToggles(t *testing.T) {
	c := newBound()
	assert.Equal(t, Open, c.Click(3, 0))
	assert.Equal(t, Closed, c.Click(7, 0))
	assert.Equal(t, Open, c.Click(0, 0))
}

func TestController_OutsideClickCloses(t *testing.T) {
	c := newBound()
	c.Click(1, 0)
	assert.True(t, c.IsOpen())

	assert.Equal(t, Closed, c.Click(40, 10))
	assert.Equal(t, Closed, c.Click(40, 10), "outside click while closed is a no-op")
}

func TestController_InsideMenuKeepsOpen(t *testing.T) {
	c := newBound()
	c.Click(1, 0)

	assert.Equal(t, Open, c.Click(10, 3))
	assert.Equal(t, Open, c.Click(23, 6))
	assert.Equal(t, Closed, c.Click(24, 6), "one cell past the menu edge")
}

func TestController_MenuAreaWhileClosed(t *testing.T) {
	c := newBound()
	assert.Equal(t, Closed, c.Click(10, 3))
}

func TestController_ToggleAndClose(t *testing.T) {
	c := New()
	assert.Equal(t, Open, c.Toggle())
	c.Close()
	assert.Equal(t, Closed, c.State())
	assert.Equal(t, "closed", c.State().String())
	assert.Equal(t, "open", c.Toggle().String())
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 2, W: 3, H: 2}
	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 3))
	assert.False(t, r.Contains(5, 3))
	assert.False(t, r.Contains(2, 4))
	assert.False(t, Rect{}.Contains(0, 0))
}

package tui

import (
	"errors"

	"github.com/studiowebux/blueline/internal/render"
)

var errCanvasClosed = errors.New("canvas closed")

// canvas is the render.Terminal behind the Bubble Tea view. Bubble Tea
// repaints from View, so every intent simply replaces the frame.
type canvas struct {
	frame  *render.Frame
	ready  bool
	closed bool
	draws  map[render.Category]int
}

func newCanvas() *canvas {
	return &canvas{draws: make(map[render.Category]int)}
}

func (c *canvas) Initialize() error {
	c.ready = true
	return nil
}

func (c *canvas) Cleanup() error {
	c.closed = true
	return nil
}

func (c *canvas) Draw(in render.Intent) error {
	if c.closed {
		return errCanvasClosed
	}
	c.frame = in.Frame
	c.draws[in.Category]++
	return nil
}

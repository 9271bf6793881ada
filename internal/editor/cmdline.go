package editor

import "github.com/studiowebux/blueline/internal/grapheme"

// cmdline is the command-mode text and its cursor, in grapheme clusters.
type cmdline struct {
	text   []string
	cursor int
}

func (c *cmdline) String() string { return grapheme.Join(c.text) }

func (c *cmdline) reset() {
	c.text = nil
	c.cursor = 0
}

func (c *cmdline) insert(s string) {
	clusters := grapheme.Split(s)
	next := make([]string, 0, len(c.text)+len(clusters))
	next = append(next, c.text[:c.cursor]...)
	next = append(next, clusters...)
	next = append(next, c.text[c.cursor:]...)
	c.text = next
	c.cursor += len(clusters)
}

// backspace deletes before the cursor. It reports false when the line was
// already empty, which cancels command mode.
func (c *cmdline) backspace() bool {
	if len(c.text) == 0 {
		return false
	}
	if c.cursor > 0 {
		c.text = append(c.text[:c.cursor-1], c.text[c.cursor:]...)
		c.cursor--
	}
	return true
}

func (c *cmdline) delete() {
	if c.cursor < len(c.text) {
		c.text = append(c.text[:c.cursor], c.text[c.cursor+1:]...)
	}
}

func (c *cmdline) home() { c.cursor = 0 }
func (c *cmdline) end() { c.cursor = len(c.text) }

// cell is the cursor position in display cells.
func (c *cmdline) cell() int {
	return grapheme.CellOffset(c.text, c.cursor)
}

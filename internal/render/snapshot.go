package render

import (
	"encoding/binary"
	"hash"
	"hash/fnv"

	"github.com/studiowebux/blueline/internal/window"
)

// Snapshot is the projection of observable state the diff is computed on.
// It is replaced after every rendered frame, never merged.
type Snapshot struct {
	Mode            string
	Cursor          Cursor
	ActivePane      window.PaneID
	ResponseVisible bool
	Heights         [2]int
	Width           int
	Height          int
	Options         [2]window.Options
	Versions        [2]uint64
	Generations     [2]uint64
	Scrolls         [2]int
	Rows            []uint64
	Status          uint64
}

// Capture builds the snapshot of a composed frame.
func Capture(w *window.Window, f *Frame) *Snapshot {
	s := &Snapshot{
		Mode:            f.Status.Mode,
		Cursor:          f.Cursor,
		ActivePane:      w.ActiveID(),
		ResponseVisible: w.ResponseVisible(),
		Width:           f.Width,
		Height:          f.Height,
		Rows:            make([]uint64, len(f.Rows)),
		Status:          hashStatus(f.Status),
	}
	for _, id := range []window.PaneID{window.Request, window.Response} {
		p := w.Pane(id)
		s.Heights[id] = p.Height()
		s.Options[id] = p.Options()
		s.Versions[id] = p.Buffer().Version()
		s.Generations[id] = p.Generation()
		s.Scrolls[id] = p.Scroll()
	}
	for i, r := range f.Rows {
		s.Rows[i] = hashRow(r)
	}
	return s
}

// Decision is the outcome of Decide.
type Decision struct {
	Category      Category
	Rows          []int
	StatusChanged bool
}

// Decide picks the redraw for going from prev to cur. A nil prev is the
// initial frame.
func Decide(prev, cur *Snapshot) Decision {
	if prev == nil || layoutChanged(prev, cur) {
		return Decision{Category: Full}
	}

	var rows []int
	for i := range cur.Rows {
		if cur.Rows[i] != prev.Rows[i] {
			rows = append(rows, i)
		}
	}
	statusChanged := prev.Status != cur.Status
	if len(rows) > 0 || statusChanged || prev.Versions != cur.Versions || prev.Scrolls != cur.Scrolls {
		return Decision{Category: ContentUpdate, Rows: rows, StatusChanged: statusChanged}
	}
	if prev.Cursor != cur.Cursor {
		return Decision{Category: CursorOnly}
	}
	return Decision{Category: None}
}

func layoutChanged(prev, cur *Snapshot) bool {
	return prev.Mode != cur.Mode ||
		prev.ActivePane != cur.ActivePane ||
		prev.ResponseVisible != cur.ResponseVisible ||
		prev.Heights != cur.Heights ||
		prev.Width != cur.Width ||
		prev.Height != cur.Height ||
		prev.Options != cur.Options ||
		prev.Generations != cur.Generations ||
		len(prev.Rows) != len(cur.Rows)
}

type hasher struct {
	buf [8]byte
	h   hash.Hash64
}

func newHasher() *hasher { return &hasher{h: fnv.New64a()} }

func (x *hasher) int(v int) {
	binary.LittleEndian.PutUint64(x.buf[:], uint64(v))
	_, _ = x.h.Write(x.buf[:])
}

func (x *hasher) bool(v bool) {
	if v {
		x.int(1)
		return
	}
	x.int(0)
}

func (x *hasher) str(s string) {
	x.int(len(s))
	_, _ = x.h.Write([]byte(s))
}

func hashRow(r Row) uint64 {
	x := newHasher()
	x.int(int(r.Pane))
	x.int(r.Line)
	x.str(r.Gutter)
	x.str(r.Text)
	x.bool(r.Filler)
	x.bool(r.Active)
	x.bool(r.Selection != nil)
	if r.Selection != nil {
		x.int(r.Selection.From)
		x.int(r.Selection.To)
	}
	return x.h.Sum64()
}

func hashStatus(s Status) uint64 {
	x := newHasher()
	x.str(s.Mode)
	x.str(s.Left)
	x.str(s.Right)
	x.bool(s.IsError)
	x.bool(s.Command)
	x.str(s.CommandText)
	x.int(s.CommandCursor)
	return x.h.Sum64()
}

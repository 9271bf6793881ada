package buffer

import "github.com/studiowebux/blueline/internal/grapheme"

// InsertText inserts text at p and returns the position just after it. Text
// may contain line breaks.
func (b *Buffer) InsertText(p Position, text string) (Position, error) {
	if err := b.checkBounds(p); err != nil {
		return p, err
	}
	if text == "" {
		return p, nil
	}
	cur := p
	for i, part := range splitLines(text) {
		if i > 0 {
			cur, _ = b.InsertNewline(cur)
		}
		if len(part) == 0 {
			continue
		}
		line := b.lines[cur.Line]
		head := grapheme.Join(line[:cur.Column]) + grapheme.Join(part)
		clusters := b.resplit(cur.Line, head+grapheme.Join(line[cur.Column:]))
		cur.Column = columnAfter(clusters, len(head))
		b.version++
	}
	return cur, nil
}

// InsertChar inserts one grapheme cluster at p. The returned position is one
// column to the right, or unchanged when a combining mark joins the cluster
// before p.
func (b *Buffer) InsertChar(p Position, cluster string) (Position, error) {
	if err := b.checkBounds(p); err != nil {
		return p, err
	}
	if cluster == "\n" {
		return b.InsertNewline(p)
	}
	clusters := grapheme.Split(cluster)
	if len(clusters) == 0 {
		return p, nil
	}
	return b.InsertText(p, cluster)
}

// InsertNewline splits the line at p. Content right of p moves to a new line
// below and the returned position is column 0 of that line.
func (b *Buffer) InsertNewline(p Position) (Position, error) {
	if err := b.checkBounds(p); err != nil {
		return p, err
	}
	line := b.lines[p.Line]
	head := append([]string(nil), line[:p.Column]...)
	tail := append([]string(nil), line[p.Column:]...)

	lines := make([][]string, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:p.Line]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[p.Line+1:]...)
	b.lines = lines
	b.version++
	return Position{Line: p.Line + 1, Column: 0}, nil
}

// OpenLine inserts an empty line at index i (0..LineCount) and returns its
// position.
func (b *Buffer) OpenLine(i int) (Position, error) {
	if i < 0 || i > len(b.lines) {
		return Position{}, b.checkBounds(Position{Line: i})
	}
	lines := make([][]string, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:i]...)
	lines = append(lines, []string{})
	lines = append(lines, b.lines[i:]...)
	b.lines = lines
	b.version++
	return Position{Line: i, Column: 0}, nil
}

// DeleteBackward removes the cluster before p. At column 0 the line is joined
// onto the previous one and the returned position is the join point. At the
// very start of the buffer nothing happens.
func (b *Buffer) DeleteBackward(p Position) (Position, error) {
	if err := b.checkBounds(p); err != nil {
		return p, err
	}
	if p.Column > 0 {
		line := b.lines[p.Line]
		head := grapheme.Join(line[:p.Column-1])
		clusters := b.resplit(p.Line, head+grapheme.Join(line[p.Column:]))
		b.version++
		return Position{Line: p.Line, Column: columnBefore(clusters, len(head))}, nil
	}
	if p.Line == 0 {
		return p, nil
	}
	prev := p.Line - 1
	seam := len(grapheme.Join(b.lines[prev]))
	clusters := b.joinWithNext(prev)
	return Position{Line: prev, Column: columnBefore(clusters, seam)}, nil
}

// DeleteForward removes the cluster at p. At end of line the next line is
// joined onto this one. The position only moves left when the clusters on
// either side of the deletion merge.
func (b *Buffer) DeleteForward(p Position) (Position, error) {
	if err := b.checkBounds(p); err != nil {
		return p, err
	}
	line := b.lines[p.Line]
	if p.Column < len(line) {
		head := grapheme.Join(line[:p.Column])
		clusters := b.resplit(p.Line, head+grapheme.Join(line[p.Column+1:]))
		b.version++
		return Position{Line: p.Line, Column: columnBefore(clusters, len(head))}, nil
	}
	if p.Line == len(b.lines)-1 {
		return p, nil
	}
	seam := len(grapheme.Join(line))
	clusters := b.joinWithNext(p.Line)
	return Position{Line: p.Line, Column: columnBefore(clusters, seam)}, nil
}

// Slice returns the text between two positions, end exclusive. Positions are
// clamped and ordered first.
func (b *Buffer) Slice(start, end Position) string {
	start, end = b.Clamp(start), b.Clamp(end)
	if Compare(start, end) > 0 {
		start, end = end, start
	}
	if start.Line == end.Line {
		return grapheme.Join(b.lines[start.Line][start.Column:end.Column])
	}
	out := grapheme.Join(b.lines[start.Line][start.Column:])
	for l := start.Line + 1; l < end.Line; l++ {
		out += "\n" + grapheme.Join(b.lines[l])
	}
	return out + "\n" + grapheme.Join(b.lines[end.Line][:end.Column])
}

func (b *Buffer) joinWithNext(i int) []string {
	clusters := b.resplit(i, grapheme.Join(b.lines[i])+grapheme.Join(b.lines[i+1]))
	b.lines = append(b.lines[:i+1:i+1], b.lines[i+2:]...)
	b.version++
	return clusters
}

// resplit stores line i segmented afresh, so a base and a combining mark
// that meet across an edit become one cluster.
func (b *Buffer) resplit(i int, text string) []string {
	clusters := grapheme.Split(text)
	b.lines[i] = clusters
	return clusters
}

// columnAfter is the column just past the cluster holding byte offset-1.
func columnAfter(clusters []string, offset int) int {
	col, at := 0, 0
	for col < len(clusters) && at < offset {
		at += len(clusters[col])
		col++
	}
	return col
}

// columnBefore is the column of the cluster holding byte offset.
func columnBefore(clusters []string, offset int) int {
	col, at := 0, 0
	for col < len(clusters) && at+len(clusters[col]) <= offset {
		at += len(clusters[col])
		col++
	}
	return col
}

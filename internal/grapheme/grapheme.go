// Package grapheme splits text into grapheme clusters and answers the
// per-cluster questions the editor needs: how many terminal cells a cluster
// occupies and which word class it belongs to.
//
// Editing arithmetic (cursor columns, deletions) is done in cluster units;
// display cells are only used when a position is placed on screen.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WordClass groups clusters for word motions.
type WordClass int

const (
	ClassSpace WordClass = iota
	ClassPunctuation
	ClassWord
	ClassCJK
)

func (c WordClass) String() string {
	switch c {
	case ClassSpace:
		return "space"
	case ClassPunctuation:
		return "punctuation"
	case ClassWord:
		return "word"
	case ClassCJK:
		return "cjk"
	default:
		return "unknown"
	}
}

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates clusters back into a string.
func Join(clusters []string) string {
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return clusters[0]
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the number of terminal cells a cluster occupies: 1 or 2.
// Zero-width results (lone combining marks, control characters, tabs) are
// drawn as a single cell.
func Width(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	switch {
	case w <= 0:
		return 1
	case w >= 2:
		return 2
	default:
		return 1
	}
}

// LineWidth returns the total cell width of a line of clusters.
func LineWidth(line []string) int {
	return CellOffset(line, len(line))
}

// CellOffset converts a cluster column into a cell offset from the start of
// the line. Columns past the end count as one cell each.
func CellOffset(line []string, col int) int {
	cells := 0
	for i := 0; i < col; i++ {
		if i < len(line) {
			cells += Width(line[i])
		} else {
			cells++
		}
	}
	return cells
}

// Class returns the word class of a cluster. The first rune decides; the
// remaining runes of a cluster are combining marks or joiners.
func Class(cluster string) WordClass {
	if cluster == "" {
		return ClassSpace
	}
	r := []rune(cluster)[0]
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case IsCJK(r):
		return ClassCJK
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return ClassWord
	default:
		return ClassPunctuation
	}
}

// IsWordChar reports whether a cluster belongs to a word-like run (Latin or
// CJK). Word motions stop only at the starts of such runs.
func IsWordChar(cluster string) bool {
	c := Class(cluster)
	return c == ClassWord || c == ClassCJK
}

// IsSpace reports whether a cluster is whitespace.
func IsSpace(cluster string) bool {
	return cluster != "" && Class(cluster) == ClassSpace
}

// IsCJK reports whether r is a CJK ideograph, kana, hangul syllable or a
// fullwidth letter/digit. CJK punctuation is not included: 。 and 、 are
// punctuation.
func IsCJK(r rune) bool {
	switch {
	case unicode.Is(unicode.Han, r),
		unicode.Is(unicode.Hiragana, r),
		unicode.Is(unicode.Katakana, r),
		unicode.Is(unicode.Hangul, r):
		return true
	case r == 'ー': // prolonged sound mark
		return true
	case r >= 0xFF10 && r <= 0xFF19, // fullwidth digits
		r >= 0xFF21 && r <= 0xFF3A, // fullwidth upper
		r >= 0xFF41 && r <= 0xFF5A, // fullwidth lower
		r >= 0xFF66 && r <= 0xFF9D: // halfwidth katakana
		return true
	}
	return false
}

package grapheme

import "testing"

func TestSplit_MultiRuneClusters(t *testing.T) {
	family := "👨‍👩‍👧"
	text := "a" + "é" + family + "名"

	got := Split(text)
	want := []string{"a", "é", family, "名"}
	if len(got) != len(want) {
		t.Fatalf("Split len = %d, want %d (%q)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Split[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if n := Count(text); n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}
	if Join(got) != text {
		t.Errorf("Join did not round-trip: %q", Join(got))
	}
}

func TestSplit_Empty(t *testing.T) {
	if got := Split(""); got != nil {
		t.Errorf("Split(\"\") = %q, want nil", got)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		cluster string
		want    int
	}{
		{"a", 1},
		{" ", 1},
		{"こ", 2},
		{"私", 2},
		{"。", 2},
		{"Ａ", 2},
		{"👍", 2},
		{"é", 1},
		{"\t", 1},
	}
	for _, tt := range tests {
		if got := Width(tt.cluster); got != tt.want {
			t.Errorf("Width(%q) = %d, want %d", tt.cluster, got, tt.want)
		}
	}
}

func TestCellOffset(t *testing.T) {
	line := Split("aこb")

	offsets := []int{0, 1, 3, 4}
	for col, want := range offsets {
		if got := CellOffset(line, col); got != want {
			t.Errorf("CellOffset(%d) = %d, want %d", col, got, want)
		}
	}
	if got := LineWidth(line); got != 4 {
		t.Errorf("LineWidth = %d, want 4", got)
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		cluster string
		want    WordClass
	}{
		{"a", ClassWord},
		{"Z", ClassWord},
		{"7", ClassWord},
		{"_", ClassWord},
		{"é", ClassWord},
		{" ", ClassSpace},
		{"\t", ClassSpace},
		{"/", ClassPunctuation},
		{"{", ClassPunctuation},
		{"。", ClassPunctuation},
		{"、", ClassPunctuation},
		{"こ", ClassCJK},
		{"カ", ClassCJK},
		{"ー", ClassCJK},
		{"私", ClassCJK},
		{"한", ClassCJK},
		{"👍", ClassPunctuation},
	}
	for _, tt := range tests {
		if got := Class(tt.cluster); got != tt.want {
			t.Errorf("Class(%q) = %s, want %s", tt.cluster, got, tt.want)
		}
	}
}

func TestIsWordChar(t *testing.T) {
	if !IsWordChar("a") || !IsWordChar("名") {
		t.Error("letters and ideographs are word characters")
	}
	if IsWordChar(" ") || IsWordChar("。") || IsWordChar("-") {
		t.Error("spaces and punctuation are not word characters")
	}
	if !IsSpace(" ") || IsSpace("") {
		t.Error("IsSpace mismatch")
	}
}

package engine

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Columns are counted in runes, lines are split on '\n'.

// FullRange returns the range covering all of text.
func FullRange(text string) Range {
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	return Range{
		StartLineNumber: 1,
		StartColumn:     1,
		EndLineNumber:   len(lines),
		EndColumn:       utf8.RuneCountInString(last) + 1,
	}
}

// offsetAt converts a 1-based line/column to a byte offset, clamping to the
// text the way the engine clamps out-of-range positions.
func offsetAt(text string, line, column int) int {
	if line < 1 {
		return 0
	}
	off := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}
	end := strings.IndexByte(text[off:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += off
	}
	for col := 1; col < column && off < end; col++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

type span struct {
	start, end int
	text       string
}

// ApplyEdits applies edits against the original text and returns the
// result. Edits must not overlap.
func ApplyEdits(text string, edits []EditOperation) (string, error) {
	spans := make([]span, len(edits))
	for i, e := range edits {
		s := offsetAt(text, e.Range.StartLineNumber, e.Range.StartColumn)
		en := offsetAt(text, e.Range.EndLineNumber, e.Range.EndColumn)
		if en < s {
			s, en = en, s
		}
		spans[i] = span{start: s, end: en, text: e.Text}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return "", fmt.Errorf("overlapping edits at offset %d", spans[i].start)
		}
	}

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(text[prev:sp.start])
		b.WriteString(sp.text)
		prev = sp.end
	}
	b.WriteString(text[prev:])
	return b.String(), nil
}

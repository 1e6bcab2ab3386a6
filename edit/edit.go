// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package edit records, normalizes and applies text edits against a
// source buffer.
package edit

import (
	"bytes"
	"fmt"
	"strings"
)

// Edit replaces the Length bytes of the source starting at Offset with
// Text. A zero Length means an insertion; an empty Text a deletion.
type Edit struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// End returns the offset just past the replaced range.
func (e Edit) End() int { return e.Offset + e.Length }

func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d]%q", e.Offset, e.End(), e.Text)
}

// isNoOp reports whether applying e to src would not change it.
func (e Edit) isNoOp(src []byte) bool {
	return e.Length == len(e.Text) && string(src[e.Offset:e.End()]) == e.Text
}

// trim shrinks e to the smallest range that still differs from src, by
// dropping the prefix and suffix it shares with the text it replaces.
func (e Edit) trim(src []byte) Edit {
	old := src[e.Offset:e.End()]
	pre := 0
	for pre < len(old) && pre < len(e.Text) && old[pre] == e.Text[pre] {
		pre++
	}
	suf := 0
	for suf < len(old)-pre && suf < len(e.Text)-pre &&
		old[len(old)-1-suf] == e.Text[len(e.Text)-1-suf] {
		suf++
	}
	return Edit{
		Offset: e.Offset + pre,
		Length: e.Length - pre - suf,
		Text:   e.Text[pre : len(e.Text)-suf],
	}
}

// Apply returns the result of applying the ordered, disjoint edits to src.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(src))
	last := 0
	for _, e := range edits {
		if e.Offset < last || e.End() > len(src) || e.Length < 0 {
			return nil, fmt.Errorf("edit %s does not fit a source of %d bytes after offset %d",
				e, len(src), last)
		}
		buf.Write(src[last:e.Offset])
		buf.WriteString(e.Text)
		last = e.End()
	}
	buf.Write(src[last:])
	return buf.Bytes(), nil
}

// Normalize merges edits that touch each other, drops edits that would
// not change src, and trims the rest to their minimal range. The edits
// must be sorted and disjoint.
func Normalize(src []byte, edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if n := len(out); n > 0 && out[n-1].End() == e.Offset {
			out[n-1].Length += e.Length
			out[n-1].Text += e.Text
			continue
		}
		out = append(out, e)
	}
	res := out[:0]
	for _, e := range out {
		if e.isNoOp(src) {
			continue
		}
		res = append(res, e.trim(src))
	}
	return res
}

// Coalesce joins neighbouring edits whose separating source text has no
// line break, so that each changed stretch of a line becomes one edit.
func Coalesce(src []byte, edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		n := len(out)
		if n == 0 {
			out = append(out, e)
			continue
		}
		prev := &out[n-1]
		gap := string(src[prev.End():e.Offset])
		if strings.ContainsAny(gap, "\r\n") {
			out = append(out, e)
			continue
		}
		prev.Text += gap + e.Text
		prev.Length = e.End() - prev.Offset
	}
	return out
}

// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package edit

import "fmt"

// Recorder accumulates edits against a source in increasing offset order.
// An edit starting where the previous one ends is merged into it, and a
// merge that turns out to reproduce the source is dropped.
//
// Marks make it possible to roll the recorder back to an earlier state;
// edits recorded before the most recent mark are never rewritten, so that
// rolling back is a plain truncation.
type Recorder struct {
	src    []byte
	edits  []Edit
	frozen int
}

// Mark is a point a Recorder can be truncated back to. The zero Mark was
// never handed out by a Recorder.
type Mark struct {
	n int // number of edits plus one
}

// NewRecorder returns an empty recorder for edits against src.
func NewRecorder(src []byte) *Recorder { return &Recorder{src: src} }

// Len returns the number of edits currently held.
func (r *Recorder) Len() int { return len(r.edits) }

// Replace records that the length bytes at off become text.
func (r *Recorder) Replace(off, length int, text string) {
	if off < 0 || length < 0 || off+length > len(r.src) {
		panic(fmt.Sprintf("edit: range [%d:%d] out of bounds", off, off+length))
	}
	n := len(r.edits)
	if n > 0 && off < r.edits[n-1].End() {
		panic(fmt.Sprintf("edit: %s recorded out of order after %s",
			Edit{off, length, text}, r.edits[n-1]))
	}
	if n > r.frozen && r.edits[n-1].End() == off {
		last := &r.edits[n-1]
		last.Length += length
		last.Text += text
		if last.isNoOp(r.src) {
			r.edits = r.edits[:n-1]
		}
		return
	}
	e := Edit{Offset: off, Length: length, Text: text}
	if e.isNoOp(r.src) {
		return
	}
	r.edits = append(r.edits, e)
}

// Insert records text being inserted at off.
func (r *Recorder) Insert(off int, text string) { r.Replace(off, 0, text) }

// Delete records the length bytes at off being removed.
func (r *Recorder) Delete(off, length int) { r.Replace(off, length, "") }

// NoEdit records that the length bytes at off were checked and stay as
// they are. A following edit may then merge across them.
func (r *Recorder) NoEdit(off, length int) {
	if length == 0 {
		return
	}
	n := len(r.edits)
	if n > r.frozen && r.edits[n-1].End() == off {
		r.Replace(off, length, string(r.src[off:off+length]))
	}
}

// Mark returns the current state, for a later TruncateTo.
func (r *Recorder) Mark() Mark {
	r.frozen = len(r.edits)
	return Mark{n: len(r.edits) + 1}
}

// TruncateTo drops every edit recorded after m was taken. It panics if m
// was not handed out by this recorder or has been invalidated by an
// earlier truncation.
func (r *Recorder) TruncateTo(m Mark) {
	n := m.n - 1
	if n < 0 || n > len(r.edits) {
		panic(fmt.Sprintf("edit: truncating %d edits to unknown mark %d", len(r.edits), n))
	}
	r.edits = r.edits[:n]
	if r.frozen > n {
		r.frozen = n
	}
}

// Finalize returns the recorded edits in their normal form: sorted,
// disjoint, trimmed and with no edit reproducing the source.
func (r *Recorder) Finalize() []Edit {
	return Normalize(r.src, r.edits)
}

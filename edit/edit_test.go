// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		record func(r *Recorder)
		want   []Edit
	}{
		{
			name:   "no edits",
			src:    "a+b",
			record: func(r *Recorder) {},
			want:   []Edit{},
		},
		{
			name: "separate insertions",
			src:  "a+b",
			record: func(r *Recorder) {
				r.Insert(1, " ")
				r.Insert(2, " ")
			},
			want: []Edit{{1, 0, " "}, {2, 0, " "}},
		},
		{
			name: "insertions at one offset merge",
			src:  "{x",
			record: func(r *Recorder) {
				r.Insert(1, "\n")
				r.Insert(1, "  ")
			},
			want: []Edit{{1, 0, "\n  "}},
		},
		{
			name: "replacement reproducing the source is dropped",
			src:  "a \nb",
			record: func(r *Recorder) {
				r.Delete(1, 1)
				r.Replace(2, 1, " \n")
			},
			want: []Edit{},
		},
		{
			name: "no-op replacement is dropped",
			src:  "a b",
			record: func(r *Recorder) {
				r.Replace(1, 1, " ")
			},
			want: []Edit{},
		},
		{
			name: "blank line insertion is trimmed",
			src:  "a;\n\nb;",
			record: func(r *Recorder) {
				r.Insert(2, "\n")
				r.Insert(2, "\n\n")
				r.Delete(2, 2)
			},
			want: []Edit{{4, 0, "\n"}},
		},
		{
			name: "no edit lets a later edit merge",
			src:  "a  b",
			record: func(r *Recorder) {
				r.Delete(1, 1)
				r.NoEdit(2, 1)
				r.Insert(3, "")
			},
			want: []Edit{{2, 1, ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRecorder([]byte(tt.src))
			tt.record(r)
			assert.Equal(t, tt.want, r.Finalize())
		})
	}
}

func TestRecorderTruncate(t *testing.T) {
	t.Parallel()

	r := NewRecorder([]byte("a+b+c"))
	r.Insert(1, " ")
	m := r.Mark()
	r.Insert(2, " ")
	r.Insert(3, "\n")
	require.Equal(t, 3, r.Len())

	r.TruncateTo(m)
	assert.Equal(t, 1, r.Len())

	// the edit before the mark is not merged into anymore
	r.Insert(1, "x")
	r.TruncateTo(m)
	assert.Equal(t, []Edit{{1, 0, " "}}, r.Finalize())

	// a mark stays usable after truncating to it
	r.Insert(4, "  ")
	r.TruncateTo(m)
	assert.Equal(t, 1, r.Len())
}

func TestRecorderTruncateUnknownMark(t *testing.T) {
	t.Parallel()

	r := NewRecorder([]byte("abc"))
	assert.Panics(t, func() { r.TruncateTo(Mark{}) })

	r.Insert(0, "x")
	r.Insert(1, "y")
	m := r.Mark()
	r.TruncateTo(Mark{n: 1})
	assert.Panics(t, func() { r.TruncateTo(m) })
}

func TestRecorderOutOfOrder(t *testing.T) {
	t.Parallel()

	r := NewRecorder([]byte("abcdef"))
	r.Replace(2, 2, "")
	assert.Panics(t, func() { r.Insert(1, " ") })
	assert.Panics(t, func() { r.Insert(7, " ") })
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []Edit
		want    string
	}{
		{"empty edits returns original", "hello world", nil, "hello world"},
		{"single replacement", "hello world", []Edit{{0, 5, "hi"}}, "hi world"},
		{"single insertion", "hello world", []Edit{{5, 0, " beautiful"}}, "hello beautiful world"},
		{"single deletion", "hello world", []Edit{{5, 6, ""}}, "hello"},
		{"adjacent edits", "abcdef", []Edit{{0, 2, "XX"}, {2, 2, "YY"}, {4, 2, "ZZ"}}, "XXYYZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Apply([]byte(tt.content), tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := Apply([]byte("abc"), []Edit{{2, 1, ""}, {1, 1, ""}})
	assert.Error(t, err)
	_, err = Apply([]byte("abc"), []Edit{{2, 5, ""}})
	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	src := []byte("a+b+c;\nd+e;")
	edits := []Edit{
		{1, 0, " "}, {2, 0, " "}, {3, 0, " "}, {4, 0, " "},
		{8, 0, " "}, {9, 0, " "},
	}
	got := Coalesce(src, edits)
	assert.Equal(t, []Edit{{1, 3, " + b + "}, {8, 1, " + "}}, got)

	res, err := Apply(src, got)
	require.NoError(t, err)
	assert.Equal(t, "a + b + c;\nd + e;", string(res))
}

func TestValidateRegions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		regions []Region
		wantErr string
	}{
		{"whole source", []Region{{0, 10}}, ""},
		{"touching regions", []Region{{0, 3}, {3, 2}}, ""},
		{"empty region", []Region{{4, 0}}, ""},
		{"no regions", nil, "invalid region #-1 (0:0): no regions given"},
		{"negative offset", []Region{{-1, 2}}, "invalid region #0 (-1:2): offset is negative"},
		{"negative length", []Region{{1, -2}}, "invalid region #0 (1:-2): length is negative"},
		{"out of bounds", []Region{{5, 6}}, "invalid region #0 (5:6): end 11 exceeds source length 10"},
		{"unsorted", []Region{{5, 1}, {1, 1}}, "invalid region #1 (1:1): regions are not sorted"},
		{"overlapping", []Region{{0, 5}, {3, 4}}, "invalid region #1 (3:4): overlaps region 0:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateRegions(tt.regions, 10)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var rerr *RegionError
			require.ErrorAs(t, err, &rerr)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestParseRegion(t *testing.T) {
	t.Parallel()

	r, err := ParseRegion("12:5")
	require.NoError(t, err)
	assert.Equal(t, Region{12, 5}, r)

	_, err = ParseRegion("12")
	assert.Error(t, err)
	_, err = ParseRegion("a:b")
	assert.Error(t, err)
	_, err = ParseRegion("1:2junk")
	assert.ErrorContains(t, err, "invalid length")
	_, err = ParseRegion("1x:2")
	assert.ErrorContains(t, err, "invalid offset")
	_, err = ParseRegion(" 1:2")
	assert.Error(t, err)
}

func TestRestrict(t *testing.T) {
	t.Parallel()

	src := []byte("a+b;\nc+d;")
	edits := []Edit{{1, 0, " "}, {2, 0, " "}, {6, 0, " "}, {7, 0, " "}}
	got := Restrict(src, edits, []Region{{5, 4}})
	assert.Equal(t, []Edit{{6, 0, " "}, {7, 0, " "}}, got)

	// a whitespace edit crossing the region start keeps its inner part
	src = []byte("x;\n\n\n  y;")
	edits = []Edit{{2, 5, "\n\n  "}}
	got = Restrict(src, edits, []Region{{3, 6}})
	assert.Equal(t, []Edit{{3, 4, "\n  "}}, got)

	// but it is dropped if the outside part would change
	got = Restrict(src, []Edit{{2, 5, " "}}, []Region{{3, 6}})
	assert.Empty(t, got)
}

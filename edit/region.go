// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package edit

import (
	"fmt"
	"strconv"
	"strings"
)

// Region is a range of the source that formatting may change.
type Region struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// End returns the offset just past the region.
func (r Region) End() int { return r.Offset + r.Length }

func (r Region) String() string { return fmt.Sprintf("%d:%d", r.Offset, r.Length) }

// ParseRegion parses a region written as "offset:length".
func ParseRegion(s string) (Region, error) {
	var r Region
	off, length, ok := strings.Cut(s, ":")
	if !ok {
		return r, fmt.Errorf("region %q is not of the form offset:length", s)
	}
	var err error
	if r.Offset, err = strconv.Atoi(off); err != nil {
		return Region{}, fmt.Errorf("region %q: invalid offset: %w", s, err)
	}
	if r.Length, err = strconv.Atoi(length); err != nil {
		return Region{}, fmt.Errorf("region %q: invalid length: %w", s, err)
	}
	return r, nil
}

// RegionError describes a list of regions that cannot be formatted.
type RegionError struct {
	Index   int // index of the offending region
	Region  Region
	Message string
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("invalid region #%d (%s): %s", e.Index, e.Region, e.Message)
}

// ValidateRegions checks that the regions are non-empty as a list, each
// within a source of srcLen bytes, and sorted without overlapping.
func ValidateRegions(regions []Region, srcLen int) error {
	if len(regions) == 0 {
		return &RegionError{Index: -1, Message: "no regions given"}
	}
	for i, r := range regions {
		switch {
		case r.Offset < 0:
			return &RegionError{i, r, "offset is negative"}
		case r.Length < 0:
			return &RegionError{i, r, "length is negative"}
		case r.End() > srcLen:
			return &RegionError{i, r, fmt.Sprintf("end %d exceeds source length %d", r.End(), srcLen)}
		}
		if i > 0 {
			prev := regions[i-1]
			if r.Offset < prev.Offset {
				return &RegionError{i, r, "regions are not sorted"}
			}
			if r.Offset < prev.End() {
				return &RegionError{i, r, fmt.Sprintf("overlaps region %s", prev)}
			}
		}
	}
	return nil
}

// Restrict keeps the edits that lie within one of the regions. An edit
// crossing a region boundary is clipped to the region if the part outside
// it would be left untouched; otherwise it is dropped. Both lists must be
// sorted.
func Restrict(src []byte, edits []Edit, regions []Region) []Edit {
	var out []Edit
	for _, e := range edits {
		for _, r := range regions {
			if e.End() < r.Offset || e.Offset > r.End() {
				continue
			}
			if c, ok := clip(src, e, r); ok {
				out = append(out, c)
			}
			break
		}
	}
	return out
}

func clip(src []byte, e Edit, r Region) (Edit, bool) {
	if e.Offset < r.Offset {
		outside := string(src[e.Offset:r.Offset])
		if !strings.HasPrefix(e.Text, outside) {
			return e, false
		}
		e = Edit{r.Offset, e.End() - r.Offset, e.Text[len(outside):]}
	}
	if e.End() > r.End() {
		outside := string(src[r.End():e.End()])
		if !strings.HasSuffix(e.Text, outside) {
			return e, false
		}
		e = Edit{e.Offset, r.End() - e.Offset, e.Text[:len(e.Text)-len(outside)]}
	}
	return e, !e.isNoOp(src)
}

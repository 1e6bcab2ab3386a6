// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"fmt"
	"strings"
)

// Wrap describes how the fragments of a construct may be split across
// lines. It combines one split style with any number of flags.
type Wrap uint

const (
	WrapNone Wrap = 0

	WrapForce          Wrap = 1 << 0 // split even if everything fits
	WrapIndentOnColumn Wrap = 1 << 1 // continuation lines line up with the first fragment
	WrapIndentByOne    Wrap = 1 << 2 // continuation lines get a single indentation unit

	WrapCompact           Wrap = 1 << 4 // break only where needed
	WrapCompactFirstBreak Wrap = 2 << 4 // as compact, breaking before the first fragment first
	WrapOnePerLine        Wrap = 3 << 4 // every fragment on its own line
	WrapNextShifted       Wrap = 4 << 4 // later fragments one unit further than the first
	WrapNextPerLine       Wrap = 5 << 4 // first fragment stays, the others get a line each

	// WrapOutermost makes the construct break before the constructs
	// nested within it. Without it, the innermost construct that can
	// break does so first.
	WrapOutermost Wrap = 1 << 9

	splitMask = 7 << 4
	flagMask  = WrapForce | WrapIndentOnColumn | WrapIndentByOne | WrapOutermost
)

var splitNames = map[Wrap]string{
	WrapNone:              "none",
	WrapCompact:           "compact",
	WrapCompactFirstBreak: "compact_first_break",
	WrapOnePerLine:        "one_per_line",
	WrapNextShifted:       "next_shifted",
	WrapNextPerLine:       "next_per_line",
}

var flagNames = []struct {
	flag Wrap
	name string
}{
	{WrapForce, "force"},
	{WrapIndentOnColumn, "indent_on_column"},
	{WrapIndentByOne, "indent_by_one"},
	{WrapOutermost, "outermost"},
}

func (w Wrap) split() Wrap { return w & splitMask }

// canSplit reports whether the style allows any line break at all.
func (w Wrap) canSplit() bool { return w.split() != WrapNone }

func (w Wrap) validate() error {
	if _, ok := splitNames[w.split()]; !ok {
		return fmt.Errorf("unknown split style %#x", uint(w.split()))
	}
	if rest := w &^ (splitMask | flagMask); rest != 0 {
		return fmt.Errorf("unknown wrap flags %#x", uint(rest))
	}
	if w&WrapIndentOnColumn != 0 && w&WrapIndentByOne != 0 {
		return fmt.Errorf("indent_on_column and indent_by_one are exclusive")
	}
	return nil
}

// String returns the wrap in its textual form, such as
// "compact,force,outermost".
func (w Wrap) String() string {
	name, ok := splitNames[w.split()]
	if !ok {
		return fmt.Sprintf("Wrap(%#x)", uint(w))
	}
	parts := []string{name}
	for _, f := range flagNames {
		if w&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ",")
}

func (w Wrap) MarshalText() ([]byte, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return []byte(w.String()), nil
}

// UnmarshalText parses the textual form produced by String. The split
// style may appear anywhere in the list; "innermost" is accepted as the
// default tie-break.
func (w *Wrap) UnmarshalText(text []byte) error {
	var res Wrap
	seenSplit := false
	for _, part := range strings.Split(string(text), ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || part == "innermost" {
			continue
		}
		if split, ok := splitByName(part); ok {
			if seenSplit {
				return fmt.Errorf("wrap %q has more than one split style", text)
			}
			seenSplit = true
			res |= split
			continue
		}
		found := false
		for _, f := range flagNames {
			if f.name == part {
				res |= f.flag
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown wrap setting %q", part)
		}
	}
	if err := res.validate(); err != nil {
		return err
	}
	*w = res
	return nil
}

func splitByName(name string) (Wrap, bool) {
	for split, n := range splitNames {
		if n == name {
			return split, true
		}
	}
	return 0, false
}

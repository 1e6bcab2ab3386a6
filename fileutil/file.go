// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package fileutil decides which files and directories hold Dart source
// worth formatting when walking a directory tree.
package fileutil

import (
	"os"
	"regexp"
	"strings"
)

var (
	extRe       = regexp.MustCompile(`\.dart$`)
	generatedRe = regexp.MustCompile(`\.(g|freezed|pb|pbenum|pbjson|mocks)\.dart$`)
)

type SourceConfidence int

const (
	ConfNotSource SourceConfidence = iota
	ConfGenerated
	ConfIsSource
)

// CouldBeSource reports how likely the file is to be Dart source. Generated
// files are reported apart, as they are rewritten by their generators.
func CouldBeSource(info os.FileInfo) SourceConfidence {
	name := info.Name()
	switch {
	case info.IsDir(), name[0] == '.', !info.Mode().IsRegular():
		return ConfNotSource
	case generatedRe.MatchString(name):
		return ConfGenerated
	case extRe.MatchString(name):
		return ConfIsSource
	default:
		return ConfNotSource
	}
}

// SkipDir reports whether a directory walk should not descend into the
// directory with the given name. Hidden directories such as .dart_tool
// hold caches, and packages directories hold links to dependencies.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".." ||
		name == "packages" || name == "build"
}

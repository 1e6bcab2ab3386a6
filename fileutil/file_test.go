// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCouldBeSource(t *testing.T) {
	t.Parallel()
	c := qt.New(t)
	dir := t.TempDir()
	tests := []struct {
		name string
		want SourceConfidence
	}{
		{"main.dart", ConfIsSource},
		{"lib.g.dart", ConfGenerated},
		{"model.freezed.dart", ConfGenerated},
		{"api.pb.dart", ConfGenerated},
		{".hidden.dart", ConfNotSource},
		{"main.dart.bak", ConfNotSource},
		{"README", ConfNotSource},
		{"script.sh", ConfNotSource},
	}
	for _, test := range tests {
		path := filepath.Join(dir, test.name)
		c.Assert(os.WriteFile(path, []byte("main() {}\n"), 0o666), qt.IsNil)
		info, err := os.Lstat(path)
		c.Assert(err, qt.IsNil)
		c.Assert(CouldBeSource(info), qt.Equals, test.want, qt.Commentf("%s", test.name))
	}

	sub := filepath.Join(dir, "lib.dart")
	c.Assert(os.Mkdir(sub, 0o777), qt.IsNil)
	info, err := os.Lstat(sub)
	c.Assert(err, qt.IsNil)
	c.Assert(CouldBeSource(info), qt.Equals, ConfNotSource)
}

func TestSkipDir(t *testing.T) {
	t.Parallel()
	c := qt.New(t)
	for name, want := range map[string]bool{
		".":          false,
		"..":         false,
		"lib":        false,
		"test":       false,
		".git":       true,
		".dart_tool": true,
		"packages":   true,
		"build":      true,
	} {
		c.Assert(SkipDir(name), qt.Equals, want, qt.Commentf("%s", name))
	}
}

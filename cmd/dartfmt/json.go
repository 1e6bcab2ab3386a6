// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"encoding/json"
	"io"

	"mvdan.cc/dartfmt/edit"
	"mvdan.cc/dartfmt/syntax"
	"mvdan.cc/dartfmt/syntax/typedjson"
)

func writeJSON(w io.Writer, f *syntax.File) error {
	return typedjson.EncodeOptions{Indent: "\t"}.Encode(w, f)
}

// fileEdits is the JSON form of the edits for one file, one object per
// line.
type fileEdits struct {
	Path  string      `json:"path"`
	Edits []edit.Edit `json:"edits"`
}

func writeEdits(w io.Writer, path string, edits []edit.Edit) error {
	if edits == nil {
		edits = []edit.Edit{}
	}
	return json.NewEncoder(w).Encode(fileEdits{Path: path, Edits: edits})
}

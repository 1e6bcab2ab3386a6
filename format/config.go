// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package format

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OptionsFileNames are the names of the files holding formatting options,
// in the order they are looked for.
var OptionsFileNames = []string{
	".dartfmt.yaml",
	".dartfmt.yml",
	".dartfmt.toml",
}

// ReadOptions decodes options from r, in YAML or TOML as lang says.
// Options missing from the input keep their default values, and unknown
// ones are an error.
func ReadOptions(r io.Reader, lang string) (*Options, error) {
	opts := DefaultOptions()
	switch lang {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(opts); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decoding yaml options")
		}
	case "toml":
		md, err := toml.NewDecoder(r).Decode(opts)
		if err != nil {
			return nil, errors.Wrap(err, "decoding toml options")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.Errorf("unknown option %q", keys[0].String())
		}
	default:
		return nil, errors.Errorf("unknown options format %q", lang)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadOptionsFile reads the options in the file at path, whose extension
// tells its format.
func LoadOptionsFile(path string) (*Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	opts, err := ReadOptions(f, lang)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return opts, nil
}

// FindOptionsFile looks for an options file in dir and its parents. It
// returns an empty path if there is none.
func FindOptionsFile(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range OptionsFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

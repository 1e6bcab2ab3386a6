// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
	"github.com/pkg/diff"
	diffwrite "github.com/pkg/diff/write"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"mvdan.cc/editorconfig"

	"mvdan.cc/dartfmt/edit"
	"mvdan.cc/dartfmt/fileutil"
	"mvdan.cc/dartfmt/format"
	"mvdan.cc/dartfmt/syntax"
)

var (
	showVersion = flag.Bool("version", false, "")
	verbose     = flag.Bool("v", false, "")

	list      = flag.Bool("l", false, "")
	write     = flag.Bool("w", false, "")
	find      = flag.Bool("f", false, "")
	diffOut   = flag.Bool("d", false, "")
	showEdits = flag.Bool("edits", false, "")

	filename = flag.String("filename", "", "")
	config   = flag.String("config", "", "")
	regions  regionList

	indent = flag.Int("i", -1, "")
	width  = flag.Int("width", 0, "")

	toJSON = flag.Bool("tojson", false, "")

	// useEditorConfig will be false if DARTFMT_NO_EDITORCONFIG is set.
	useEditorConfig = true

	// configOpts holds the options given via -config, if any.
	configOpts *format.Options
	// fileOpts caches the options files found next to the formatted files.
	fileOpts = make(map[string]*format.Options)

	logger *log.Logger

	in    io.Reader = os.Stdin
	out   io.Writer = os.Stdout
	color bool

	version = "(devel)" // to match the default from runtime/debug
)

func init() { flag.Var(&regions, "region", "") }

func main() {
	os.Exit(main1())
}

func main1() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: dartfmt [flags] [path ...]

If the only argument is a dash ('-') or no arguments are given, standard input
will be used. If a given path is a directory, it will be recursively searched
for Dart files, skipping hidden, build and packages directories.

  -version  show version and exit
  -v        log what is being done to standard error

  -l        list files whose formatting differs from dartfmt's
  -w        write result to file instead of stdout
  -d        error with a diff when the formatting differs
  -edits    print the edits as JSON instead of the formatted source

Formatting options:

  -config str    read options from a YAML or TOML file
  -filename str  provide a name for the standard input file
  -region o:n    only format the n bytes starting at offset o; may be repeated
  -i uint        indent: 0 for tabs, >0 for number of spaces
  -width uint    page width at which lines are wrapped

Without -config, the options come from the nearest .dartfmt.yaml,
.dartfmt.yml or .dartfmt.toml file, and otherwise from .editorconfig.

Utilities:

  -f        recursively find all Dart files and print the paths
  -tojson   print syntax tree to stdout as a typed JSON
`)
	}
	flag.Parse()

	if *showVersion {
		// don't overwrite the version if it was set by -ldflags=-X
		if info, ok := debug.ReadBuildInfo(); ok && version == "(devel)" {
			mod := &info.Main
			if mod.Replace != nil {
				mod = mod.Replace
			}
			version = mod.Version
		}
		fmt.Fprintln(out, version)
		return 0
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "dartfmt",
		Level:  log.WarnLevel,
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	if os.Getenv("DARTFMT_NO_EDITORCONFIG") == "true" {
		useEditorConfig = false
	}
	if *config != "" {
		opts, err := format.LoadOptionsFile(*config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		configOpts = opts
	}
	color = colorEnabled(out)

	if flag.NArg() == 0 || (flag.NArg() == 1 && flag.Arg(0) == "-") {
		name := "<standard input>"
		if *filename != "" {
			name = *filename
		}
		if err := formatStdin(name); err != nil {
			if err != errChangedWithDiff {
				fmt.Fprintln(os.Stderr, err)
			}
			return 1
		}
		return 0
	}
	if *filename != "" {
		fmt.Fprintln(os.Stderr, "-filename can only be used with stdin")
		return 1
	}
	if *toJSON {
		fmt.Fprintln(os.Stderr, "-tojson can only be used with stdin")
		return 1
	}
	if len(regions) > 0 && flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "-region can only be used with a single file")
		return 1
	}
	status := 0
	var jobs []*job
	for _, path := range flag.Args() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() && !*find {
			// When given paths to files directly, always format
			// them, no matter their extension.
			j, err := newJob(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			jobs = append(jobs, j)
			continue
		}
		if len(regions) > 0 {
			fmt.Fprintln(os.Stderr, "-region can only be used with a single file")
			return 1
		}
		if err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			j, err := walkPath(p, info, p == path)
			switch {
			case err == filepath.SkipDir:
				return err
			case err != nil:
				fmt.Fprintln(os.Stderr, err)
				status = 1
			case j != nil:
				jobs = append(jobs, j)
			}
			return nil
		}); err != nil {
			// Something went wrong walking the filesystem; stop.
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if *find {
		for _, j := range jobs {
			fmt.Fprintln(out, j.path)
		}
		return status
	}
	runJobs(jobs)
	for _, j := range jobs {
		switch err := j.report(); err {
		case nil:
		case errChangedWithDiff:
			status = 1
		default:
			fmt.Fprintln(os.Stderr, err)
			status = 1
		}
	}
	return status
}

var errChangedWithDiff = fmt.Errorf("")

func colorEnabled(w io.Writer) bool {
	switch {
	case os.Getenv("FORCE_COLOR") == "true":
		// Undocumented way to force color; used in the tests.
		return true
	case os.Getenv("TERM") == "dumb":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// regionList collects the -region flags.
type regionList []edit.Region

func (l *regionList) String() string {
	var sb strings.Builder
	for i, r := range *l {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

func (l *regionList) Set(s string) error {
	r, err := edit.ParseRegion(s)
	if err != nil {
		return err
	}
	*l = append(*l, r)
	return nil
}

func formatStdin(name string) error {
	if *write {
		return fmt.Errorf("-w cannot be used on standard input")
	}
	src, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if *toJSON {
		f, err := syntax.Parse(src, name, syntax.ParseComments)
		if err != nil {
			return err
		}
		return writeJSON(out, f)
	}
	opts, err := optionsFor(name)
	if err != nil {
		return err
	}
	j := &job{path: name, src: src, opts: opts}
	j.run()
	return j.report()
}

func walkPath(path string, info os.FileInfo, root bool) (*job, error) {
	if info.IsDir() && !root && fileutil.SkipDir(info.Name()) {
		return nil, filepath.SkipDir
	}
	if useEditorConfig {
		props, err := ecQuery.Find(path)
		if err != nil {
			return nil, err
		}
		if props.Get("ignore") == "true" {
			if info.IsDir() {
				return nil, filepath.SkipDir
			}
			return nil, nil
		}
	}
	switch fileutil.CouldBeSource(info) {
	case fileutil.ConfNotSource:
		return nil, nil
	case fileutil.ConfGenerated:
		logger.Debug("skipping generated file", "path", path)
		return nil, nil
	}
	if *find {
		return &job{path: path}, nil
	}
	j, err := newJob(path)
	if err != nil && os.IsNotExist(err) {
		return nil, nil
	}
	return j, err
}

var ecQuery = editorconfig.Query{
	FileCache:   make(map[string]*editorconfig.File),
	RegexpCache: make(map[string]*regexp.Regexp),
}

// optionsFor resolves the options to format the file at path with. It is
// not safe for concurrent use, as it fills the option caches.
func optionsFor(path string) (*format.Options, error) {
	var opts *format.Options
	switch {
	case configOpts != nil:
		opts = configOpts
	default:
		cfgPath, err := format.FindOptionsFile(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		if cfgPath != "" {
			if opts = fileOpts[cfgPath]; opts == nil {
				logger.Debug("loading options", "path", cfgPath)
				if opts, err = format.LoadOptionsFile(cfgPath); err != nil {
					return nil, err
				}
				fileOpts[cfgPath] = opts
			}
			break
		}
		opts = format.DefaultOptions()
		if useEditorConfig {
			props, err := ecQuery.Find(path)
			if err != nil {
				return nil, err
			}
			propsOptions(props, opts)
		}
	}
	copied := *opts
	opts = &copied
	switch {
	case *indent == 0:
		opts.IndentStyle = format.IndentTabs
	case *indent > 0:
		opts.IndentStyle = format.IndentSpaces
		opts.TabSize = *indent
	}
	if *width > 0 {
		opts.PageWidth = *width
	}
	opts.Logger = logger
	return opts, opts.Validate()
}

func propsOptions(props editorconfig.Section, opts *format.Options) {
	switch props.Get("indent_style") {
	case "tab":
		opts.IndentStyle = format.IndentTabs
		if n, err := strconv.Atoi(props.Get("tab_width")); err == nil && n > 0 {
			opts.TabSize = n
		}
	case "space":
		opts.IndentStyle = format.IndentSpaces
		if n := props.IndentSize(); n > 0 {
			opts.TabSize = n
		}
	}
	if n, err := strconv.Atoi(props.Get("max_line_length")); err == nil && n > 0 {
		opts.PageWidth = n
	}
	switch props.Get("end_of_line") {
	case "lf":
		opts.LineSeparator = "\n"
	case "crlf":
		opts.LineSeparator = "\r\n"
	case "cr":
		opts.LineSeparator = "\r"
	}
}

// job is a single file to be formatted.
type job struct {
	path string
	src  []byte
	opts *format.Options

	edits []edit.Edit
	res   []byte
	err   error
}

func newJob(path string) (*job, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := optionsFor(path)
	if err != nil {
		return nil, err
	}
	return &job{path: path, src: src, opts: opts}, nil
}

func (j *job) run() {
	logger.Debug("formatting", "path", j.path)
	f, err := syntax.Parse(j.src, j.path, syntax.ParseComments)
	if err != nil {
		j.err = err
		return
	}
	var rs []edit.Region
	if len(regions) > 0 {
		rs = regions
	}
	j.edits, err = format.Format(j.src, f, rs, j.opts)
	if _, ok := err.(*format.AbortError); ok {
		j.err = fmt.Errorf("%s:%w", j.path, err)
		return
	} else if err != nil {
		j.err = fmt.Errorf("%s: %w", j.path, err)
		return
	}
	j.res, j.err = edit.Apply(j.src, j.edits)
	logger.Debug("formatted", "path", j.path, "edits", len(j.edits))
}

// runJobs formats the files concurrently, one per CPU at a time.
func runJobs(jobs []*job) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			j.run()
			return nil
		})
	}
	g.Wait()
}

func (j *job) report() error {
	if j.err != nil {
		return j.err
	}
	if *showEdits {
		return writeEdits(out, j.path, j.edits)
	}
	if !bytes.Equal(j.src, j.res) {
		if *list {
			if _, err := fmt.Fprintln(out, j.path); err != nil {
				return err
			}
		}
		if *write {
			info, err := os.Lstat(j.path)
			if err != nil {
				return err
			}
			perm := info.Mode().Perm()
			writeFile := renameio.WriteFile
			// TODO: support atomic writes on Windows once renameio
			// supports it
			if runtime.GOOS == "windows" {
				writeFile = func(name string, data []byte, perm os.FileMode, _ ...renameio.Option) error {
					return os.WriteFile(name, data, perm)
				}
			}
			if err := writeFile(j.path, j.res, perm); err != nil {
				return err
			}
		}
		if *diffOut {
			opts := []diffwrite.Option{}
			if color {
				opts = append(opts, diffwrite.TerminalColor())
			}
			if err := diff.Text(j.path+".orig", j.path, j.src, j.res, out, opts...); err != nil {
				return fmt.Errorf("computing diff: %s", err)
			}
			return errChangedWithDiff
		}
	}
	if !*list && !*write && !*diffOut {
		if _, err := out.Write(j.res); err != nil {
			return err
		}
	}
	return nil
}

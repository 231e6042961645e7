package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/reoring/docskema"
	"github.com/reoring/docskema/i18n"
	"github.com/reoring/docskema/schemafile"
	"github.com/reoring/docskema/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	var cmd func(*env, []string) error
	switch args[0] {
	case "validate":
		cmd = validateCmd
	case "skeleton":
		cmd = skeletonCmd
	case "namespace":
		cmd = namespaceCmd
	case "jsonschema":
		cmd = jsonschemaCmd
	case "convert":
		cmd = convertCmd
	default:
		usage(stderr)
		return exitUsage
	}
	err := cmd(e, args[1:])
	var iss docskema.Issues
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp), errors.Is(err, errUsage):
		return exitUsage
	case errors.As(err, &iss):
		for _, it := range iss {
			fmt.Fprintln(stdout, it.String())
		}
		return exitInvalid
	}
	fmt.Fprintf(stderr, "docskema: %v\n", err)
	return exitInvalid
}

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, `docskema CLI

Usage:
  docskema validate   -schema kinds.yaml [-kind K] [-stage domain|storage] [-accumulate] [-select P] [file.json ...]
  docskema skeleton   -schema kinds.yaml [-kind K] [-no-defaults]
  docskema namespace  -schema kinds.yaml [-kind K]
  docskema jsonschema -schema kinds.yaml [-kind K]
  docskema convert    -schema kinds.yaml [-kind K] -to storage|domain [-select P] [file.json]

Common flags: -v (debug logs), -lang en|ja (issue messages), -dump (print Go values to stderr).
Documents are read from the files given, or stdin. -kind defaults to the last kind in the file.`)
}

// common holds the flags shared by every subcommand.
type common struct {
	schema  string
	kind    string
	lang    string
	verbose bool
	dump    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.schema, "schema", "", "YAML file declaring the kinds")
	fs.StringVar(&c.kind, "kind", "", "kind to use (default: last declared)")
	fs.StringVar(&c.lang, "lang", "en", "issue message language (en, ja)")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logs")
	fs.BoolVar(&c.dump, "dump", false, "dump decoded documents to stderr")
}

func newFlagSet(e *env, name string, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	c.register(fs)
	return fs
}

// setup applies the common flags and loads the selected kind.
func (c *common) setup(e *env, fs *flag.FlagSet) (*docskema.Schema, error) {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	e.log = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(c.lang)

	if c.schema == "" {
		fs.Usage()
		return nil, errUsage
	}
	reg := docskema.NewRegistry()
	kinds, err := schemafile.NewLoader(reg).LoadFile(c.schema)
	if err != nil {
		return nil, err
	}
	e.log.Debug("schema loaded", "file", c.schema, "kinds", reg.Names())
	if c.kind == "" {
		if len(kinds) == 0 {
			return nil, fmt.Errorf("%s declares no kind", c.schema)
		}
		return kinds[len(kinds)-1], nil
	}
	return reg.Get(c.kind)
}

func (c *common) dumpDoc(e *env, label string, doc docskema.Document) {
	if !c.dump {
		return
	}
	fmt.Fprintf(e.stderr, "--- %s\n", label)
	spew.Fdump(e.stderr, doc)
}

// input is one document to process.
type input struct {
	name string
	data []byte
}

func readInputs(e *env, files []string) ([]input, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, err
		}
		return []input{{name: "<stdin>", data: b}}, nil
	}
	out := make([]input, 0, len(files))
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, input{name: f, data: b})
	}
	return out, nil
}

// decode parses in, narrowing to the sub-document at sel when set.
func decode(e *env, in input, sel string) (docskema.Document, error) {
	data := in.data
	if sel != "" {
		r := gjson.GetBytes(data, sel)
		if !r.Exists() {
			return nil, fmt.Errorf("%s: nothing at %q", in.name, sel)
		}
		if !r.IsObject() {
			return nil, fmt.Errorf("%s: %q is not an object", in.name, sel)
		}
		data = []byte(r.Raw)
	}
	return source.Decode(bytes.NewReader(data), source.Options{
		OnDuplicateKey: source.Warn,
		ExtendedJSON:   true,
		Warn: func(it docskema.Issue) {
			e.log.Warn("duplicate key", "input", in.name, "path", it.Path)
		},
	})
}

func writeJSON(e *env, v docskema.Document) error {
	return source.Write(e.stdout, v, source.Options{ExtendedJSON: true, Indent: "  "})
}

func validateCmd(e *env, args []string) error {
	var c common
	var stage, sel string
	var accumulate bool
	fs := newFlagSet(e, "validate", &c)
	fs.StringVar(&stage, "stage", "domain", "document side of the codecs (domain, storage)")
	fs.BoolVar(&accumulate, "accumulate", false, "report every issue instead of the first")
	fs.StringVar(&sel, "select", "", "validate the sub-document at this path of each input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.setup(e, fs)
	if err != nil {
		return err
	}
	opt := docskema.ValidateOpt{Mode: docskema.ModeFailFast}
	if accumulate {
		opt.Mode = docskema.ModeAccumulate
	}
	switch stage {
	case "domain":
	case "storage":
		opt.Stage = docskema.StageStorage
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}
	inputs, err := readInputs(e, fs.Args())
	if err != nil {
		return err
	}
	var all docskema.Issues
	for _, in := range inputs {
		doc, err := decode(e, in, sel)
		if err != nil {
			return err
		}
		c.dumpDoc(e, in.name, doc)
		iss := s.Check(doc, opt)
		e.log.Debug("validated", "input", in.name, "kind", s.Name(), "issues", len(iss))
		if len(inputs) > 1 {
			for i := range iss {
				iss[i].Path = in.name + ":" + iss[i].Path
			}
		}
		all = append(all, iss...)
		if len(iss) == 0 {
			fmt.Fprintf(e.stdout, "%s: ok\n", in.name)
		}
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

func skeletonCmd(e *env, args []string) error {
	var c common
	var noDefaults bool
	fs := newFlagSet(e, "skeleton", &c)
	fs.BoolVar(&noDefaults, "no-defaults", false, "print the bare skeleton without defaults")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.setup(e, fs)
	if err != nil {
		return err
	}
	doc := s.Skeleton(nil)
	if noDefaults {
		doc = s.Generate(nil)
	}
	c.dumpDoc(e, "skeleton", doc)
	return writeJSON(e, doc)
}

func namespaceCmd(e *env, args []string) error {
	var c common
	fs := newFlagSet(e, "namespace", &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.setup(e, fs)
	if err != nil {
		return err
	}
	for _, p := range s.Namespace().Paths() {
		n, _ := s.NodeAt(p)
		fmt.Fprintf(e.stdout, "%s\t%s\n", p, describe(n))
	}
	return nil
}

func describe(n docskema.Node) string {
	switch t := n.(type) {
	case *docskema.Primitive:
		return t.Type.Name()
	case *docskema.Custom:
		return "custom(" + t.Codec.Name() + ")"
	}
	return n.Kind().String()
}

func jsonschemaCmd(e *env, args []string) error {
	var c common
	fs := newFlagSet(e, "jsonschema", &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.setup(e, fs)
	if err != nil {
		return err
	}
	js, err := s.JSONSchema()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(append(b, '\n'))
	return err
}

func convertCmd(e *env, args []string) error {
	var c common
	var to, sel string
	fs := newFlagSet(e, "convert", &c)
	fs.StringVar(&to, "to", "storage", "target form (storage, domain)")
	fs.StringVar(&sel, "select", "", "convert the sub-document at this path of the input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := c.setup(e, fs)
	if err != nil {
		return err
	}
	inputs, err := readInputs(e, fs.Args())
	if err != nil {
		return err
	}
	for _, in := range inputs {
		doc, err := decode(e, in, sel)
		if err != nil {
			return err
		}
		var out docskema.Document
		switch to {
		case "storage":
			if err := s.Validate(doc, docskema.ValidateOpt{Mode: docskema.ModeAccumulate}); err != nil {
				return err
			}
			out, err = s.ToStorage(doc)
		case "domain":
			out, err = s.ToDomain(doc)
		default:
			return fmt.Errorf("unknown target %q", to)
		}
		if err != nil {
			return err
		}
		c.dumpDoc(e, in.name, out)
		if err := writeJSON(e, out); err != nil {
			return err
		}
	}
	return nil
}

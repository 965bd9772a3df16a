package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"

	"github.com/reoring/loosejson"
	"github.com/reoring/loosejson/bridge/gojson"
	"github.com/reoring/loosejson/bridge/yamlconv"
	"github.com/reoring/loosejson/i18n"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `loosejson CLI

Usage:
  loosejson check [--strict] [--max-depth N] [--dup ignore|warn|error] [--lang en|ja] FILE...
  loosejson fmt [--strict] FILE
  loosejson convert [--from loose|json|yaml] --to json|yaml|loose [--indent N] FILE

Notes:
  - FILE "-" reads standard input.
  - Every subcommand accepts --log-level debug|info|warn|error.`)
}

// cli carries the per-invocation streams and logger.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger log.Logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "check":
		return c.check(args[1:])
	case "fmt":
		return c.format(args[1:])
	case "convert":
		return c.convert(args[1:])
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	usage(stderr)
	return 2
}

func (c *cli) flagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	return fs, logLevel
}

func (c *cli) setupLogger(lvl string) error {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn", "warning":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(c.stderr))
	logger = level.NewFilter(logger, opt)
	c.logger = log.With(logger, "caller", log.DefaultCaller)
	return nil
}

func (c *cli) parse(fs *pflag.FlagSet, logLevel *string, args []string) bool {
	if err := fs.Parse(args); err != nil {
		return false
	}
	if err := c.setupLogger(*logLevel); err != nil {
		fmt.Fprintln(c.stderr, err)
		return false
	}
	return true
}

func (c *cli) read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(name)
}

func severityFlag(s string) (loosejson.Severity, error) {
	switch s {
	case "ignore", "":
		return loosejson.Ignore, nil
	case "warn":
		return loosejson.Warn, nil
	case "error":
		return loosejson.Error, nil
	}
	return loosejson.Ignore, fmt.Errorf("unknown duplicate policy %q", s)
}

func (c *cli) check(args []string) int {
	fs, logLevel := c.flagSet("check")
	strict := fs.Bool("strict", false, "accept plain JSON only")
	maxDepth := fs.Int("max-depth", loosejson.DefaultMaxDepth, "maximum container nesting")
	dup := fs.String("dup", "ignore", "duplicate key policy: ignore, warn or error")
	lang := fs.String("lang", "en", "language of error titles: en or ja")
	if !c.parse(fs, logLevel, args) {
		return 2
	}
	sev, err := severityFlag(*dup)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(*lang)

	failed := false
	for _, name := range fs.Args() {
		data, err := c.read(name)
		if err != nil {
			level.Error(c.logger).Log("msg", "cannot read input", "file", name, "err", err)
			failed = true
			continue
		}
		opt := loosejson.DecodeOpt{
			Strict:     *strict,
			MaxDepth:   *maxDepth,
			Strictness: loosejson.Strictness{OnDuplicateKey: sev},
			IssueSink: func(it loosejson.Issue) {
				fmt.Fprintf(c.stdout, "%s:%d:%d: warning: [%s] %s: %s\n", name, it.Pos.Line, it.Pos.Column,
					it.Code, i18n.T(it.Code, nil), it.Message)
			},
		}
		_, err = loosejson.DecodeBytes(data, opt)
		if err != nil {
			failed = true
			if de, ok := loosejson.AsDecodeError(err); ok {
				fmt.Fprintf(c.stdout, "%s:%d:%d: [%s] %s: %s\n", name, de.Pos.Line, de.Pos.Column,
					de.Code, i18n.T(de.Code, nil), de.Message)
				continue
			}
			fmt.Fprintf(c.stdout, "%s: %v\n", name, err)
			continue
		}
		level.Debug(c.logger).Log("msg", "ok", "file", name, "bytes", len(data))
	}
	if failed {
		return 1
	}
	return 0
}

func (c *cli) format(args []string) int {
	fs, logLevel := c.flagSet("fmt")
	strict := fs.Bool("strict", false, "accept plain JSON only")
	if !c.parse(fs, logLevel, args) {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	v, code := c.load(fs.Arg(0), "loose", *strict)
	if v == nil {
		return code
	}
	out, err := loosejson.Encode(v)
	if err != nil {
		level.Error(c.logger).Log("msg", "encode failed", "err", err)
		return 1
	}
	fmt.Fprintln(c.stdout, out)
	return 0
}

func (c *cli) convert(args []string) int {
	fs, logLevel := c.flagSet("convert")
	from := fs.String("from", "loose", "input format: loose, json or yaml")
	to := fs.String("to", "", "output format: json, yaml or loose")
	indent := fs.Int("indent", 0, "indent JSON output by N spaces")
	strict := fs.Bool("strict", false, "with --from loose, accept plain JSON only")
	if !c.parse(fs, logLevel, args) {
		return 2
	}
	if fs.NArg() != 1 || *to == "" {
		fs.Usage()
		return 2
	}
	v, code := c.load(fs.Arg(0), *from, *strict)
	if v == nil {
		return code
	}

	var (
		out []byte
		err error
	)
	switch *to {
	case "json":
		if *indent > 0 {
			out, err = gojson.ToJSONIndent(v, "", strings.Repeat(" ", *indent))
		} else {
			out, err = gojson.ToJSON(v)
		}
		out = append(out, '\n')
	case "yaml":
		out, err = yamlconv.ToYAML(v)
	case "loose":
		var s string
		s, err = loosejson.Encode(v)
		out = []byte(s + "\n")
	default:
		fmt.Fprintf(c.stderr, "unknown output format %q\n", *to)
		return 2
	}
	if err != nil {
		level.Error(c.logger).Log("msg", "conversion failed", "to", *to, "err", err)
		return 1
	}
	_, _ = c.stdout.Write(out)
	return 0
}

// load reads and decodes one input. On failure it returns a nil value and
// the exit code.
func (c *cli) load(name, format string, strict bool) (*loosejson.Value, int) {
	data, err := c.read(name)
	if err != nil {
		level.Error(c.logger).Log("msg", "cannot read input", "file", name, "err", err)
		return nil, 1
	}
	var v *loosejson.Value
	switch format {
	case "loose":
		v, err = loosejson.DecodeBytes(data, loosejson.DecodeOpt{Strict: strict})
	case "json":
		v, err = gojson.FromReader(bytes.NewReader(data))
	case "yaml":
		v, err = yamlconv.FromYAML(data)
	default:
		fmt.Fprintf(c.stderr, "unknown input format %q\n", format)
		return nil, 2
	}
	if err != nil {
		level.Error(c.logger).Log("msg", "cannot decode input", "file", name, "format", format, "err", err)
		return nil, 1
	}
	level.Debug(c.logger).Log("msg", "decoded", "file", name, "format", format, "bytes", len(data))
	return v, 0
}

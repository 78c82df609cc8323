// Command qticonv converts a plain-text question bank into a QTI package
// without running the web service.
//
//	qticonv --in bank.txt --type 2                # writes output.zip
//	qticonv --in bank.txt --type 1 --xml          # writes output.xml
//	qticonv --in bank.txt --type 1 --xml --out - > bank.xml
//
// Logs go to stderr so stdout carries only the converted payload.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-qtigen/internal/config"
	"github.com/mind-engage/mindengage-qtigen/internal/convert"
	"github.com/mind-engage/mindengage-qtigen/internal/logger"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/export"
	"github.com/mind-engage/mindengage-qtigen/internal/qti/render"
)

type options struct {
	in      string
	out     string
	typ     string
	xmlOnly bool
	label   string
	escape  bool
	debug   bool
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "qticonv:", err)
		os.Exit(2)
	}
	initLogging(o)
	defer func() { _ = logger.Sync() }()

	if err := run(o, os.Stdin, os.Stdout); err != nil {
		logger.Get().Error("conversion failed", zap.Error(err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("qticonv", flag.ContinueOnError)
	fs.StringVarP(&o.in, "in", "i", "", "question bank text file (- for stdin)")
	fs.StringVarP(&o.out, "out", "o", export.ArchiveName, "output path (- for stdout); output.xml with --xml")
	fs.StringVarP(&o.typ, "type", "t", "1", "question type: 1 multiple choice, 2 multiple answers, 3 true/false")
	fs.BoolVar(&o.xmlOnly, "xml", false, "write the XML document instead of a zip archive")
	fs.StringVar(&o.label, "title-label", render.DefaultTitleLabel, "label preceding each item number")
	fs.BoolVar(&o.escape, "escape", false, "entity-escape question and option text")
	fs.BoolVar(&o.debug, "debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.xmlOnly && !fs.Changed("out") {
		o.out = export.EntryName
	}
	return o, nil
}

func initLogging(o options) {
	level := "info"
	if o.debug {
		level = "debug"
	}
	_ = logger.Initialize(config.LoggerConfig{Level: level, Env: "development", Output: "stderr"})
}

func run(o options, stdin io.Reader, stdout io.Writer) error {
	if o.in == "" {
		return fmt.Errorf("--in is required")
	}
	var (
		raw []byte
		err error
	)
	if o.in == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(o.in)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	svc := convert.NewService(convert.WithRenderOptions(render.Options{TitleLabel: o.label, EscapeText: o.escape}))
	req := convert.Request{Text: convert.DecodeText(raw), Selector: o.typ, Filename: o.in}

	var payload []byte
	if o.xmlOnly {
		payload = []byte(svc.Convert(context.Background(), req).XML)
	} else {
		_, pkg, err := svc.Package(context.Background(), req)
		if err != nil {
			return err
		}
		payload = pkg
	}

	if o.out == "-" {
		_, err = stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(o.out, payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

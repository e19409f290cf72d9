package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/document"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/render"
	"github.com/wippyai/record-layout/witrecord"
)

const formatTable = "table"

// overrideFlags registers -profile and -model on fs.
func overrideFlags(fs *flag.FlagSet) *document.Overrides {
	ov := &document.Overrides{}
	fs.StringVar(&ov.Profile, "profile", "", "ABI profile (overrides the document; list with layout profiles)")
	fs.StringVar(&ov.DataModel, "model", "", "data model for named types: lp64, llp64, ilp32")
	return ov
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags passes flag.ErrHelp through unwrapped so -h exits cleanly.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || stderrors.Is(err, flag.ErrHelp) {
		return err
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "parse flags")
}

func runCompute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("compute", stderr)
	ov := overrideFlags(fs)
	var (
		format  = fs.String("format", "", "output format: json, yaml or table (default table on a terminal, json otherwise)")
		verbose = fs.Bool("v", false, "log placement decisions to stderr")
		dump    = fs.Bool("dump", false, "dump the internal layout structure to stderr")
		witPath = fs.String("wit", "", "read fields from a WIT package in JSON form instead of a document")
		record  = fs.String("record", "", "record typedef to lay out with -wit")
	)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.InvalidInput(errors.PhaseDecode, nil, "compute takes at most one document")
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	outFormat := *format
	if outFormat == "" {
		outFormat = string(document.FormatJSON)
		if isTerminal(stdout) {
			outFormat = formatTable
		}
	}
	var docFormat document.Format
	if outFormat != formatTable {
		f, err := document.ParseFormat(outFormat)
		if err != nil || f == document.FormatAuto {
			return errors.InvalidInput(errors.PhaseEncode, nil, fmt.Sprintf("unknown output format %q", outFormat))
		}
		docFormat = f
	}

	var req *document.Request
	var err error
	if *witPath != "" {
		if fs.NArg() > 0 {
			return errors.InvalidInput(errors.PhaseDecode, nil, "-wit replaces the document argument")
		}
		req, err = loadWITRequest(*witPath, *record, *ov, logger)
	} else {
		req, err = loadRequest(fs.Arg(0), stdin, *ov)
	}
	if err != nil {
		return err
	}
	l, err := req.Compute(nil)
	if err != nil {
		return err
	}

	if *dump {
		fmt.Fprint(stderr, spew.Sdump(req.Profile, l))
	}

	if outFormat == formatTable {
		fmt.Fprintln(stdout, render.Table(l))
		fmt.Fprintln(stdout, render.Summary(l, req.Profile))
		fmt.Fprint(stdout, render.BitMap(l))
		return nil
	}
	return document.Encode(stdout, document.FromLayout(l), docFormat)
}

// loadRequest reads a document from source, or from stdin when source is
// empty or "-".
func loadRequest(source string, stdin io.Reader, ov document.Overrides) (*document.Request, error) {
	var (
		in  *document.Input
		err error
	)
	if source == "" || source == "-" {
		in, err = document.Decode(stdin, document.FormatAuto)
	} else {
		var data []byte
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read document")
		}
		in, err = document.DecodeBytes(data, document.FormatForPath(source))
	}
	if err != nil {
		return nil, err
	}
	return in.Resolve(ov)
}

// loadWITRequest lays out the record typedef name from a WIT JSON package.
// Field types come from the Canonical ABI, so -model does not apply.
func loadWITRequest(path, name string, ov document.Overrides, logger *zap.Logger) (*document.Request, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDecode, nil, "-wit needs -record")
	}
	profile, err := abi.Lookup(ov.Profile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read WIT package")
	}
	defer f.Close()

	fields, err := witrecord.NewConverter(logger).LoadRecord(f, name)
	if err != nil {
		return nil, err
	}
	return &document.Request{Profile: profile, Fields: fields}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}


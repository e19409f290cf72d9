package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/wippyai/record-layout/batch"
	"github.com/wippyai/record-layout/document"
	"github.com/wippyai/record-layout/errors"
)

// batchFailed carries the exit status of a batch with failed documents. The
// per-document errors are already part of the output.
type batchFailed struct {
	code int
}

func (e *batchFailed) Error() string { return "one or more documents failed" }

func runBatch(args []string, _ io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("batch", stderr)
	ov := overrideFlags(fs)
	var (
		jobs    = fs.Int("j", 4, "number of documents evaluated concurrently")
		verbose = fs.Bool("v", false, "log progress to stderr")
	)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.InvalidInput(errors.PhaseDecode, nil, "batch needs at least one document")
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	list := make([]batch.Job, fs.NArg())
	for i, path := range fs.Args() {
		list[i] = batch.Job{Source: path}
	}

	results, err := batch.Run(ctx, list, batch.Options{
		Concurrency: *jobs,
		Overrides:   *ov,
		Logger:      logger,
	})
	if encErr := document.Encode(stdout, results, document.FormatJSON); encErr != nil {
		return encErr
	}
	if err != nil {
		return err
	}
	if code := batch.ExitCode(results); code != errors.ExitOK {
		return &batchFailed{code: code}
	}
	return nil
}

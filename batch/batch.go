// Package batch evaluates many record documents concurrently.
package batch

import (
	"context"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/record-layout/document"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
)

// Job is one document to evaluate. When Data is nil the document is read
// from the file named by Source.
type Job struct {
	Source string
	Data   []byte
	Format document.Format
}

// Options configures Run.
type Options struct {
	// Concurrency bounds the number of documents in flight; zero or less
	// means one per job.
	Concurrency int
	Overrides   document.Overrides
	// Calculator is shared by all jobs; nil creates one per Run.
	Calculator *layout.Calculator
	Logger     *zap.Logger
}

// Result is the outcome of one job. Failures are reported here, never as a
// Run error.
type Result struct {
	ID       string           `json:"id"`
	Source   string           `json:"source"`
	Output   *document.Output `json:"output,omitempty"`
	Error    string           `json:"error,omitempty"`
	ExitCode int              `json:"exit_code"`

	Layout *layout.Layout `json:"-"`
}

// Run evaluates jobs and returns their results in input order. It returns a
// non-nil error only when ctx is cancelled; jobs that never started carry the
// context error in their result.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	calc := opts.Calculator
	if calc == nil {
		calc = layout.NewCalculator(0)
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{ID: newID(), Source: job.Source}
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := &results[i]
			if err := gctx.Err(); err != nil {
				r.fail(err)
				return nil
			}
			evaluate(r, jobs[i], opts.Overrides, calc, logger.With(zap.String("job", r.ID), zap.String("source", r.Source)))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			r := &results[i]
			if r.Output == nil && r.Error == "" {
				r.fail(err)
			}
		}
		return results, err
	}
	return results, nil
}

func evaluate(r *Result, job Job, ov document.Overrides, calc *layout.Calculator, logger *zap.Logger) {
	data := job.Data
	format := job.Format
	if data == nil {
		var err error
		data, err = os.ReadFile(job.Source)
		if err != nil {
			r.fail(errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read document"))
			logger.Debug("read failed", zap.Error(err))
			return
		}
		if format == document.FormatAuto {
			format = document.FormatForPath(job.Source)
		}
	}

	in, err := document.DecodeBytes(data, format)
	if err != nil {
		r.fail(err)
		logger.Debug("decode failed", zap.Error(err))
		return
	}
	req, err := in.Resolve(ov)
	if err != nil {
		r.fail(err)
		logger.Debug("resolve failed", zap.Error(err))
		return
	}
	l, err := req.Compute(calc)
	if err != nil {
		r.fail(err)
		logger.Debug("layout failed", zap.Error(err))
		return
	}

	r.Layout = l
	r.Output = document.FromLayout(l)
	logger.Debug("layout computed",
		zap.String("profile", req.Profile.Name),
		zap.Int("size", l.SizeBytes),
		zap.Int("align", l.AlignBytes),
	)
}

func (r *Result) fail(err error) {
	r.Error = err.Error()
	r.ExitCode = errors.ExitCode(err)
}

// ExitCode is the highest exit code among results.
func ExitCode(results []Result) int {
	code := errors.ExitOK
	for _, r := range results {
		code = max(code, r.ExitCode)
	}
	return code
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vegasq/tabconv/batch"
	"github.com/vegasq/tabconv/internal/logging"
	"github.com/vegasq/tabconv/output"
	"github.com/vegasq/tabconv/reader"
)

// JobResult is the outcome of one job.
type JobResult struct {
	Job    batch.Job
	State  State
	Result output.Result
	Err    error
}

// Options configures an Orchestrator.
type Options struct {
	// HeaderOnly reports each input's header instead of converting rows.
	HeaderOnly bool

	// Out receives header descriptions. Defaults to os.Stdout.
	Out io.Writer

	// Logger receives progress and diagnostics. Defaults to discarding.
	Logger *slog.Logger

	// Open opens job inputs. Defaults to reader.Open.
	Open reader.OpenFunc
}

// Orchestrator runs every job of a batch with one sink.
type Orchestrator struct {
	sink       output.Sink
	headerOnly bool
	out        io.Writer
	logger     *slog.Logger
	open       reader.OpenFunc
}

// New returns an Orchestrator converting with sink. The sink may be nil in
// header-only mode.
func New(sink output.Sink, opts Options) *Orchestrator {
	o := &Orchestrator{
		sink:       sink,
		headerOnly: opts.HeaderOnly,
		out:        opts.Out,
		logger:     opts.Logger,
		open:       opts.Open,
	}
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.open == nil {
		o.open = reader.Open
	}
	return o
}

// Run processes the jobs of b in order. It returns one JobResult per job
// and the joined errors of every failed job.
func (o *Orchestrator) Run(b *batch.Batch) ([]JobResult, error) {
	if !o.headerOnly && o.sink == nil {
		return nil, errors.New("no output sink configured")
	}
	for _, arg := range b.Ignored {
		o.logger.Warn("output argument ignored for glob input", "output", arg)
	}

	results := make([]JobResult, 0, len(b.Jobs))
	var errs []error
	for _, job := range b.Jobs {
		res := o.runJob(job)
		if res.Err != nil {
			o.logger.Error("conversion failed", "input", job.Input, "error", res.Err)
			errs = append(errs, res.Err)
		}
		results = append(results, res)
	}

	o.logger.Debug("batch finished", "jobs", len(results), "failed", len(errs))
	return results, errors.Join(errs...)
}

func (o *Orchestrator) runJob(job batch.Job) (res JobResult) {
	res = JobResult{Job: job, State: Unopened}
	log := o.logger.With("input", job.Input)

	src, err := o.open(job.Input)
	if err != nil {
		res.State, res.Err = Failed, err
		return res
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn("failed to close input", "error", cerr)
		}
	}()
	res.State = Opened

	header := src.Header()
	if o.headerOnly {
		log.Info("header", "rows", header.RowCount, "columns", len(header.Columns))
		if _, err := io.WriteString(o.out, header.Describe()); err != nil {
			res.State, res.Err = Failed, fmt.Errorf("%s: failed to write header: %w", job.Input, err)
			return res
		}
		res.State = HeaderReported
		return res
	}

	res.State = Converting
	log.Debug("converting", "output", job.Output, "rows", header.RowCount)
	res.Result, err = o.sink.Convert(src, job.Output, log)
	switch {
	case err != nil:
		res.State, res.Err = Failed, fmt.Errorf("%s: %w", job.Input, err)
	case res.Result.Interrupted:
		res.State = Interrupted
	default:
		res.State = Completed
	}
	return res
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/vegasq/tabconv/batch"
	"github.com/vegasq/tabconv/convert"
	"github.com/vegasq/tabconv/internal/config"
	"github.com/vegasq/tabconv/internal/logging"
	"github.com/vegasq/tabconv/output"
	"github.com/vegasq/tabconv/progress"
	"github.com/vegasq/tabconv/reader"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitInvalid = 2
)

func main() {
	ignoreBrokenPipe()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// ignoreBrokenPipe turns a closed standard output into EPIPE write errors,
// which the sinks report as an interruption, instead of killing the process.
func ignoreBrokenPipe() {
	signal.Ignore(syscall.SIGPIPE)
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInvalid
	}

	logger := logging.New(stderr, cfg.Debug, "")
	logger.Debug("decoders", "extensions", reader.Extensions())

	b, err := batch.Resolve(cfg.Args, batch.Options{
		SourceExts: cfg.SourceExts,
		TextExt:    cfg.OutputExt(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Use --help for more details.\n")
		return exitInvalid
	}

	var sink output.Sink
	if !cfg.HeaderOnly {
		sink, err = newSink(cfg, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInvalid
		}
	}

	o := convert.New(sink, convert.Options{
		HeaderOnly: cfg.HeaderOnly,
		Out:        stdout,
		Logger:     logger,
	})
	results, err := o.Run(b)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	for _, r := range results {
		logger.Debug("job finished", "input", r.Job.Input, "output", r.Job.Output, "state", r.State.String())
	}
	return exitOK
}

// newSink selects the output strategy once for the whole invocation.
func newSink(cfg *config.Config, stdout io.Writer) (output.Sink, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	delimiter, err := cfg.DelimiterRune()
	if err != nil {
		return nil, err
	}
	reporter, err := progress.New(cfg.ProgressStep, nil)
	if err != nil {
		return nil, err
	}
	return output.New(format, output.Options{
		Delimiter:    delimiter,
		Sanitize:     cfg.Sanitize,
		Reporter:     reporter,
		Stdout:       stdout,
		MaxCellWidth: cfg.MaxCellWidth,
	})
}

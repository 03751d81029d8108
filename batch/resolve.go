package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidArguments is returned when the path arguments do not form a valid batch.
var ErrInvalidArguments = errors.New("invalid arguments")

// StdoutMarker is the output argument that routes a job to standard output.
const StdoutMarker = "-"

// Options controls which extensions Resolve accepts.
type Options struct {
	// SourceExts lists the extensions of convertible input files, e.g. ".sas7bdat".
	SourceExts []string

	// TextExt is the extension of derived output files, e.g. ".csv".
	TextExt string
}

// DefaultOptions returns the extensions used when none are configured.
func DefaultOptions() Options {
	return Options{
		SourceExts: []string{".sas7bdat", ".parquet"},
		TextExt:    ".csv",
	}
}

// Job is one input file and the place its output goes.
type Job struct {
	Input  string
	Output string
}

// ToStdout reports whether the job writes to standard output.
func (j Job) ToStdout() bool {
	return j.Output == StdoutMarker
}

// Batch is the ordered, resolved list of jobs for one invocation.
type Batch struct {
	Jobs []Job

	// Ignored holds an explicit output argument dropped because the inputs
	// were glob expressions.
	Ignored []string
}

// Resolve turns raw path arguments into a Batch.
//
// All failures wrap ErrInvalidArguments. No file is opened or created.
func Resolve(args []string, opts Options) (*Batch, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no input files", ErrInvalidArguments)
	}
	if opts.TextExt == "" {
		opts.TextExt = DefaultOptions().TextExt
	}

	for _, arg := range args {
		if isGlob(arg) {
			return resolveGlobs(args, opts)
		}
	}

	b := &Batch{}
	inputs := []string{args[0]}
	var outputs []string

	switch {
	case len(args) == 1:
		outputs = []string{deriveOutput(args[0], opts.TextExt)}
	case len(args) == 2 && isOutputArg(args[1], opts):
		outputs = []string{args[1]}
	default:
		inputs = args
		for _, arg := range args {
			if !hasExt(arg, opts.SourceExts) {
				return nil, fmt.Errorf("%w: %q is not a %s file", ErrInvalidArguments, arg, strings.Join(opts.SourceExts, "/"))
			}
			outputs = append(outputs, deriveOutput(arg, opts.TextExt))
		}
	}

	if err := b.pair(inputs, outputs); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveGlobs expands every glob argument. Output-looking arguments are
// set aside, and every remaining path must carry a source extension.
func resolveGlobs(args []string, opts Options) (*Batch, error) {
	b := &Batch{}
	var inputs []string

	for _, arg := range args {
		if !isGlob(arg) {
			if isOutputArg(arg, opts) && !hasExt(arg, opts.SourceExts) {
				b.Ignored = append(b.Ignored, arg)
				continue
			}
			inputs = append(inputs, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid glob pattern %q: %w", ErrInvalidArguments, arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match pattern: %s", ErrInvalidArguments, arg)
		}
		inputs = append(inputs, matches...)
	}

	outputs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !hasExt(in, opts.SourceExts) {
			return nil, fmt.Errorf("%w: %q is not a %s file", ErrInvalidArguments, in, strings.Join(opts.SourceExts, "/"))
		}
		outputs = append(outputs, deriveOutput(in, opts.TextExt))
	}

	if err := b.pair(inputs, outputs); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Batch) pair(inputs, outputs []string) error {
	if len(inputs) != len(outputs) {
		return fmt.Errorf("%w: %d inputs but %d outputs", ErrInvalidArguments, len(inputs), len(outputs))
	}
	b.Jobs = make([]Job, len(inputs))
	for i := range inputs {
		if inputs[i] == outputs[i] {
			return fmt.Errorf("%w: output %q would overwrite its input", ErrInvalidArguments, outputs[i])
		}
		b.Jobs[i] = Job{Input: inputs[i], Output: outputs[i]}
	}
	return nil
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[")
}

func isOutputArg(arg string, opts Options) bool {
	return arg == StdoutMarker || hasExt(arg, []string{opts.TextExt})
}

func hasExt(path string, exts []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// deriveOutput replaces the extension of path with ext, keeping its directory.
func deriveOutput(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

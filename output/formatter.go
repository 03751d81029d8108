package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vegasq/tabconv/progress"
	"github.com/vegasq/tabconv/reader"
)

// Format names an output strategy.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
	FormatFrame Format = "frame"
)

// Formats lists the supported formats.
var Formats = []Format{FormatCSV, FormatJSONL, FormatFrame}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (supported: csv, jsonl, frame)", s)
}

// Sink consumes the rows of one source.
type Sink interface {
	// Convert drains src into the destination named by outputPath and
	// logs to log.
	Convert(src reader.Source, outputPath string, log *slog.Logger) (Result, error)
}

// Result summarises one Convert call.
type Result struct {
	// Written is the number of output lines the destination accepted, or
	// the number of frame rows built.
	Written int64

	// Seen is the last 1-based input index minus one. Because the first
	// row is the column-name row, this equals the number of data rows read.
	Seen int64

	// Interrupted is set when the destination stopped accepting writes.
	Interrupted bool

	// Frame is the built table, FrameSink only.
	Frame *Frame
}

// Options configures the sinks built by New.
type Options struct {
	Delimiter rune // zero means ','
	Sanitize  bool
	Reporter  *progress.Reporter
	Stdout    io.Writer

	// BufferSize is the write buffer per destination: zero selects
	// DefaultBufferSize, a negative value disables buffering.
	BufferSize int

	// MaxCellWidth truncates frame cells wider than this many columns; zero disables it.
	MaxCellWidth int
}

// New returns the sink for format.
func New(format Format, opts Options) (Sink, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	switch format {
	case FormatCSV, FormatJSONL:
		return NewDelimitedSink(format, opts)
	case FormatFrame:
		return &FrameSink{Out: opts.Stdout, MaxCellWidth: opts.MaxCellWidth}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

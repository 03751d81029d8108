package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vegasq/tabconv/internal/logging"
	"github.com/vegasq/tabconv/progress"
	"github.com/vegasq/tabconv/reader"
)

// DefaultBufferSize is the write buffer placed in front of each destination.
const DefaultBufferSize = 64 * 1024

// lineEncoder writes one row as one line.
type lineEncoder interface {
	Encode(row reader.Row) error
}

// DelimitedSink streams rows to a text destination, one line per row.
type DelimitedSink struct {
	format    Format
	delimiter rune
	sanitize  bool
	reporter  *progress.Reporter
	dest      destinations
}

// NewDelimitedSink returns a sink writing format (csv or jsonl).
// A zero Delimiter means comma.
func NewDelimitedSink(format Format, opts Options) (*DelimitedSink, error) {
	if format != FormatCSV && format != FormatJSONL {
		return nil, fmt.Errorf("format %q is not line oriented", format)
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if !validDelimiter(opts.Delimiter) {
		return nil, fmt.Errorf("invalid delimiter %q", opts.Delimiter)
	}
	if opts.Reporter == nil {
		r, err := progress.New(progress.DefaultStep, nil)
		if err != nil {
			return nil, err
		}
		opts.Reporter = r
	}
	return &DelimitedSink{
		format:    format,
		delimiter: opts.Delimiter,
		sanitize:  opts.Sanitize,
		reporter:  opts.Reporter,
		dest:      newDestinations(opts.Stdout, opts.BufferSize),
	}, nil
}

// Convert writes every non-empty row of src to outputPath, or to standard
// output when outputPath is "-".
//
// Empty rows are skipped: they advance the input index but produce no
// line. A write failure stops the loop with a warning and is reported in
// Result.Interrupted rather than as an error. Result.Written counts the
// lines the destination accepted, buffered lines lost at the final flush
// excluded. The destination is closed on every path, except standard
// output which is only flushed.
func (s *DelimitedSink) Convert(src reader.Source, outputPath string, log *slog.Logger) (res Result, err error) {
	if log == nil {
		log = logging.Discard()
	}
	header := src.Header()
	log.Debug("converting", "input", header.Path, "output", outputPath)

	w, err := s.dest.open(outputPath)
	if err != nil {
		return res, fmt.Errorf("failed to create output %s: %w", outputPath, err)
	}

	enc := s.encoder(w)
	reporter := s.reporter.WithLogger(log)

	var inputIndex int64
	for {
		row, rerr := src.ReadRow()
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			err = fmt.Errorf("failed to read row %d of %s: %w", inputIndex+1, header.Path, rerr)
			break
		}
		inputIndex++
		if len(row) == 0 {
			continue
		}
		reporter.MaybeReport(inputIndex, header.RowCount)

		if werr := enc.Encode(row); werr != nil {
			res.Written = w.Lines()
			log.Warn(fmt.Sprintf("Wrote %d lines before interruption", res.Written), "written", res.Written, "error", werr)
			res.Interrupted = true
			break
		}
		w.EndLine()
	}

	// Written counts only lines the destination accepted, so it is read
	// after the final flush.
	cerr := w.Close()
	res.Written = w.Lines()
	if cerr != nil && !res.Interrupted {
		log.Warn(fmt.Sprintf("Wrote %d lines before interruption", res.Written), "written", res.Written, "error", cerr)
		res.Interrupted = true
	}

	res.Seen = max(inputIndex-1, 0)
	log.Info(fmt.Sprintf("[%s] wrote %d of %d lines", filepath.Base(outputPath), res.Seen, header.RowCount),
		"written", res.Written, "seen", res.Seen, "total", header.RowCount)
	return res, err
}

func (s *DelimitedSink) encoder(w io.Writer) lineEncoder {
	if s.format == FormatJSONL {
		return newJSONEncoder(w)
	}
	cw := csv.NewWriter(w)
	cw.Comma = s.delimiter
	cw.UseCRLF = false
	return &csvEncoder{w: cw, sanitize: s.sanitize}
}

// csvEncoder writes delimiter-separated lines terminated by "\n".
type csvEncoder struct {
	w        *csv.Writer
	sanitize bool
	record   []string
}

func (e *csvEncoder) Encode(row reader.Row) error {
	e.record = e.record[:0]
	for _, v := range row {
		cell := reader.FormatValue(v)
		if _, ok := v.(string); ok && e.sanitize {
			cell = sanitizeCell(cell)
		}
		e.record = append(e.record, cell)
	}
	if err := e.w.Write(e.record); err != nil {
		return err
	}
	// Flush per line so a failing destination is noticed at the row that hit it
	e.w.Flush()
	return e.w.Error()
}

// validDelimiter mirrors the checks encoding/csv applies to Comma.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != 0xFFFD
}

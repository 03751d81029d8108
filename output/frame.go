package output

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tabconv/internal/logging"
	"github.com/vegasq/tabconv/reader"
)

var (
	// ErrShapeMismatch is returned when a data row's width differs from the column count.
	ErrShapeMismatch = errors.New("row width does not match columns")

	// ErrNoColumns is returned when a source produces no column-name row.
	ErrNoColumns = errors.New("source has no column-name row")
)

// ShapeError reports the first data row whose width disagrees with the columns.
type ShapeError struct {
	Row  int // 0-based data row index
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: row %d has %d values, want %d", ErrShapeMismatch, e.Row, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// Frame is an in-memory table with named columns.
type Frame struct {
	Columns []string
	Rows    []reader.Row
}

// NewFrame checks that every row is as wide as columns.
func NewFrame(columns []string, rows []reader.Row) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, &ShapeError{Row: i, Got: len(row), Want: len(columns)}
		}
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Column returns the values of the named column.
func (f *Frame) Column(name string) ([]any, bool) {
	for i, c := range f.Columns {
		if c != name {
			continue
		}
		values := make([]any, len(f.Rows))
		for j, row := range f.Rows {
			values[j] = row[i]
		}
		return values, true
	}
	return nil, false
}

// Render writes the frame as a text table with a row-number column and a
// "[rows x columns]" footer line. Cells wider than maxCellWidth display
// columns are truncated; zero disables truncation.
func (f *Frame) Render(w io.Writer, maxCellWidth int) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{""}, f.Columns...))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i, row := range f.Rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.Itoa(i))
		for _, v := range row {
			cells = append(cells, truncate(reader.FormatValue(v), maxCellWidth))
		}
		table.Append(cells)
	}
	table.Render()

	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", len(f.Rows), len(f.Columns))
	return err
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// TakeHeader reads the column-name row, the first row of every source.
func TakeHeader(r reader.RowReader) ([]string, error) {
	row, err := r.ReadRow()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}
	return row.Strings(), nil
}

// IterateRows drains r, keeping every non-empty row in order.
func IterateRows(r reader.RowReader) ([]reader.Row, error) {
	var rows []reader.Row
	for {
		row, err := r.ReadRow()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
}

// BuildFrame takes the column-name row from r and collects the remaining
// rows into a Frame. The whole dataset is held in memory.
func BuildFrame(r reader.RowReader) (*Frame, error) {
	columns, err := TakeHeader(r)
	if err != nil {
		return nil, err
	}
	rows, err := IterateRows(r)
	if err != nil {
		return nil, err
	}
	return NewFrame(columns, rows)
}

// FrameSink builds a Frame from each source and renders it to Out.
type FrameSink struct {
	Out          io.Writer
	MaxCellWidth int
}

// Convert builds the frame for src. outputPath is not written; the frame is
// returned in the Result and, when Out is set, rendered there.
func (s *FrameSink) Convert(src reader.Source, _ string, log *slog.Logger) (Result, error) {
	if log == nil {
		log = logging.Discard()
	}
	header := src.Header()

	frame, err := BuildFrame(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build frame from %s: %w", header.Path, err)
	}

	res := Result{Written: int64(frame.Len()), Seen: int64(frame.Len()), Frame: frame}
	log.Info("built frame", "rows", frame.Len(), "columns", len(frame.Columns), "total", header.RowCount)

	if s.Out != nil {
		if err := frame.Render(s.Out, s.MaxCellWidth); err != nil {
			return res, fmt.Errorf("failed to render frame: %w", err)
		}
	}
	return res, nil
}

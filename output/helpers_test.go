package output

import (
	"errors"
	"io"

	"github.com/vegasq/tabconv/reader"
)

// memSource serves rows from memory and counts reads.
type memSource struct {
	header *reader.Header
	rows   []reader.Row
	reads  int
	err    error // returned after rows are exhausted, instead of io.EOF
}

func newMemSource(total int64, rows ...reader.Row) *memSource {
	return &memSource{header: &reader.Header{Path: "mem.parquet", RowCount: total}, rows: rows}
}

func (m *memSource) ReadRow() (reader.Row, error) {
	m.reads++
	if len(m.rows) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		return nil, io.EOF
	}
	row := m.rows[0]
	m.rows = m.rows[1:]
	return row, nil
}

func (m *memSource) Header() *reader.Header { return m.header }
func (m *memSource) Close() error           { return nil }

var errBrokenPipe = errors.New("broken pipe")

// limitedWriter accepts limit writes, then fails every write.
type limitedWriter struct {
	limit  int
	writes int
	data   []byte
	closed bool
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.writes >= w.limit {
		return 0, errBrokenPipe
	}
	w.writes++
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *limitedWriter) Close() error {
	w.closed = true
	return nil
}

// byteLimitWriter accepts limit bytes in total, then fails. A write that
// crosses the limit is accepted in part.
type byteLimitWriter struct {
	limit int
	data  []byte
}

func (w *byteLimitWriter) Write(p []byte) (int, error) {
	room := w.limit - len(w.data)
	if room >= len(p) {
		w.data = append(w.data, p...)
		return len(p), nil
	}
	room = max(room, 0)
	w.data = append(w.data, p[:room]...)
	return room, errBrokenPipe
}

// numberedRows returns n single-column rows "1".."n".
func numberedRows(n int) []reader.Row {
	rows := make([]reader.Row, n)
	for i := range rows {
		rows[i] = reader.Row{int64(i + 1)}
	}
	return rows
}

package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// readBatchSize is the number of rows decoded per ReadRows call.
const readBatchSize = 256

// rowReadCloser is the part of *parquet.Reader that ParquetSource uses.
type rowReadCloser interface {
	ReadRows(rows []parquet.Row) (int, error)
	io.Closer
}

// ParquetSource reads a parquet file one row at a time.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup. Rows are decoded lazily in small batches, so
// memory use does not grow with the file size.
type ParquetSource struct {
	file   *os.File
	pqFile *parquet.File
	rows   rowReadCloser
	header *Header

	buf         []parquet.Row
	next, n     int
	done        bool
	columnsSent bool
}

// OpenParquet opens the parquet file at path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
//
// Example:
//
//	src, err := OpenParquet("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
func OpenParquet(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetSource{
		file:   file,
		pqFile: pqFile,
		rows:   parquet.NewReader(pqFile),
		header: &Header{
			Path:     path,
			Format:   "parquet",
			RowCount: pqFile.NumRows(),
			Columns:  columnsOf(pqFile.Schema()),
		},
		buf: make([]parquet.Row, readBatchSize),
	}, nil
}

// Header returns the file's row count and column layout.
func (r *ParquetSource) Header() *Header {
	return r.header
}

// ReadRow returns the column-name row first, then one data row per call.
// It returns io.EOF once every row group has been read.
func (r *ParquetSource) ReadRow() (Row, error) {
	if !r.columnsSent {
		r.columnsSent = true
		names := r.header.ColumnNames()
		row := make(Row, len(names))
		for i, name := range names {
			row[i] = name
		}
		return row, nil
	}

	for r.next >= r.n {
		if r.done || r.rows == nil {
			return nil, io.EOF
		}
		n, err := r.rows.ReadRows(r.buf)
		r.next, r.n = 0, n
		if err != nil {
			// Use errors.Is for proper EOF detection
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to read row: %w", err)
			}
			r.done = true
		}
	}

	row := r.toRow(r.buf[r.next])
	r.next++
	return row, nil
}

// toRow places each value in the slot of its leaf column. Repeated values
// in one column are joined with ';'.
func (r *ParquetSource) toRow(values parquet.Row) Row {
	row := make(Row, len(r.header.Columns))
	filled := make([]bool, len(row))
	for _, v := range values {
		col := v.Column()
		if col < 0 || col >= len(row) {
			continue
		}
		if !filled[col] {
			row[col] = scalar(v)
			filled[col] = true
			continue
		}
		if v.IsNull() {
			continue
		}
		row[col] = FormatValue(row[col]) + ";" + FormatValue(scalar(v))
	}
	return row
}

func scalar(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}

// Close closes the parquet reader and releases associated resources.
//
// It is safe to call Close multiple times.
func (r *ParquetSource) Close() error {
	var rowsErr, fileErr error
	if r.rows != nil {
		rowsErr = r.rows.Close()
		r.rows = nil
	}
	if r.file != nil {
		fileErr = r.file.Close()
		r.file = nil
	}
	return errors.Join(rowsErr, fileErr)
}

package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrSourceOpen is returned when an input file cannot be opened or parsed.
	ErrSourceOpen = errors.New("cannot open source")

	// ErrNoDecoder is returned when no decoder is registered for an input's extension.
	ErrNoDecoder = fmt.Errorf("%w: no decoder registered", ErrSourceOpen)
)

// Row is one record: an ordered sequence of scalar values (string, int64,
// float32, float64, bool or nil). A zero-length Row is a skip sentinel.
type Row []any

// Strings returns the row values formatted as text. Nil values become "".
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = FormatValue(v)
	}
	return out
}

// RowReader pulls rows one at a time. ReadRow returns io.EOF once the
// sequence is exhausted; the sequence cannot be restarted.
type RowReader interface {
	ReadRow() (Row, error)
}

// Source is an opened input file.
type Source interface {
	RowReader

	// Header returns the metadata read when the source was opened.
	Header() *Header

	// Close releases the underlying file.
	Close() error
}

// OpenFunc opens the file at path as a Source.
type OpenFunc func(path string) (Source, error)

var (
	openersMu sync.RWMutex
	openers   = map[string]OpenFunc{
		".parquet": OpenParquet,
	}
)

// Register installs open as the decoder for files with extension ext
// (compared case-insensitively, leading dot optional). A later call for the
// same extension replaces the earlier decoder.
func Register(ext string, open OpenFunc) {
	openersMu.Lock()
	defer openersMu.Unlock()
	openers[normalizeExt(ext)] = open
}

// Extensions returns the registered extensions in sorted order.
func Extensions() []string {
	openersMu.RLock()
	defer openersMu.RUnlock()
	exts := make([]string, 0, len(openers))
	for ext := range openers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Open opens path with the decoder registered for its extension.
//
// All failures match ErrSourceOpen with errors.Is.
func Open(path string) (Source, error) {
	ext := normalizeExt(filepath.Ext(path))

	openersMu.RLock()
	open, ok := openers[ext]
	openersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %q (%s)", ErrNoDecoder, ext, path)
	}

	src, err := open(path)
	if err != nil {
		if errors.Is(err, ErrSourceOpen) {
			return nil, err
		}
		return nil, fmt.Errorf("%w %s: %w", ErrSourceOpen, path, err)
	}
	return src, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

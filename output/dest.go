package output

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// stdoutMarker is the output path that selects standard output.
const stdoutMarker = "-"

// destinations opens output paths. create is replaceable in tests.
type destinations struct {
	stdout     io.Writer
	bufferSize int
	create     func(path string) (io.WriteCloser, error)
}

func newDestinations(stdout io.Writer, bufferSize int) destinations {
	if stdout == nil {
		stdout = os.Stdout
	}
	if bufferSize == 0 {
		bufferSize = DefaultBufferSize
	}
	return destinations{
		stdout:     stdout,
		bufferSize: bufferSize,
		create: func(path string) (io.WriteCloser, error) {
			return os.Create(path)
		},
	}
}

// open returns the destination for path. Closing it flushes and, for
// files, closes the file; standard output is never closed.
func (d destinations) open(path string) (*destination, error) {
	if path == stdoutMarker {
		return d.wrap(nopCloser{d.stdout}), nil
	}
	f, err := d.create(path)
	if err != nil {
		return nil, err
	}
	return d.wrap(f), nil
}

func (d destinations) wrap(wc io.WriteCloser) *destination {
	dst := &destination{under: wc}
	dst.out = &dst.lines
	dst.lines.w = wc
	if d.bufferSize > 0 {
		dst.buf = bufio.NewWriterSize(&dst.lines, d.bufferSize)
		dst.out = dst.buf
	}
	return dst
}

// destination is an optionally buffered writer that knows how many
// complete lines the underlying writer has accepted.
type destination struct {
	out    io.Writer
	buf    *bufio.Writer // nil when unbuffered
	lines  lineTracker
	under  io.Closer
	handed int64
}

func (d *destination) Write(p []byte) (int, error) {
	n, err := d.out.Write(p)
	d.handed += int64(n)
	return n, err
}

// EndLine marks everything written so far as one or more complete lines.
func (d *destination) EndLine() {
	d.lines.mark(d.handed)
}

// Lines is the number of complete lines accepted by the underlying writer.
func (d *destination) Lines() int64 {
	return d.lines.done
}

// Close flushes pending data and always closes the underlying writer.
func (d *destination) Close() error {
	var ferr error
	if d.buf != nil {
		ferr = d.buf.Flush()
	}
	return errors.Join(ferr, d.under.Close())
}

// lineTracker counts bytes accepted by w and settles line end offsets
// against them.
type lineTracker struct {
	w        io.Writer
	accepted int64
	pending  []int64
	done     int64
}

func (t *lineTracker) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	t.accepted += int64(n)
	t.settle()
	return n, err
}

func (t *lineTracker) mark(end int64) {
	t.pending = append(t.pending, end)
	t.settle()
}

func (t *lineTracker) settle() {
	i := 0
	for i < len(t.pending) && t.pending[i] <= t.accepted {
		i++
	}
	t.done += int64(i)
	t.pending = t.pending[i:]
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

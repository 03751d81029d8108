package logging

import (
	"context"
	"log/slog"
	"sync"
)

// Record is a captured log record with its attributes flattened.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps every record in memory.
// Tests use it to assert on emitted messages.
type Recorder struct {
	mu      *sync.Mutex
	records *[]Record
	attrs   []slog.Attr
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, records: &[]Record{}}
}

// Logger returns a logger backed by r.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(r)
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	attrs := make(map[string]any, len(r.attrs)+rec.NumAttrs())
	for _, a := range r.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, Record{Level: rec.Level, Message: rec.Message, Attrs: attrs})
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &Recorder{mu: r.mu, records: r.records, attrs: merged}
}

// WithGroup is a no-op; groups are not used by the converter.
func (r *Recorder) WithGroup(string) slog.Handler { return r }

// Records returns a copy of everything logged so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), *r.records...)
}

// Messages returns the messages logged at level.
func (r *Recorder) Messages(level slog.Level) []string {
	var msgs []string
	for _, rec := range r.Records() {
		if rec.Level == level {
			msgs = append(msgs, rec.Message)
		}
	}
	return msgs
}

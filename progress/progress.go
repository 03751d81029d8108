// Package progress reports conversion progress every N rows.
package progress

import (
	"errors"
	"log/slog"

	"github.com/vegasq/tabconv/internal/logging"
)

// DefaultStep is the default number of rows between reports.
const DefaultStep = 100000

// ErrInvalidStep is returned by New for a step that is not positive.
var ErrInvalidStep = errors.New("progress step must be positive")

// Reporter emits a percentage-complete log line every Step rows.
// It holds no state besides its configuration.
type Reporter struct {
	step   int64
	logger *slog.Logger
}

// New returns a Reporter that logs to logger every step rows.
// A nil logger discards reports.
func New(step int64, logger *slog.Logger) (*Reporter, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reporter{step: step, logger: logger}, nil
}

// Step returns the report interval.
func (r *Reporter) Step() int64 {
	return r.step
}

// MaybeReport reports 100*index/total when index is a positive multiple of
// the step. A total of zero or less has no meaningful percentage, so no
// report is made.
func (r *Reporter) MaybeReport(index, total int64) (float64, bool) {
	if index <= 0 || index%r.step != 0 {
		return 0, false
	}
	if total <= 0 {
		r.logger.Debug("progress unknown, source declares no rows", "rows", index)
		return 0, false
	}

	pct := 100.0 * float64(index) / float64(total)
	r.logger.Info("progress", "complete", formatPercent(pct), "rows", index, "total", total)
	return pct, true
}

// WithLogger returns a copy of r that logs to logger.
func (r *Reporter) WithLogger(logger *slog.Logger) *Reporter {
	if logger == nil {
		return r
	}
	return &Reporter{step: r.step, logger: logger}
}

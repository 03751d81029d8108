// Package convert drives a resolved batch of jobs through a record source
// and an output sink.
//
// Each job moves through
//
//	Unopened -> Opened -> HeaderReported
//	Unopened -> Opened -> Converting -> Completed | Interrupted
//
// and, on a source or sink error, ends in Failed. Jobs run one at a time in
// batch order and share no state. A failed or interrupted job does not stop
// the jobs after it.
package convert

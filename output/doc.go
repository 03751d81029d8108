// Package output provides the sinks that consume a source's rows.
//
// Two strategies share the same row-iteration contract and are selected
// once per invocation with New:
//
//   - DelimitedSink streams each non-empty row to one line of text, either
//     delimiter-separated (CSV) or a JSON array (JSON Lines). Memory use is
//     constant per row.
//   - FrameSink builds an in-memory Frame with named columns from every row
//     and renders it as a text table.
//
// # Basic Usage
//
//	sink, err := output.New(output.FormatCSV, output.Options{
//	    Delimiter: ';',
//	    Reporter:  reporter,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := sink.Convert(src, "data.csv", logger)
//
// # Write Interruption
//
// When the destination stops accepting writes (for example the reader of
// standard output exits), DelimitedSink logs a warning with the number of
// lines written, stops reading, and still closes the destination. The
// condition is recorded in Result.Interrupted and is not returned as an
// error.
//
// # Type Handling
//
// Rows hold scalar values:
//   - Strings, numbers (int, float), booleans are written directly
//   - Nil values become empty fields in CSV and null in JSON Lines
//   - Optional sanitising prefixes string cells that spreadsheets would
//     evaluate as formulas
package output

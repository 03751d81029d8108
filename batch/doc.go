// Package batch resolves command-line path arguments into an ordered list
// of conversion jobs.
//
// Three argument shapes are accepted:
//
//	data.sas7bdat                 -> data.csv
//	data.sas7bdat out.csv         -> out.csv
//	data.sas7bdat -               -> standard output
//	a.sas7bdat b.parquet          -> a.csv, b.csv
//
// An input argument may be a glob expression. Globs force multi-file mode:
// every match becomes a job whose output is derived by extension
// substitution, and an explicit output argument is ignored.
package batch

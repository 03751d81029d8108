package config

// This file implements CLI flag parsing and help text.
// Flags are parsed twice: once to find --config, then again on top of the
// loaded file so that flags given on the command line win.

import (
	"flag"
	"fmt"
	"io"
)

// ParseArgs builds a Config from defaults, the optional config file and
// args (without the program name). It returns flag.ErrHelp for -h/--help.
func ParseArgs(args []string, stderr io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	probe := newFlagSet(cfg, io.Discard)
	if err := probe.Parse(args); err != nil {
		// Report the error with usage on the real pass
		return nil, reparse(args, stderr)
	}

	if cfg.ConfigFile != "" {
		path := cfg.ConfigFile
		cfg = DefaultConfig()
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	fs := newFlagSet(cfg, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()

	if len(cfg.Args) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("%w: missing input file argument", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func reparse(args []string, stderr io.Writer) error {
	return newFlagSet(DefaultConfig(), stderr).Parse(args)
}

func newFlagSet(cfg *Config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tabconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }

	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Turn on debug logging")
	fs.BoolVar(&cfg.Debug, "d", cfg.Debug, "Same as --debug")
	fs.BoolVar(&cfg.HeaderOnly, "header", cfg.HeaderOnly, "Print out header information and exit")
	fs.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "Delimiter in the output csv file (\"tab\" for a tab)")
	fs.Int64Var(&cfg.ProgressStep, "progress-step", cfg.ProgressStep, "Display progress every `N` rows")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format: csv | jsonl | frame")
	fs.StringVar(&cfg.Format, "f", cfg.Format, "Same as --format")
	fs.BoolVar(&cfg.Sanitize, "sanitize", cfg.Sanitize, "Prefix string cells that spreadsheets would run as formulas")
	fs.IntVar(&cfg.MaxCellWidth, "max-cell-width", cfg.MaxCellWidth, "Truncate frame cells wider than `N` columns (0 = no limit)")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Load settings from a YAML `file`")
	return fs
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: tabconv [options] <infile> [outfile]\n\n")
	fmt.Fprintf(w, "  Convert columnar files (sas7bdat, parquet) to csv. <infile> is the path to\n")
	fmt.Fprintf(w, "  an input file and [outfile] is the optional path to the output csv file, or\n")
	fmt.Fprintf(w, "  \"-\" for standard output. If omitted, [outfile] defaults to the name of the\n")
	fmt.Fprintf(w, "  input file with a csv extension. <infile> can also be a glob expression or a\n")
	fmt.Fprintf(w, "  list of files, in which case the [outfile] argument is ignored.\n\n")
	fmt.Fprintf(w, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  tabconv data.sas7bdat\n")
	fmt.Fprintf(w, "  tabconv --delimiter ';' data.parquet out.csv\n")
	fmt.Fprintf(w, "  tabconv data.parquet - | head\n")
	fmt.Fprintf(w, "  tabconv --header 'data/*.parquet'\n")
	fmt.Fprintf(w, "  tabconv -f frame data.parquet\n")
}

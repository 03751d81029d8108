// Package reader defines the record source boundary used by the converter.
//
// A Source exposes a Header (declared row count and column metadata) and a
// lazy, finite, non-restartable sequence of rows pulled one at a time with
// ReadRow. The first row produced by every source is the column-name row;
// the remaining rows are data. An empty row is a valid sentinel that
// consumers skip.
//
// # Opening Sources
//
// Sources are opened by file extension through a registry:
//
//	src, err := reader.Open("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
// Parquet files are supported out of the box via parquet-go. Decoders for
// other columnar formats are plugged in with Register:
//
//	reader.Register(".sas7bdat", openSAS)
//
// Opening a path whose extension has no registered decoder fails with
// ErrNoDecoder, which also matches ErrSourceOpen.
//
// # Reading Rows
//
//	for {
//	    row, err := src.ReadRow()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use row
//	}
//
// # Header Description
//
// Header.Describe renders the path, declared row count and a column table,
// suitable for header-only reports.
package reader

package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Column describes one leaf column of a source.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Header is the metadata a Source exposes for one input file.
//
// RowCount is the declared number of data rows. It is only used as the
// denominator of progress percentages and may be zero.
type Header struct {
	Path     string
	Format   string
	RowCount int64
	Columns  []Column
}

// ColumnNames returns the column names in source order.
func (h *Header) ColumnNames() []string {
	names := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		names[i] = c.Name
	}
	return names
}

// Describe renders a human-readable description of the header.
func (h *Header) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path:    %s\n", h.Path)
	if h.Format != "" {
		fmt.Fprintf(&b, "Format:  %s\n", h.Format)
	}
	fmt.Fprintf(&b, "Rows:    %d\n", h.RowCount)
	fmt.Fprintf(&b, "Columns: %d\n", len(h.Columns))
	if len(h.Columns) == 0 {
		return b.String()
	}

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"#", "Name", "Type"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for i, c := range h.Columns {
		table.Append([]string{strconv.Itoa(i + 1), c.Name, c.Type})
	}
	table.Render()
	return b.String()
}

func (h *Header) String() string {
	return h.Describe()
}

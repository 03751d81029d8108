package reader

import (
	"github.com/parquet-go/parquet-go"
)

// columnsOf flattens the schema into its leaf columns, in column-index order.
// For nested types, column names use dot notation (e.g., "address.street").
func columnsOf(schema *parquet.Schema) []Column {
	var columns []Column
	for _, field := range schema.Fields() {
		columns = append(columns, leafColumns(field, "")...)
	}
	return columns
}

// leafColumns recursively collects the leaf columns below field.
// The prefix parameter is used to build dot-notation names for nested fields.
func leafColumns(field parquet.Field, prefix string) []Column {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	// Groups contribute their children, never themselves
	if children := field.Fields(); len(children) > 0 {
		var columns []Column
		for _, child := range children {
			columns = append(columns, leafColumns(child, name)...)
		}
		return columns
	}

	typ := getUserFriendlyType(field)
	if field.Repeated() {
		typ = "LIST<" + typ + ">"
	} else if field.Optional() {
		typ += "?"
	}
	return []Column{{Name: name, Type: typ}}
}

// logicalTypeNames maps parquet logical type names to display names.
var logicalTypeNames = map[string]string{
	"STRING":    "STRING",
	"UTF8":      "STRING",
	"ENUM":      "ENUM",
	"UUID":      "UUID",
	"DATE":      "DATE",
	"TIME":      "TIME",
	"TIMESTAMP": "TIMESTAMP",
	"DECIMAL":   "DECIMAL",
	"JSON":      "JSON",
	"BSON":      "BSON",
}

// kindNames maps physical types to display names.
var kindNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT32",
	parquet.Double:            "FLOAT64",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

// getUserFriendlyType names a leaf field's type, preferring its logical
// type and falling back to the physical one.
func getUserFriendlyType(field parquet.Field) string {
	typ := field.Type()
	if typ == nil {
		return "GROUP"
	}
	if lt := typ.LogicalType(); lt != nil {
		if name, ok := logicalTypeNames[lt.String()]; ok {
			return name
		}
	}
	if name, ok := kindNames[typ.Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/tabconv/reader"
)

// jsonEncoder writes each row as a JSON array on its own line.
type jsonEncoder struct {
	enc *json.Encoder
}

func newJSONEncoder(w io.Writer) *jsonEncoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &jsonEncoder{enc: enc}
}

func (j *jsonEncoder) Encode(row reader.Row) error {
	return j.enc.Encode([]any(row))
}

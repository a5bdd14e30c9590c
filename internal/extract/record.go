package extract

import (
	"bytes"
	"encoding/json"
)

// Record is the evaluated value of one keyword call plus its provenance.
type Record struct {
	// Fields is the object returned by the binding. Non-object results are
	// stored under "value".
	Fields   map[string]any
	Line     int
	Filename string
}

// Get returns Fields[key] when it holds a string.
func (r Record) Get(key string) string {
	s, _ := r.Fields[key].(string)
	return s
}

// MarshalJSON flattens Fields next to line and filename. Provenance wins
// over any field of the same name. Markup in messages is not escaped.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["line"] = r.Line
	out["filename"] = r.Filename

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

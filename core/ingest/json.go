package ingest

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonReader decodes a top-level array one element at a time.
type jsonReader struct {
	dec    *json.Decoder
	source string
	index  int
	done   bool
}

func newJSONReader(r io.Reader, opts Options) (Reader, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, formatError(opts.Source, -1, "invalid JSON", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, formatError(opts.Source, -1, "top-level value is not an array", nil)
	}

	return &jsonReader{dec: dec, source: opts.Source}, nil
}

func (j *jsonReader) Next() (RawRecord, error) {
	if j.done {
		return nil, io.EOF
	}

	if !j.dec.More() {
		j.done = true
		// Closing bracket
		if _, err := j.dec.Token(); err != nil {
			return nil, formatError(j.source, -1, "invalid JSON", err)
		}
		if _, err := j.dec.Token(); err != io.EOF {
			return nil, formatError(j.source, -1, "unexpected data after top-level array", err)
		}
		return nil, io.EOF
	}

	var raw any
	if err := j.dec.Decode(&raw); err != nil {
		j.done = true
		return nil, formatError(j.source, j.index, "invalid JSON", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		j.done = true
		return nil, formatError(j.source, j.index, fmt.Sprintf("element is not an object (got %s)", jsonKind(raw)), nil)
	}

	for key, val := range obj {
		switch val.(type) {
		case map[string]any, []any:
			j.done = true
			return nil, formatError(j.source, j.index, fmt.Sprintf("element is not a flat object: field %q is %s", key, jsonKind(val)), nil)
		}
	}

	j.index++
	return RawRecord(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind describes what a Value holds.
type Kind uint8

const (
	// KindAbsent marks a field with no source data. It is the zero Kind.
	KindAbsent Kind = iota
	// KindString marks a textual value, including the empty string.
	KindString
	// KindNumber marks a numeric value.
	KindNumber
)

// Value is a field value that is either absent, a string or a number.
// The zero Value is absent, which is distinct from "" and from 0.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Absent returns the absent marker.
func Absent() Value {
	return Value{}
}

// String returns a present string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a present numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Kind reports what the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsPresent reports whether the value carries source data.
func (v Value) IsPresent() bool {
	return v.kind != KindAbsent
}

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the numeric payload and whether the value is a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text renders the value as comparison text. Numbers use the shortest
// representation so that 1, 1.0 and "1" render alike. Absent renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal reports whether two values are identical, including kind.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.str == o.str && v.num == o.num
}

// String implements fmt.Stringer for logs and mismatch messages.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return v.Text()
	default:
		return "<absent>"
	}
}

// MarshalJSON encodes absent as null, strings as JSON strings and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON. Booleans are kept as strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Absent()
	case string:
		*v = String(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", t, err)
		}
		*v = Number(n)
	case bool:
		*v = String(strconv.FormatBool(t))
	default:
		return fmt.Errorf("value must be a scalar, got %T", raw)
	}
	return nil
}

// Schema is an ordered, fixed set of canonical field names.
type Schema struct {
	fields []string
	index  map[string]int
}

// NewSchema builds a schema. Duplicate names panic since schemas are static configuration.
func NewSchema(fields ...string) *Schema {
	s := &Schema{
		fields: make([]string, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	copy(s.fields, fields)
	for i, f := range fields {
		if _, dup := s.index[f]; dup {
			panic(fmt.Sprintf("reconcile: duplicate schema field %q", f))
		}
		s.index[f] = i
	}
	return s
}

// Fields returns the field names in schema order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Has reports whether name is a canonical field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// NewRecord returns a record with every field absent.
func (s *Schema) NewRecord() *Record {
	return &Record{schema: s, values: make([]Value, len(s.fields))}
}

// Record is a unified record. It always holds exactly one value per schema field.
type Record struct {
	schema *Schema
	values []Value
}

// Schema returns the record's schema.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of a field. Unknown fields read as absent.
func (r *Record) Get(field string) Value {
	i, ok := r.schema.index[field]
	if !ok {
		return Absent()
	}
	return r.values[i]
}

// Set assigns a field. It returns false when the field is not in the schema.
func (r *Record) Set(field string, v Value) bool {
	i, ok := r.schema.index[field]
	if !ok {
		return false
	}
	r.values[i] = v
	return true
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	values := make([]Value, len(r.values))
	copy(values, r.values)
	return &Record{schema: r.schema, values: values}
}

// Map returns the record as a field -> value map.
func (r *Record) Map() map[string]Value {
	out := make(map[string]Value, len(r.values))
	for i, f := range r.schema.fields {
		out[f] = r.values[i]
	}
	return out
}

// MarshalJSON writes a flat object with keys in schema order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Format identifies a source encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

// IsValid reports whether the format is one of the supported encodings.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatXML, FormatCSV:
		return true
	default:
		return false
	}
}

// Role is the declared precedence of a source within a run.
type Role string

const (
	// RoleMaster wins every field conflict.
	RoleMaster Role = "master"
	// RoleSupplement only fills fields the master leaves absent.
	RoleSupplement Role = "supplement"
)

// SourceTag marks record provenance.
type SourceTag struct {
	Format Format `json:"format"`
	Role   Role   `json:"role"`
}

// SourceRef identifies one input record: its source and zero-based position.
type SourceRef struct {
	Tag   SourceTag `json:"tag"`
	Index int       `json:"index"`
}

// MergedRecord is a run output: a unified record plus the refs it was built from.
type MergedRecord struct {
	*Record

	// MergedFrom holds one ref for passthrough records and two for merged pairs.
	MergedFrom []SourceRef `json:"-"`
}

// Provenance renders the source formats of MergedFrom, master first, e.g. "xml+json".
func (m MergedRecord) Provenance() string {
	parts := make([]string, 0, len(m.MergedFrom))
	for _, ref := range m.MergedFrom {
		parts = append(parts, string(ref.Tag.Format))
	}
	return strings.Join(parts, "+")
}

// Summary provides aggregate counts for a run.
type Summary struct {
	// MasterRecords is the number of records loaded from the master source.
	MasterRecords int `json:"master_records"`

	// SupplementRecords is the number of records loaded from the supplement source.
	SupplementRecords int `json:"supplement_records"`

	// Matched counts merged pairs.
	Matched int `json:"matched"`

	// MasterOnly counts master records without a supplement partner.
	MasterOnly int `json:"master_only"`

	// SupplementOnly counts supplement records without a master partner.
	SupplementOnly int `json:"supplement_only"`

	// MatchedBy counts merged pairs per deciding rule field.
	MatchedBy map[string]int `json:"matched_by"`
}

// Total returns the number of output records.
func (s Summary) Total() int {
	return s.Matched + s.MasterOnly + s.SupplementOnly
}

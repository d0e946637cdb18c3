package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalog-reconciler/core/ingest"
	"catalog-reconciler/core/reconcile"
	"catalog-reconciler/core/utils"
)

// ErrMapping is matched by every *MappingError through errors.Is.
var ErrMapping = errors.New("mapping error")

// MappingError reports a raw value that cannot be placed into the schema.
type MappingError struct {
	// Source names the profile the record was read with.
	Source string

	// Index is the zero-based record index, or -1 when not tied to a record.
	Index int

	// Field is the external field name.
	Field string

	// Reason describes the problem.
	Reason string
}

func (e *MappingError) Error() string {
	msg := fmt.Sprintf("source %q", e.Source)
	if e.Index >= 0 {
		msg += fmt.Sprintf(": record %d", e.Index)
	}
	return msg + fmt.Sprintf(": field %q: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrMapping) succeed.
func (e *MappingError) Is(target error) bool {
	return target == ErrMapping
}

type fieldMapping struct {
	external  string
	canonical string
	numeric   bool
}

// Mapper converts raw records of one profile into unified records.
type Mapper struct {
	source        string
	mappings      []fieldMapping
	emptyAsAbsent bool
}

// NewMapper compiles the field mappings of profile.
func NewMapper(profile Profile) (*Mapper, error) {
	externals := make([]string, 0, len(profile.Fields))
	for external := range profile.Fields {
		externals = append(externals, external)
	}
	sort.Strings(externals)

	m := &Mapper{source: profile.Name, emptyAsAbsent: profile.EmptyAsAbsent}
	for _, external := range externals {
		canonical := profile.Fields[external]
		if !Schema.Has(canonical) {
			return nil, &MappingError{
				Source: profile.Name,
				Index:  -1,
				Field:  external,
				Reason: fmt.Sprintf("target %q is not a canonical field", canonical),
			}
		}
		m.mappings = append(m.mappings, fieldMapping{
			external:  external,
			canonical: canonical,
			numeric:   IsNumeric(canonical),
		})
	}
	return m, nil
}

// Map converts raw into a unified record. index is the record's position in
// its source and is only used for error reporting.
func (m *Mapper) Map(raw ingest.RawRecord, index int) (*reconcile.Record, error) {
	rec := Schema.NewRecord()
	for _, fm := range m.mappings {
		val, ok := raw[fm.external]
		if !ok {
			continue
		}
		v, err := m.convert(val, fm.numeric)
		if err != nil {
			return nil, &MappingError{Source: m.source, Index: index, Field: fm.external, Reason: err.Error()}
		}
		rec.Set(fm.canonical, v)
	}
	return rec, nil
}

func (m *Mapper) convert(val any, numeric bool) (reconcile.Value, error) {
	switch v := val.(type) {
	case nil:
		return reconcile.Absent(), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" && m.emptyAsAbsent {
			return reconcile.Absent(), nil
		}
		if numeric {
			if n, ok := utils.ParseNumber(s); ok {
				return reconcile.Number(n), nil
			}
		}
		return reconcile.String(s), nil
	case json.Number:
		if numeric {
			if n, ok := utils.ToNumber(v); ok {
				return reconcile.Number(n), nil
			}
		}
		// Identifiers such as EAN keep their exact digits.
		return reconcile.String(v.String()), nil
	case bool:
		return reconcile.String(utils.ToString(v)), nil
	case float64, int, int64:
		if numeric {
			n, _ := utils.ToNumber(v)
			return reconcile.Number(n), nil
		}
		return reconcile.String(utils.ToString(v)), nil
	case map[string]any, []any:
		return reconcile.Value{}, fmt.Errorf("value is not a flat scalar")
	default:
		return reconcile.Value{}, fmt.Errorf("unsupported value type %T", val)
	}
}

// Map converts one raw record with profile. It never fails on missing input
// fields: canonical fields without a source value are absent.
func Map(raw ingest.RawRecord, profile Profile) (*reconcile.Record, error) {
	m, err := NewMapper(profile)
	if err != nil {
		return nil, err
	}
	return m.Map(raw, -1)
}

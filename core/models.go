package core

import (
	"bytes"
	"encoding/json"
)

// Row is a single knowledge-base record: column name to string value,
// loaded verbatim from a CSV source. Values are never type-coerced.
type Row map[string]string

// Get returns the value of a column, or the empty string when the row
// has no such column.
func (r Row) Get(col string) string {
	return r[col]
}

// Has reports whether the row carries the named column.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// Severity returns the row's parsed severity. Rows without a
// recognized Severity value rank as SeverityLow.
func (r Row) Severity() Severity {
	return ParseSeverity(r["Severity"])
}

// Field is one column of a projected result.
type Field struct {
	Key   string
	Value string
}

// Projection is a row projected down to a domain's output columns,
// in declared column order.
type Projection []Field

// Get returns the value of a projected column, or the empty string.
func (p Projection) Get(key string) string {
	for _, f := range p {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Has reports whether the projection carries the named column.
func (p Projection) Has(key string) bool {
	for _, f := range p {
		if f.Key == key {
			return true
		}
	}
	return false
}

// MarshalJSON renders the projection as a JSON object whose keys
// appear in output-column order. A plain map would marshal its keys
// alphabetically and lose the declared ordering.
func (p Projection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report is the structured outcome of a scored search call.
type Report struct {
	Domain  string       `json:"domain"`
	Locale  string       `json:"locale,omitempty"`
	Query   string       `json:"query"`
	Source  string       `json:"file"`
	Count   int          `json:"count"`
	Results []Projection `json:"results"`
}

// AnnotatedRow is a knowledge-base row tagged with the domain it was
// loaded from. Produced by the bulk accessor, not by scored search.
type AnnotatedRow struct {
	Domain string
	Row    Row
}

// MarshalJSON flattens the row columns alongside a "_domain" tag,
// matching the bulk JSON output shape.
func (a AnnotatedRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(a.Row)+1)
	for k, v := range a.Row {
		flat[k] = v
	}
	flat["_domain"] = a.Domain
	return json.Marshal(flat)
}

// ABOUTME: Schema descriptor types produced by schema inference
// ABOUTME: Fixed-shape per-column descriptors with explicit undefined fields
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColumnType classifies a column for analysis purposes.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeTemporal    ColumnType = "temporal"
	TypeCategorical ColumnType = "categorical"
)

// ColumnDescriptor summarizes a single column. Numeric summary fields are
// present iff Type is numeric, temporal bounds iff Type is temporal. A nil
// pointer means the statistic is undefined (fully missing column); it is
// never coerced to zero.
type ColumnDescriptor struct {
	Name    string     `json:"-"`
	Type    ColumnType `json:"dtype"`
	Missing int        `json:"missing"`
	Unique  int        `json:"unique"`
	Sample  []string   `json:"sample"`

	// Numeric columns only.
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Std    *float64 `json:"std,omitempty"`

	// Temporal columns only, canonical text representations.
	MinTime *string `json:"-"`
	MaxTime *string `json:"-"`
}

// MarshalJSON emits the descriptor with type-appropriate summary fields:
// numeric columns carry min/max/mean/median/std, temporal columns carry
// min/max as text. Undefined statistics serialize as null.
func (c ColumnDescriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, v interface{}) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return nil
	}

	sample := c.Sample
	if sample == nil {
		sample = []string{}
	}

	fields := []struct {
		key string
		val interface{}
	}{
		{"dtype", c.Type},
		{"missing", c.Missing},
		{"unique", c.Unique},
		{"sample", sample},
	}
	switch c.Type {
	case TypeNumeric:
		fields = append(fields,
			struct {
				key string
				val interface{}
			}{"min", c.Min},
			struct {
				key string
				val interface{}
			}{"max", c.Max},
			struct {
				key string
				val interface{}
			}{"mean", c.Mean},
			struct {
				key string
				val interface{}
			}{"median", c.Median},
			struct {
				key string
				val interface{}
			}{"std", c.Std},
		)
	case TypeTemporal:
		fields = append(fields,
			struct {
				key string
				val interface{}
			}{"min", c.MinTime},
			struct {
				key string
				val interface{}
			}{"max", c.MaxTime},
		)
	}

	for _, f := range fields {
		if err := writeField(f.key, f.val); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SchemaDescriptor maps column names to descriptors, preserving table
// column order.
type SchemaDescriptor struct {
	Columns []ColumnDescriptor
}

// Column returns the descriptor for name, or false if absent.
func (s SchemaDescriptor) Column(name string) (ColumnDescriptor, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDescriptor{}, false
}

// MarshalJSON serializes the schema as a JSON object keyed by column name,
// in table column order.
func (s SchemaDescriptor) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

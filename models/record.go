package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Record ist der rekursive Arbeitswert: Scalar, *Sequence oder *Mapping.
// Das Interface ist versiegelt, alle Verzweigungen laufen über Type-Switches.
type Record interface {
	isRecord()
}

// Scalar hält einen Blattwert. Value ist string, json.Number, float64, int, bool oder nil.
type Scalar struct {
	Value any
}

// Sequence ist eine geordnete Liste von Records.
type Sequence struct {
	Items []Record
}

// Mapping ist eine Abbildung string -> Record, die die Einfügereihenfolge behält.
type Mapping struct {
	keys   []string
	values map[string]Record
}

func (Scalar) isRecord()    {}
func (*Sequence) isRecord() {}
func (*Mapping) isRecord()  {}

// Str erzeugt ein String-Scalar.
func Str(s string) Scalar { return Scalar{Value: s} }

// Null ist das leere Scalar.
var Null = Scalar{}

// NewSequence erzeugt eine Sequence mit den gegebenen Elementen.
func NewSequence(items ...Record) *Sequence {
	return &Sequence{Items: items}
}

// NewMapping erzeugt ein leeres Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Record)}
}

// Get liefert den Wert zu key.
func (m *Mapping) Get(key string) (Record, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set setzt key; neue Keys werden hinten angehängt, bestehende behalten ihre Position.
func (m *Mapping) Set(key string, v Record) {
	if m.values == nil {
		m.values = make(map[string]Record)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys gibt die Keys in Einfügereihenfolge zurück.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Len() int { return len(m.keys) }

// Text liefert die textuelle Form eines Scalars und ob es ein echter String ist.
func (s Scalar) Text() (string, bool) {
	switch v := s.Value.(type) {
	case string:
		return v, true
	case nil:
		return "", false
	case json.Number:
		return v.String(), false
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), false
	case bool:
		return strconv.FormatBool(v), false
	default:
		return fmt.Sprint(v), false
	}
}

// MarshalJSON schreibt die Keys in Dokumentreihenfolge.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	if s.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Items)
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// FromAny wandelt generische Go-Werte (z. B. aus mxj oder encoding/json) in einen Record um.
// Da Go-Maps ungeordnet sind, werden ihre Keys sortiert übernommen.
func FromAny(v any) Record {
	switch t := v.(type) {
	case Record:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return m
	case []any:
		seq := &Sequence{Items: make([]Record, 0, len(t))}
		for _, it := range t {
			seq.Items = append(seq.Items, FromAny(it))
		}
		return seq
	default:
		return Scalar{Value: t}
	}
}

// ToAny ist die Umkehrung von FromAny; Mappings werden zu map[string]any.
func ToAny(r Record) any {
	switch t := r.(type) {
	case *Mapping:
		out := make(map[string]any, t.Len())
		for _, k := range t.keys {
			out[k] = ToAny(t.values[k])
		}
		return out
	case *Sequence:
		out := make([]any, 0, len(t.Items))
		for _, it := range t.Items {
			out = append(out, ToAny(it))
		}
		return out
	case Scalar:
		return t.Value
	default:
		return nil
	}
}

package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"legal-info/models"
)

// DecodeJSON dekodiert genau einen JSON-Wert und behält die Reihenfolge der Keys.
// Zahlen bleiben als json.Number erhalten.
func DecodeJSON(r io.Reader) (models.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	rec, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse json: unexpected data after top-level value")
	}
	return rec, nil
}

func decodeValue(dec *json.Decoder) (models.Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return models.Scalar{Value: tok}, nil
	}
	switch delim {
	case '{':
		m := models.NewMapping()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, want string", keyTok)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		seq := models.NewSequence()
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return seq, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

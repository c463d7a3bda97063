package jsonschema

import (
	gojson "github.com/goccy/go-json"
)

// Encode renders the document as compact UTF-8 JSON. Output is
// deterministic: map-valued fields are emitted with sorted keys.
func Encode(s *Schema) ([]byte, error) {
	return gojson.Marshal(s)
}

// EncodeIndent renders the document with two-space indentation.
func EncodeIndent(s *Schema) ([]byte, error) {
	return gojson.MarshalIndent(s, "", "  ")
}

// Decode parses an encoded document back into a Schema.
func Decode(data []byte) (*Schema, error) {
	var s Schema
	if err := gojson.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

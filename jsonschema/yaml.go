package jsonschema

import (
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ToYAML renders the document as YAML. The value goes through the JSON
// encoding first so the YAML shape carries the canonical field names and
// drops the same empty fields the JSON document would.
func ToYAML(s *Schema) ([]byte, error) {
	b, err := Encode(s)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := gojson.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

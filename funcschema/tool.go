// Package funcschema projects a type graph into an LLM function-calling
// declaration. It reuses the jsonschema conversion rules with the
// function-calling required-field defaults: in strict mode every parameter
// is listed in required and optionality is expressed solely via a
// ["T","null"] type union, never via omission.
package funcschema

import (
	gojson "github.com/goccy/go-json"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
	"github.com/typegraph/typegraph/jsonschema"
)

// Tool is a function-calling declaration in the shape the LLM APIs expect.
type Tool struct {
	Type        string             `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Strict      bool               `json:"strict"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// Strict is the structured-output preset: strict=true, every parameter
// required, nullability only as type unions.
func Strict() typegraph.Options { return typegraph.StrictOptions() }

// Simple is the lenient preset: strict=false, only non-nullable parameters
// required.
func Simple() typegraph.Options { return typegraph.SimpleOptions() }

// Transform converts the graph's root into a function declaration. The root
// must convert to an object (or oneOf-shaped) parameters schema; anything
// else is rejected.
func Transform(g *typegraph.TypeGraph, name, description string, opt typegraph.Options) (*Tool, error) {
	params, err := jsonschema.Body(g, opt)
	if err != nil {
		return nil, err
	}
	if ts, _ := params.Type.(string); ts != "object" {
		return nil, typegraph.Issues{typegraph.Issue{
			Path:    "/",
			Code:    typegraph.CodeInvalidRoot,
			Message: i18n.T(typegraph.CodeInvalidRoot, nil),
			Hint:    "function parameters must be an object type",
		}}
	}
	return &Tool{
		Type:        "function",
		Name:        name,
		Description: description,
		Strict:      opt.StrictSchema,
		Parameters:  params,
	}, nil
}

// Encode renders the declaration as compact UTF-8 JSON with deterministic
// key order.
func Encode(t *Tool) ([]byte, error) {
	return gojson.Marshal(t)
}

// EncodeIndent renders the declaration with two-space indentation.
func EncodeIndent(t *Tool) ([]byte, error) {
	return gojson.MarshalIndent(t, "", "  ")
}

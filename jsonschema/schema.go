package jsonschema

// Schema models the subset of JSON Schema (Draft 2020-12 family) the
// transformers emit, plus the non-standard OpenAPI-style discriminator
// extension. Maps keep output deterministic: the encoder emits keys in
// sorted order.
type Schema struct {
	// Document envelope
	SchemaURI string `json:"$schema,omitempty"`
	ID        string `json:"$id,omitempty"`

	// Reference
	Ref string `json:"$ref,omitempty"`

	// Core. Type holds either a single type name or a ["T","null"] union.
	Type        any      `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Const       any      `json:"const,omitempty"`
	Default     any      `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`

	// Named definitions and the union selector extension
	Defs          map[string]*Schema `json:"$defs,omitempty"`
	Discriminator *Discriminator     `json:"discriminator,omitempty"`
}

// Discriminator is the OpenAPI-style union selector block. It is emitted only
// in non-strict documents; strict consumers reject unknown keywords.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

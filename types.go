package typegraph

// Options configures schema generation. The three flags are independent;
// Options values are immutable — build them with the preset constructors and
// pass them by value.
type Options struct {
	// StrictSchema shapes the document for structured-output tooling: the
	// top-level $schema/$id pair is emitted, defaulted required properties
	// become const, and the non-standard discriminator block is suppressed.
	StrictSchema bool
	// RespectDefaultPresence makes default presence drive the required list:
	// required = properties without a default value.
	RespectDefaultPresence bool
	// RequireNullableFields lists every property in required and expresses
	// optionality solely via ["T","null"] type unions.
	RequireNullableFields bool
}

// DefaultOptions honors declared defaults: properties without a default are
// required, defaulted ones are optional and carry "default".
func DefaultOptions() Options { return Options{RespectDefaultPresence: true} }

// StrictOptions matches the LLM structured-output contract: every property
// required, optionality only as ["T","null"] unions, strict document shape.
func StrictOptions() Options {
	return Options{StrictSchema: true, RequireNullableFields: true}
}

// SimpleOptions requires only non-nullable properties and keeps the document
// in the plain non-strict shape.
func SimpleOptions() Options { return Options{} }

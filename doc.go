// Package typegraph converts structural descriptions of data types into a
// canonical type graph and projects that graph into concrete schema
// documents.
//
// - The root package holds the graph model (TypeGraph/TypeRef/TypeNode), the
//   Descriptor abstraction implemented by introspection front-ends, and the
//   Builder that gives front-ends cycle detection, reference caching and
//   collision-safe identifier assignment.
// - jsonschema/ projects a graph into a JSON Schema (Draft 2020-12) document.
// - funcschema/ projects a graph into an LLM function-calling declaration.
// - source/ hosts the bundled front-ends (Go reflection, YAML documents).
//
// Design policy:
// - Keep only public APIs in the root package; front-ends live under source/,
//   and the CLI under cmd/typegraph.
// - Transformers are pure: graph in, document out, identical bytes for
//   identical input. The only mutable state is scoped to exactly one call.
// - Errors use the Issues model (code, path, message). Internal
//   inconsistencies such as dangling references are fatal, never recoverable.
//
// Typical usage:
//
//	g := reflectgraph.FromType[Order]()
//	doc, err := jsonschema.Transform(g, "Order", typegraph.DefaultOptions())
//	out, err := jsonschema.EncodeIndent(doc)
//
//	tool, err := funcschema.Transform(g, "create_order", "Creates an order.", funcschema.Strict())
package typegraph

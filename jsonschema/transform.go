package jsonschema

import (
	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// DraftURI is the dialect the transformer targets.
const DraftURI = "https://json-schema.org/draft/2020-12/schema"

// Transform projects a type graph into a JSON Schema document. The function
// is pure and deterministic: identical inputs always produce byte-identical
// output once encoded. A dangling reference in the graph is a builder defect
// and aborts with Issues naming the missing TypeID.
func Transform(g *typegraph.TypeGraph, rootName string, opt typegraph.Options) (*Schema, error) {
	out, err := Body(g, opt)
	if err != nil {
		return nil, err
	}
	out.SchemaURI = DraftURI
	if opt.StrictSchema {
		out.ID = rootName
	}
	return out, nil
}

// Body converts the graph's root without the document envelope ($schema/$id).
// The function-calling transformer nests the result under "parameters".
func Body(g *typegraph.TypeGraph, opt typegraph.Options) (*Schema, error) {
	t := &transformer{
		graph:    g,
		opt:      opt,
		defs:     map[string]*Schema{},
		visiting: map[typegraph.TypeID]bool{},
		deferred: map[typegraph.TypeID]bool{},
	}
	out, err := t.rootSchema()
	if err != nil {
		return nil, err
	}
	if len(t.defs) > 0 {
		out.Defs = t.defs
	}
	return out, nil
}

// transformer holds the per-call state: the $defs accumulator plus the
// visiting/deferred bookkeeping that routes re-entered ids through $refs.
// Reusing one across calls would poison the accumulator, so every Transform
// builds a fresh instance.
type transformer struct {
	graph *typegraph.TypeGraph
	opt   typegraph.Options
	defs  map[string]*Schema
	// visiting marks ids whose conversion is in flight; a reference seen
	// while its target is visiting becomes a $ref and defers the definition.
	visiting map[typegraph.TypeID]bool
	deferred map[typegraph.TypeID]bool
}

func (t *transformer) rootSchema() (*Schema, error) {
	r := t.graph.Root
	n, ok := t.graph.Resolve(r)
	if !ok {
		if r.IsRef() {
			return nil, t.dangling(r.ID)
		}
		return &Schema{AdditionalProperties: false}, nil
	}
	switch n.(type) {
	case *typegraph.Object, *typegraph.Polymorphic:
	default:
		// Non-object, non-union roots produce an empty closed shell.
		return &Schema{AdditionalProperties: false}, nil
	}

	if r.IsRef() {
		t.visiting[r.ID] = true
	}
	body, err := t.convertNode(n)
	if r.IsRef() {
		delete(t.visiting, r.ID)
	}
	if err != nil {
		return nil, err
	}
	if r.IsRef() && t.deferred[r.ID] {
		// The root referenced itself; give the $refs a $defs target. The copy
		// is taken before the envelope and $defs are attached.
		cp := *body
		t.defs[string(r.ID)] = &cp
	}

	if _, isPoly := n.(*typegraph.Polymorphic); isPoly {
		// oneOf-shaped root: keep type/additionalProperties for tooling
		// compatibility and hoist the union block to the top level.
		return &Schema{
			Type:                 "object",
			AdditionalProperties: false,
			OneOf:                body.OneOf,
			Discriminator:        body.Discriminator,
			Description:          body.Description,
		}, nil
	}
	return body, nil
}

func (t *transformer) convertRef(ref typegraph.TypeRef) (*Schema, error) {
	if !ref.IsRef() {
		if ref.Node == nil {
			return nil, t.dangling("")
		}
		return t.convertNode(ref.Node)
	}
	id := ref.ID
	n, ok := t.graph.Nodes[id]
	if !ok {
		return nil, t.dangling(id)
	}
	if t.visiting[id] {
		t.deferred[id] = true
		return &Schema{Ref: defsRef(id)}, nil
	}
	if _, done := t.defs[string(id)]; done {
		return &Schema{Ref: defsRef(id)}, nil
	}
	t.visiting[id] = true
	s, err := t.convertNode(n)
	delete(t.visiting, id)
	if err != nil {
		return nil, err
	}
	if t.deferred[id] {
		t.defs[string(id)] = s
		return &Schema{Ref: defsRef(id)}, nil
	}
	return s, nil
}

func (t *transformer) convertNode(n typegraph.TypeNode) (*Schema, error) {
	switch n := n.(type) {
	case *typegraph.Primitive:
		return &Schema{Type: primitiveType(n.Type)}, nil
	case *typegraph.List:
		el, err := t.convertRef(n.Elem)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: el}, nil
	case *typegraph.Map:
		// Keys are always string-typed on the wire; only the value schema
		// shows up in the document. The key ref still has to resolve —
		// closure checking covers every ref, emitted or not.
		if n.Key.IsRef() {
			if _, ok := t.graph.Nodes[n.Key.ID]; !ok {
				return nil, t.dangling(n.Key.ID)
			}
		}
		v, err := t.convertRef(n.Value)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: v}, nil
	case *typegraph.Enum:
		return &Schema{
			Type:        "string",
			Enum:        append([]string(nil), n.Entries...),
			Description: n.Description,
		}, nil
	case *typegraph.Object:
		return t.convertObject(n)
	case *typegraph.Polymorphic:
		return t.convertPolymorphic(n)
	default:
		return nil, typegraph.Issues{typegraph.Issue{
			Path:    "/",
			Code:    typegraph.CodeInvalidRoot,
			Message: i18n.T(typegraph.CodeInvalidRoot, nil),
		}}
	}
}

func (t *transformer) convertObject(o *typegraph.Object) (*Schema, error) {
	required := t.requiredNames(o)
	props := make(map[string]*Schema, len(o.Properties))
	reqList := make([]string, 0, len(required))
	for _, p := range o.Properties {
		ps, err := t.convertRef(p.Type)
		if err != nil {
			return nil, err
		}
		_, isReq := required[p.Name]
		if isReq {
			reqList = append(reqList, p.Name)
		}
		if t.propertyNullable(p, isReq) {
			ps = withNull(ps)
		}
		if p.HasDefault {
			if t.opt.StrictSchema && isReq {
				// An invariant value, e.g. a discriminator tag.
				ps.Const = p.Default
			} else {
				ps.Default = p.Default
			}
		}
		if p.Description != "" {
			ps.Description = p.Description
		}
		props[p.Name] = ps
	}
	out := &Schema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: false,
		Description:          o.Description,
	}
	if len(reqList) > 0 {
		out.Required = reqList
	}
	return out, nil
}

func (t *transformer) convertPolymorphic(p *typegraph.Polymorphic) (*Schema, error) {
	oneOf := make([]*Schema, 0, len(p.Subtypes))
	for _, st := range p.Subtypes {
		key := string(st.ID)
		if _, done := t.defs[key]; !done && !t.visiting[st.ID] {
			n, ok := t.graph.Nodes[st.ID]
			if !ok {
				return nil, t.dangling(st.ID)
			}
			if _, isObj := n.(*typegraph.Object); !isObj {
				return nil, typegraph.Issues{typegraph.Issue{
					Path:    "/",
					Code:    typegraph.CodeMalformedPolymorphic,
					Message: i18n.T(typegraph.CodeMalformedPolymorphic, nil),
					Hint:    key,
				}}
			}
			t.visiting[st.ID] = true
			// Reserve the slot before converting the body so re-entrant
			// references resolve to $refs instead of expanding.
			t.defs[key] = nil
			s, err := t.convertNode(n)
			delete(t.visiting, st.ID)
			if err != nil {
				return nil, err
			}
			t.defs[key] = s
		}
		oneOf = append(oneOf, &Schema{Ref: defsRef(st.ID)})
	}
	out := &Schema{OneOf: oneOf, Description: p.Description}
	if p.Discriminator != nil && !t.opt.StrictSchema {
		d := &Discriminator{PropertyName: p.Discriminator.PropertyName}
		if len(p.Discriminator.Mapping) > 0 {
			d.Mapping = make(map[string]string, len(p.Discriminator.Mapping))
			for v, id := range p.Discriminator.Mapping {
				if _, ok := t.graph.Nodes[id]; !ok {
					return nil, t.dangling(id)
				}
				d.Mapping[v] = defsRef(id)
			}
		}
		out.Discriminator = d
	}
	return out, nil
}

// requiredNames evaluates the required-field policy once per object:
// default presence wins, then require-all, then non-nullable.
func (t *transformer) requiredNames(o *typegraph.Object) map[string]struct{} {
	req := make(map[string]struct{}, len(o.Properties))
	switch {
	case t.opt.RespectDefaultPresence:
		for _, p := range o.Properties {
			if !p.HasDefault {
				req[p.Name] = struct{}{}
			}
		}
	case t.opt.RequireNullableFields:
		for _, p := range o.Properties {
			req[p.Name] = struct{}{}
		}
	default:
		for _, p := range o.Properties {
			if !p.Type.Nullable {
				req[p.Name] = struct{}{}
			}
		}
	}
	return req
}

// propertyNullable decides whether the emitted definition carries a null
// marker. Markers are reserved for optional properties, except under
// RequireNullableFields where optionality itself is expressed as
// ["T","null"] and must survive the property being required.
func (t *transformer) propertyNullable(p typegraph.Property, isReq bool) bool {
	if !p.Type.Nullable {
		return false
	}
	if t.opt.RequireNullableFields {
		return true
	}
	if isReq {
		return false
	}
	if t.opt.RespectDefaultPresence && p.HasDefault {
		// The default carries the optionality; the plain type plus "default"
		// is the whole story.
		return false
	}
	return true
}

// withNull adds a null branch. Plain typed schemas grow a ["T","null"]
// union. $ref and oneOf shapes are wrapped in anyOf instead: oneOf cannot
// carry an extra null alternative without ambiguity against its own
// branches.
func withNull(s *Schema) *Schema {
	if ts, ok := s.Type.(string); ok && ts != "" && s.Ref == "" && len(s.OneOf) == 0 {
		s.Type = []string{ts, "null"}
		return s
	}
	return &Schema{AnyOf: []*Schema{s, {Type: "null"}}}
}

func primitiveType(k typegraph.PrimitiveKind) string {
	switch k {
	case typegraph.PrimitiveBoolean:
		return "boolean"
	case typegraph.PrimitiveInt, typegraph.PrimitiveLong:
		return "integer"
	case typegraph.PrimitiveFloat, typegraph.PrimitiveDouble:
		return "number"
	default:
		return "string"
	}
}

func defsRef(id typegraph.TypeID) string { return "#/$defs/" + string(id) }

func (t *transformer) dangling(id typegraph.TypeID) error {
	return typegraph.Issues{typegraph.Issue{
		Path:    "/",
		Code:    typegraph.CodeDanglingRef,
		Message: i18n.T(typegraph.CodeDanglingRef, nil),
		Hint:    string(id),
	}}
}

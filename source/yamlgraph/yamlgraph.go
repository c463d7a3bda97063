// Package yamlgraph is the document introspection front-end: it decodes a
// YAML description of named types and feeds the typegraph Builder. It exists
// alongside reflectgraph to keep the Descriptor contract honest — two
// front-ends, one transformer.
//
// Document shape:
//
//	root: Shape
//	types:
//	  Shape:
//	    kind: polymorphic
//	    discriminator: {property: type, required: true, mapping: {circle: Circle}}
//	    subtypes: [Circle, Square]
//	  Circle:
//	    kind: object
//	    properties:
//	      - {name: type, type: string, default: circle}
//	      - {name: radius, type: double}
//	  Status:
//	    kind: enum
//	    values: [A, B]
//
// Property type expressions: string, boolean, int, long, float, double,
// []T for lists, map[T] for string-keyed maps, any other word is a named
// type reference. A trailing "?" marks the reference nullable.
package yamlgraph

import (
	"strings"

	"gopkg.in/yaml.v3"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/i18n"
)

// Document is a parsed type-definition document, ready to be sealed into a
// graph.
type Document struct {
	root  string
	types map[string]typeDef
}

type typeDef struct {
	Kind          string        `yaml:"kind"`
	Description   string        `yaml:"description"`
	Properties    []propertyDef `yaml:"properties"`
	Values        []string      `yaml:"values"`
	Subtypes      []string      `yaml:"subtypes"`
	Discriminator *discDef      `yaml:"discriminator"`
}

type propertyDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	// Pointer so an absent default and a literal null default stay distinct.
	Default *any `yaml:"default"`
}

type discDef struct {
	Property string            `yaml:"property"`
	Required bool              `yaml:"required"`
	Mapping  map[string]string `yaml:"mapping"`
}

type rawDocument struct {
	Root  string             `yaml:"root"`
	Types map[string]typeDef `yaml:"types"`
}

// Load parses a YAML type-definition document and verifies that every named
// reference resolves. Unresolved names are reported here as user errors;
// once the document loads, graph construction cannot dangle.
func Load(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, typegraph.Issues{typegraph.Issue{
			Path:    "/",
			Code:    typegraph.CodeParseError,
			Message: i18n.T(typegraph.CodeParseError, nil),
			Cause:   err,
		}}
	}
	d := &Document{root: raw.Root, types: raw.Types}
	if err := d.check(); err != nil {
		return nil, err
	}
	return d, nil
}

// RootName returns the document's declared root type name.
func (d *Document) RootName() string { return d.root }

// Graph seals the document into a type graph.
func (d *Document) Graph() *typegraph.TypeGraph {
	b := typegraph.NewBuilder()
	return b.Graph(defDescriptor{doc: d, name: d.root, def: d.types[d.root]})
}

func (d *Document) check() error {
	var iss typegraph.Issues
	missing := func(path, name string) {
		iss = typegraph.AppendIssues(iss, typegraph.Issue{
			Path:    path,
			Code:    typegraph.CodeParseError,
			Message: i18n.T(typegraph.CodeParseError, nil),
			Hint:    "unknown type: " + name,
		})
	}
	if _, ok := d.types[d.root]; !ok {
		missing("/root", d.root)
	}
	for name, def := range d.types {
		for _, p := range def.Properties {
			expr := parseTypeExpr(p.Type)
			if expr.named != "" {
				if _, ok := d.types[expr.named]; !ok {
					missing("/types/"+name+"/"+p.Name, expr.named)
				}
			}
		}
		for _, sub := range def.Subtypes {
			if _, ok := d.types[sub]; !ok {
				missing("/types/"+name+"/subtypes", sub)
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// typeExpr is one parsed property type expression.
type typeExpr struct {
	prim     typegraph.DescriptorKind
	list     *typeExpr
	mapValue *typeExpr
	named    string
	nullable bool
}

func parseTypeExpr(s string) typeExpr {
	s = strings.TrimSpace(s)
	var out typeExpr
	if strings.HasSuffix(s, "?") {
		out.nullable = true
		s = strings.TrimSuffix(s, "?")
	}
	switch {
	case strings.HasPrefix(s, "[]"):
		inner := parseTypeExpr(s[2:])
		out.list = &inner
	case strings.HasPrefix(s, "map[") && strings.HasSuffix(s, "]"):
		inner := parseTypeExpr(s[4 : len(s)-1])
		out.mapValue = &inner
	case s == "string":
		out.prim = typegraph.DescString
	case s == "boolean" || s == "bool":
		out.prim = typegraph.DescBoolean
	case s == "int":
		out.prim = typegraph.DescInt
	case s == "long":
		out.prim = typegraph.DescLong
	case s == "float":
		out.prim = typegraph.DescFloat
	case s == "double":
		out.prim = typegraph.DescDouble
	default:
		out.named = s
	}
	return out
}

// defDescriptor adapts one named definition to the Descriptor contract.
type defDescriptor struct {
	doc  *Document
	name string
	def  typeDef
}

func (d defDescriptor) Name() string { return d.name }

func (d defDescriptor) Kind() typegraph.DescriptorKind {
	switch d.def.Kind {
	case "object":
		return typegraph.DescObject
	case "enum":
		return typegraph.DescEnum
	case "polymorphic":
		return typegraph.DescPolymorphic
	default:
		return typegraph.DescUnknown
	}
}

func (d defDescriptor) Description() string { return d.def.Description }

func (d defDescriptor) Elements() []typegraph.Element {
	out := make([]typegraph.Element, 0, len(d.def.Properties))
	for _, p := range d.def.Properties {
		expr := parseTypeExpr(p.Type)
		el := typegraph.Element{
			Name:        p.Name,
			Descriptor:  d.doc.descriptorFor(expr),
			Nullable:    expr.nullable,
			Description: p.Description,
		}
		if p.Default != nil {
			el.HasDefault = true
			el.Default = *p.Default
		}
		out = append(out, el)
	}
	return out
}

func (d defDescriptor) EnumValues() []string { return d.def.Values }

func (d defDescriptor) Subtypes() []typegraph.Descriptor {
	out := make([]typegraph.Descriptor, 0, len(d.def.Subtypes))
	for _, name := range d.def.Subtypes {
		out = append(out, defDescriptor{doc: d.doc, name: name, def: d.doc.types[name]})
	}
	return out
}

func (d defDescriptor) DiscriminatorField() *typegraph.Discriminator {
	dd := d.def.Discriminator
	if dd == nil {
		return nil
	}
	out := &typegraph.Discriminator{PropertyName: dd.Property, Required: dd.Required}
	if len(dd.Mapping) > 0 {
		out.Mapping = make(map[string]typegraph.TypeID, len(dd.Mapping))
		for v, name := range dd.Mapping {
			out.Mapping[v] = typegraph.TypeID(name)
		}
	}
	return out
}

// descriptorFor turns a parsed type expression into a Descriptor. Primitive
// and collection expressions become synthetic descriptors; named expressions
// resolve into the document.
func (d *Document) descriptorFor(expr typeExpr) typegraph.Descriptor {
	switch {
	case expr.list != nil:
		return exprDescriptor{doc: d, kind: typegraph.DescList, inner: expr.list}
	case expr.mapValue != nil:
		return exprDescriptor{doc: d, kind: typegraph.DescMap, inner: expr.mapValue}
	case expr.named != "":
		return defDescriptor{doc: d, name: expr.named, def: d.types[expr.named]}
	default:
		return exprDescriptor{doc: d, kind: expr.prim}
	}
}

// exprDescriptor covers the inline shapes (primitives, lists, maps) that
// never get a table entry of their own.
type exprDescriptor struct {
	doc   *Document
	kind  typegraph.DescriptorKind
	inner *typeExpr
}

func (e exprDescriptor) Name() string                   { return "" }
func (e exprDescriptor) Kind() typegraph.DescriptorKind { return e.kind }
func (e exprDescriptor) Description() string            { return "" }

func (e exprDescriptor) Elements() []typegraph.Element {
	switch e.kind {
	case typegraph.DescList:
		return []typegraph.Element{{
			Descriptor: e.doc.descriptorFor(*e.inner),
			Nullable:   e.inner.nullable,
		}}
	case typegraph.DescMap:
		return []typegraph.Element{
			{Descriptor: exprDescriptor{doc: e.doc, kind: typegraph.DescString}},
			{Descriptor: e.doc.descriptorFor(*e.inner), Nullable: e.inner.nullable},
		}
	default:
		return nil
	}
}

func (e exprDescriptor) EnumValues() []string                         { return nil }
func (e exprDescriptor) Subtypes() []typegraph.Descriptor             { return nil }
func (e exprDescriptor) DiscriminatorField() *typegraph.Discriminator { return nil }

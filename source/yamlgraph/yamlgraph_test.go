package yamlgraph_test

import (
	"reflect"
	"testing"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/jsonschema"
	"github.com/typegraph/typegraph/source/yamlgraph"
)

const shapeDoc = `
root: Shape
types:
  Shape:
    kind: polymorphic
    description: A drawable shape.
    discriminator:
      property: type
      required: true
      mapping:
        circle: Circle
        square: Square
    subtypes: [Circle, Square]
  Circle:
    kind: object
    properties:
      - {name: type, type: string, default: circle}
      - {name: radius, type: double}
  Square:
    kind: object
    properties:
      - {name: type, type: string, default: square}
      - {name: side, type: double}
`

func TestLoad_PolymorphicDocument(t *testing.T) {
	doc, err := yamlgraph.Load([]byte(shapeDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.RootName() != "Shape" {
		t.Fatalf("root name: got %q", doc.RootName())
	}

	g := doc.Graph()
	poly, ok := g.Nodes["Shape"].(*typegraph.Polymorphic)
	if !ok {
		t.Fatalf("expected a polymorphic node for Shape, got %T", g.Nodes["Shape"])
	}
	if len(poly.Subtypes) != 2 || poly.Subtypes[0].ID != "Shape.Circle" || poly.Subtypes[1].ID != "Shape.Square" {
		t.Fatalf("subtype ids should be owner-qualified, got %+v", poly.Subtypes)
	}
	if poly.Discriminator == nil || poly.Discriminator.PropertyName != "type" {
		t.Fatalf("discriminator not carried over: %+v", poly.Discriminator)
	}
	if poly.Discriminator.Mapping["circle"] != "Shape.Circle" {
		t.Fatalf("mapping values should be qualified, got %v", poly.Discriminator.Mapping)
	}

	circle, ok := g.Nodes["Shape.Circle"].(*typegraph.Object)
	if !ok {
		t.Fatalf("expected an object node for Shape.Circle, got %T", g.Nodes["Shape.Circle"])
	}
	tag := circle.Properties[0]
	if !tag.HasDefault || tag.Default != "circle" {
		t.Fatalf("default literal not carried over: %+v", tag)
	}
}

func TestLoad_EndToEnd(t *testing.T) {
	doc, err := yamlgraph.Load([]byte(shapeDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	schema, err := jsonschema.Transform(doc.Graph(), doc.RootName(), typegraph.DefaultOptions())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(schema.Defs) != 2 {
		t.Fatalf("expected both subtypes in $defs, got %d", len(schema.Defs))
	}
	if schema.Discriminator == nil || schema.Discriminator.Mapping["square"] != "#/$defs/Shape.Square" {
		t.Fatalf("discriminator mapping should point into $defs, got %+v", schema.Discriminator)
	}
}

func TestLoad_TypeExpressions(t *testing.T) {
	doc, err := yamlgraph.Load([]byte(`
root: Inventory
types:
  Inventory:
    kind: object
    properties:
      - {name: tags, type: "[]string"}
      - {name: counts, type: "map[int]"}
      - {name: owner, type: "Person?"}
  Person:
    kind: object
    properties:
      - {name: name, type: string}
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	g := doc.Graph()
	obj := g.Nodes["Inventory"].(*typegraph.Object)

	if _, ok := obj.Properties[0].Type.Node.(*typegraph.List); !ok {
		t.Fatalf("tags should be an inline list, got %+v", obj.Properties[0].Type)
	}
	m, ok := obj.Properties[1].Type.Node.(*typegraph.Map)
	if !ok {
		t.Fatalf("counts should be an inline map, got %+v", obj.Properties[1].Type)
	}
	if prim, ok := m.Value.Node.(*typegraph.Primitive); !ok || prim.Type != typegraph.PrimitiveInt {
		t.Fatalf("map value should be int, got %+v", m.Value)
	}
	owner := obj.Properties[2].Type
	if owner.ID != "Person" || !owner.Nullable {
		t.Fatalf("owner should be Ref(Person, nullable), got %+v", owner)
	}
	if !reflect.DeepEqual(g.Root, typegraph.RefTo("Inventory", false)) {
		t.Fatalf("root should reference Inventory, got %+v", g.Root)
	}
}

func TestLoad_UnknownTypeReference(t *testing.T) {
	_, err := yamlgraph.Load([]byte(`
root: Thing
types:
  Thing:
    kind: object
    properties:
      - {name: other, type: Missing}
`))
	iss, ok := typegraph.AsIssues(err)
	if !ok || iss[0].Code != typegraph.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	if iss[0].Hint != "unknown type: Missing" {
		t.Fatalf("hint should name the missing type, got %q", iss[0].Hint)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := yamlgraph.Load([]byte("types: ["))
	iss, ok := typegraph.AsIssues(err)
	if !ok || iss[0].Code != typegraph.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	if iss[0].Cause == nil {
		t.Fatalf("parse errors should keep the decoder error as cause")
	}
}

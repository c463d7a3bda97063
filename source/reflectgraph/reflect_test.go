package reflectgraph_test

import (
	"reflect"
	"testing"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/jsonschema"
	"github.com/typegraph/typegraph/source/reflectgraph"
)

type Country string

func (Country) EnumValues() []string { return []string{"US", "JP", "DE"} }

type Address struct {
	Street  string  `json:"street" description:"street line"`
	City    string  `json:"city"`
	Country Country `json:"country" default:"US"`
	Zip     *string `json:"zip"`
	hidden  string
	Ignored string  `json:"-"`
}

func TestFromType_StructFields(t *testing.T) {
	g := reflectgraph.FromType[Address]()

	obj, ok := g.Nodes["Address"].(*typegraph.Object)
	if !ok {
		t.Fatalf("expected an object node for Address, got %T", g.Nodes["Address"])
	}
	names := make([]string, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		names = append(names, p.Name)
	}
	want := []string{"street", "city", "country", "zip"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("property names: got %v want %v", names, want)
	}

	if obj.Properties[0].Description != "street line" {
		t.Fatalf("description tag not picked up: %+v", obj.Properties[0])
	}
	country := obj.Properties[2]
	if !country.HasDefault || country.Default != "US" {
		t.Fatalf("country should default to US, got %+v", country)
	}
	if country.Type.ID != "Country" {
		t.Fatalf("enum field should reference a named node, got %+v", country.Type)
	}
	if zip := obj.Properties[3]; !zip.Type.Nullable {
		t.Fatalf("pointer field should be nullable, got %+v", zip.Type)
	}

	enum, ok := g.Nodes["Country"].(*typegraph.Enum)
	if !ok {
		t.Fatalf("expected an enum node for Country, got %T", g.Nodes["Country"])
	}
	if !reflect.DeepEqual(enum.Entries, []string{"US", "JP", "DE"}) {
		t.Fatalf("enum entries: got %v", enum.Entries)
	}
}

type TreeNode struct {
	Value    string      `json:"value"`
	Children []*TreeNode `json:"children"`
}

func TestFromType_RecursiveStruct(t *testing.T) {
	g := reflectgraph.FromType[TreeNode]()

	if len(g.Nodes) != 1 {
		t.Fatalf("recursion must not duplicate nodes, got %d", len(g.Nodes))
	}
	obj := g.Nodes["TreeNode"].(*typegraph.Object)
	children := obj.Properties[1]
	list, ok := children.Type.Node.(*typegraph.List)
	if !ok {
		t.Fatalf("children should be an inline list, got %+v", children.Type)
	}
	if list.Elem.ID != "TreeNode" || !list.Elem.Nullable {
		t.Fatalf("list element should be Ref(TreeNode, nullable), got %+v", list.Elem)
	}
}

type Odd struct {
	Name string       `json:"name"`
	Ch   chan int     `json:"ch"`
	Fn   func() error `json:"fn"`
}

func TestFrom_UnsupportedFieldsDegrade(t *testing.T) {
	g, warns := reflectgraph.From(reflect.TypeOf(Odd{}))

	if len(warns) != 2 {
		t.Fatalf("expected one warning per degraded field, got %v", warns)
	}
	for _, w := range warns {
		if w.Code != typegraph.CodeUnsupportedDescriptor {
			t.Fatalf("unexpected warning code %q", w.Code)
		}
	}
	obj := g.Nodes["Odd"].(*typegraph.Object)
	if len(obj.Properties) != 3 {
		t.Fatalf("degraded fields should survive as properties, got %d", len(obj.Properties))
	}
}

func TestFromValue_EndToEnd(t *testing.T) {
	g := reflectgraph.FromValue(Address{})

	doc, err := jsonschema.Transform(g, "Address", typegraph.DefaultOptions())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if doc.SchemaURI != jsonschema.DraftURI {
		t.Fatalf("missing draft envelope: %+v", doc)
	}
	// Under default presence every no-default field is required, and required
	// fields never carry the null marker.
	if !reflect.DeepEqual(doc.Required, []string{"street", "city", "zip"}) {
		t.Fatalf("unexpected required list: %v", doc.Required)
	}
	zip, ok := doc.Properties["zip"]
	if !ok {
		t.Fatalf("zip missing from properties")
	}
	if zip.Type != "string" {
		t.Fatalf("required pointer field should collapse to a plain type, got %v", zip.Type)
	}

	lenient, err := jsonschema.Transform(g, "Address", typegraph.SimpleOptions())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !reflect.DeepEqual(lenient.Properties["zip"].Type, []string{"string", "null"}) {
		t.Fatalf("optional pointer field should be a null union, got %v", lenient.Properties["zip"].Type)
	}
}

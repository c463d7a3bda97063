package funcschema_test

import (
	"reflect"
	"testing"

	gojson "github.com/goccy/go-json"

	typegraph "github.com/typegraph/typegraph"
	"github.com/typegraph/typegraph/funcschema"
)

func normalize(t *testing.T, v any) any {
	t.Helper()
	b, err := gojson.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := gojson.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func weatherGraph() *typegraph.TypeGraph {
	str := func(nullable bool) typegraph.TypeRef {
		return typegraph.InlineRef(&typegraph.Primitive{Type: typegraph.PrimitiveString}, nullable)
	}
	return &typegraph.TypeGraph{
		Root: typegraph.RefTo("GetWeather", false),
		Nodes: map[typegraph.TypeID]typegraph.TypeNode{
			"GetWeather": &typegraph.Object{
				Name: "GetWeather",
				Properties: []typegraph.Property{
					{Name: "city", Type: str(false)},
					{Name: "unit", Type: str(true)},
				},
				Required: map[string]struct{}{"city": {}},
			},
		},
	}
}

func TestTransform_StrictTool(t *testing.T) {
	tool, err := funcschema.Transform(weatherGraph(), "get_weather", "Look up the weather.", funcschema.Strict())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	got := normalize(t, tool)
	want := normalize(t, map[string]any{
		"type":        "function",
		"name":        "get_weather",
		"description": "Look up the weather.",
		"strict":      true,
		"parameters": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city": map[string]any{"type": "string"},
				"unit": map[string]any{"type": []any{"string", "null"}},
			},
			"required":             []any{"city", "unit"},
			"additionalProperties": false,
		},
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tool mismatch\n got=%v\nwant=%v", got, want)
	}
}

func TestTransform_SimpleTool(t *testing.T) {
	tool, err := funcschema.Transform(weatherGraph(), "get_weather", "", funcschema.Simple())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if tool.Strict {
		t.Fatalf("simple preset must not mark the tool strict")
	}

	got := normalize(t, tool.Parameters).(map[string]any)
	if !reflect.DeepEqual(got["required"], []any{"city"}) {
		t.Fatalf("only non-nullable parameters should be required, got %v", got["required"])
	}
	unit := got["properties"].(map[string]any)["unit"]
	if !reflect.DeepEqual(unit, map[string]any{"type": []any{"string", "null"}}) {
		t.Fatalf("optional nullable parameter should stay a union, got %v", unit)
	}
	b, err := funcschema.Encode(tool)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var back map[string]any
	if err := gojson.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := back["description"]; ok {
		t.Fatalf("empty description must be omitted from the wire form")
	}
}

func TestTransform_RejectsNonObjectRoot(t *testing.T) {
	g := &typegraph.TypeGraph{
		Root:  typegraph.InlineRef(&typegraph.Primitive{Type: typegraph.PrimitiveString}, false),
		Nodes: map[typegraph.TypeID]typegraph.TypeNode{},
	}

	_, err := funcschema.Transform(g, "bad", "", funcschema.Simple())
	iss, ok := typegraph.AsIssues(err)
	if !ok || iss[0].Code != typegraph.CodeInvalidRoot {
		t.Fatalf("expected invalid_root, got %v", err)
	}
}

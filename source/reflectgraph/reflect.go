// Package reflectgraph is the runtime-reflection introspection front-end: it
// walks Go types with the reflect package and feeds the typegraph Builder.
// The transformers never see any of this — they consume the resulting graph
// only.
package reflectgraph

import (
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"

	typegraph "github.com/typegraph/typegraph"
)

// Enumerable lets a named type declare its closed value set in declaration
// order. Go reflection cannot enumerate constants, so enum emission is
// opt-in via this interface.
type Enumerable interface {
	EnumValues() []string
}

var enumerableType = reflect.TypeOf((*Enumerable)(nil)).Elem()

// FromType builds a type graph for T.
func FromType[T any]() *typegraph.TypeGraph {
	g, _ := From(reflect.TypeOf((*T)(nil)).Elem())
	return g
}

// FromValue builds a type graph for the dynamic type of v.
func FromValue(v any) *typegraph.TypeGraph {
	g, _ := From(reflect.TypeOf(v))
	return g
}

// From builds a type graph for rt and returns the build warnings: one entry
// per member that degraded to an empty object node (channels, funcs, plain
// interfaces and other shapes with no schema equivalent).
func From(rt reflect.Type) (*typegraph.TypeGraph, typegraph.Issues) {
	b := typegraph.NewBuilder()
	g := b.Graph(descriptorFor(rt))
	return g, b.Warnings()
}

// typeDescriptor adapts one reflect.Type to the Descriptor contract.
type typeDescriptor struct {
	rt reflect.Type
}

func descriptorFor(rt reflect.Type) typegraph.Descriptor {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return typeDescriptor{rt: rt}
}

func (d typeDescriptor) Name() string {
	if n := d.rt.Name(); n != "" {
		return n
	}
	return d.rt.String()
}

func (d typeDescriptor) Kind() typegraph.DescriptorKind {
	if isEnumerable(d.rt) {
		return typegraph.DescEnum
	}
	switch d.rt.Kind() {
	case reflect.String:
		return typegraph.DescString
	case reflect.Bool:
		return typegraph.DescBoolean
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return typegraph.DescInt
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return typegraph.DescLong
	case reflect.Float32:
		return typegraph.DescFloat
	case reflect.Float64:
		return typegraph.DescDouble
	case reflect.Slice, reflect.Array:
		return typegraph.DescList
	case reflect.Map:
		return typegraph.DescMap
	case reflect.Struct:
		return typegraph.DescObject
	default:
		return typegraph.DescUnknown
	}
}

func (d typeDescriptor) Description() string { return "" }

func (d typeDescriptor) Elements() []typegraph.Element {
	switch d.rt.Kind() {
	case reflect.Slice, reflect.Array:
		elem := d.rt.Elem()
		return []typegraph.Element{{
			Descriptor: descriptorFor(elem),
			Nullable:   elem.Kind() == reflect.Pointer,
		}}
	case reflect.Map:
		val := d.rt.Elem()
		return []typegraph.Element{
			{Descriptor: descriptorFor(d.rt.Key())},
			{Descriptor: descriptorFor(val), Nullable: val.Kind() == reflect.Pointer},
		}
	case reflect.Struct:
		return d.structElements()
	default:
		return nil
	}
}

func (d typeDescriptor) structElements() []typegraph.Element {
	fields := reflect.VisibleFields(d.rt)
	out := make([]typegraph.Element, 0, len(fields))
	for _, f := range fields {
		if f.PkgPath != "" || f.Anonymous {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			base, _, _ := strings.Cut(tag, ",")
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}
		el := typegraph.Element{
			Name:        name,
			Descriptor:  descriptorFor(f.Type),
			Nullable:    f.Type.Kind() == reflect.Pointer,
			Description: f.Tag.Get("description"),
		}
		if raw, ok := f.Tag.Lookup("default"); ok {
			el.HasDefault = true
			el.Default = parseDefault(raw)
		}
		out = append(out, el)
	}
	return out
}

func (d typeDescriptor) EnumValues() []string {
	if v, ok := reflect.New(d.rt).Interface().(Enumerable); ok {
		return v.EnumValues()
	}
	if v, ok := reflect.Zero(d.rt).Interface().(Enumerable); ok {
		return v.EnumValues()
	}
	return nil
}

func (d typeDescriptor) Subtypes() []typegraph.Descriptor { return nil }

func (d typeDescriptor) DiscriminatorField() *typegraph.Discriminator { return nil }

func isEnumerable(rt reflect.Type) bool {
	return rt.Implements(enumerableType) || reflect.PointerTo(rt).Implements(enumerableType)
}

// parseDefault decodes a `default:"..."` tag literal. JSON literals (true,
// 42, "US", [..]) are taken as-is; anything that does not parse is kept as a
// plain string, so default:"US" and default:"\"US\"" mean the same thing.
func parseDefault(raw string) any {
	var v any
	if err := gojson.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

package typegraph

// DescriptorKind classifies what a Descriptor describes.
type DescriptorKind int

const (
	DescString DescriptorKind = iota
	DescBoolean
	DescInt
	DescLong
	DescFloat
	DescDouble
	DescList
	DescMap
	DescObject
	DescEnum
	DescPolymorphic
	DescUnknown
)

// Descriptor is the source-agnostic view of one introspected type.
// Introspection front-ends (runtime reflection, serialized metadata,
// hand-written documents) implement it while walking their own source
// material; the transformers never see one — they consume only the TypeGraph
// the Builder produces from it.
type Descriptor interface {
	// Name returns the type name. It becomes the TypeID for object, enum and
	// polymorphic descriptors and is ignored for inline shapes.
	Name() string
	Kind() DescriptorKind
	// Description returns the documentation string extracted from the
	// source's annotations/metadata, or "".
	Description() string
	// Elements returns the ordered member list: the properties of an object,
	// the single item of a list, or the key and value of a map (in that
	// order). Nullability and default presence ride on the element, not on
	// the nested descriptor.
	Elements() []Element
	// EnumValues returns entries in declaration order for DescEnum.
	EnumValues() []string
	// Subtypes returns the concrete variant descriptors for DescPolymorphic.
	Subtypes() []Descriptor
	// DiscriminatorField returns discriminator metadata for DescPolymorphic,
	// or nil when the union has none. Mapping values use simple subtype
	// names; the Builder qualifies them.
	DiscriminatorField() *Discriminator
}

// Element is one member of a composite descriptor.
type Element struct {
	Name        string
	Descriptor  Descriptor
	Nullable    bool
	Description string
	HasDefault  bool
	Default     any
}

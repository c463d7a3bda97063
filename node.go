package typegraph

// TypeID uniquely names a type within one graph. Subtype identifiers are
// qualified as "<ownerBaseName>.<simpleName>"; see QualifiedID.
type TypeID string

// NodeKind identifies a TypeNode variant.
type NodeKind int

const (
	KindPrimitive NodeKind = iota
	KindList
	KindMap
	KindObject
	KindEnum
	KindPolymorphic
)

// PrimitiveKind enumerates the scalar types the graph distinguishes.
type PrimitiveKind int

const (
	PrimitiveString PrimitiveKind = iota
	PrimitiveBoolean
	PrimitiveInt
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
)

// TypeNode is the root interface of the graph's tagged node union.
type TypeNode interface {
	Kind() NodeKind
}

// TypeRef points at a node, either inline (Node set) or through the graph's
// node table (ID set). Nullability is a property of the reference, never of
// the underlying node: the same node may be referenced both ways.
type TypeRef struct {
	ID       TypeID
	Node     TypeNode
	Nullable bool
}

// InlineRef embeds a node directly. Only Primitive, List and Map nodes may be
// inlined; named nodes go through the table so recursion and sharing work.
func InlineRef(n TypeNode, nullable bool) TypeRef {
	return TypeRef{Node: n, Nullable: nullable}
}

// RefTo points into the graph's node table.
func RefTo(id TypeID, nullable bool) TypeRef {
	return TypeRef{ID: id, Nullable: nullable}
}

// IsRef reports whether the reference is table-backed rather than inline.
func (r TypeRef) IsRef() bool { return r.ID != "" }

// Primitive represents a scalar type.
type Primitive struct {
	Type PrimitiveKind
}

func (p *Primitive) Kind() NodeKind { return KindPrimitive }

// List represents a homogeneous sequence.
type List struct {
	Elem TypeRef
}

func (l *List) Kind() NodeKind { return KindList }

// Map represents a string-keyed map. Key is carried for completeness but keys
// are always assumed string-typed on the wire.
type Map struct {
	Key   TypeRef
	Value TypeRef
}

func (m *Map) Kind() NodeKind { return KindMap }

// Property is one member of an Object node.
type Property struct {
	Name        string
	Type        TypeRef
	Description string
	// HasDefault distinguishes "no default" from a literal nil default.
	HasDefault bool
	Default    any
}

// Object represents a record type with ordered properties.
type Object struct {
	Name        string
	Properties  []Property
	Required    map[string]struct{}
	Description string
}

func (o *Object) Kind() NodeKind { return KindObject }

// Enum represents a closed set of string values in declaration order.
type Enum struct {
	Name        string
	Entries     []string
	Description string
}

func (e *Enum) Kind() NodeKind { return KindEnum }

// SubtypeRef names one concrete variant of a Polymorphic node.
type SubtypeRef struct {
	ID  TypeID
	Ref TypeRef
}

// Discriminator describes the property whose value selects a variant.
type Discriminator struct {
	PropertyName string
	Required     bool
	// Mapping maps discriminator values to qualified subtype ids.
	Mapping map[string]TypeID
}

// Polymorphic represents a discriminated union with an explicit subtype list.
type Polymorphic struct {
	BaseName      string
	Subtypes      []SubtypeRef
	Discriminator *Discriminator
	Description   string
}

func (p *Polymorphic) Kind() NodeKind { return KindPolymorphic }

// TypeGraph is the canonical intermediate representation: a root reference
// plus the id-keyed node table. A graph is built once, treated as immutable,
// consumed by exactly one transformer invocation, then discarded.
type TypeGraph struct {
	Root  TypeRef
	Nodes map[TypeID]TypeNode
}

// Resolve returns the node a reference points at. For inline references the
// embedded node is returned directly; for table references ok is false when
// the id is absent (a dangling ref, which callers treat as fatal).
func (g *TypeGraph) Resolve(r TypeRef) (TypeNode, bool) {
	if !r.IsRef() {
		return r.Node, r.Node != nil
	}
	n, ok := g.Nodes[r.ID]
	return n, ok
}

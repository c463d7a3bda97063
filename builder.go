package typegraph

import (
	"strconv"
	"strings"

	"github.com/typegraph/typegraph/i18n"
)

// Builder accumulates nodes for one TypeGraph build. It gives introspection
// front-ends cycle detection, reference caching and collision-safe identifier
// assignment without knowing anything about the source metadata. A Builder is
// single-use: reusing one across unrelated builds poisons the reference
// cache.
type Builder struct {
	nodes    map[TypeID]TypeNode
	visiting map[TypeID]struct{}
	// seen caches the shallow shape of the descriptor that first claimed
	// each id, so a differently-shaped descriptor reusing the id is caught.
	seen     map[TypeID]string
	anon     int
	warnings Issues
}

// NewBuilder returns an empty builder scoped to one graph build.
func NewBuilder() *Builder {
	return &Builder{
		nodes:    map[TypeID]TypeNode{},
		visiting: map[TypeID]struct{}{},
		seen:     map[TypeID]string{},
	}
}

// QualifiedID builds a collision-safe subtype identifier. Nested variants of
// unrelated hierarchies may reuse a simple name; qualifying by the owner's
// base name keeps their table entries distinct.
func QualifiedID(ownerBase, simple string) TypeID {
	return TypeID(ownerBase + "." + simple)
}

// simpleName returns the last dot-separated segment of a qualified name.
func simpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Ref converts a descriptor into a TypeRef, registering named nodes in the
// node table. The call is idempotent per descriptor within one build:
// repeated calls return a reference to the same TypeID. Nullability is taken
// from the call site and never cached with the node.
func (b *Builder) Ref(d Descriptor, nullable bool) TypeRef {
	switch d.Kind() {
	case DescString:
		return InlineRef(&Primitive{Type: PrimitiveString}, nullable)
	case DescBoolean:
		return InlineRef(&Primitive{Type: PrimitiveBoolean}, nullable)
	case DescInt:
		return InlineRef(&Primitive{Type: PrimitiveInt}, nullable)
	case DescLong:
		return InlineRef(&Primitive{Type: PrimitiveLong}, nullable)
	case DescFloat:
		return InlineRef(&Primitive{Type: PrimitiveFloat}, nullable)
	case DescDouble:
		return InlineRef(&Primitive{Type: PrimitiveDouble}, nullable)
	case DescList:
		els := d.Elements()
		if len(els) != 1 {
			return b.degrade(d, nullable)
		}
		return InlineRef(&List{Elem: b.Ref(els[0].Descriptor, els[0].Nullable)}, nullable)
	case DescMap:
		els := d.Elements()
		if len(els) != 2 {
			return b.degrade(d, nullable)
		}
		return InlineRef(&Map{
			Key:   b.Ref(els[0].Descriptor, els[0].Nullable),
			Value: b.Ref(els[1].Descriptor, els[1].Nullable),
		}, nullable)
	case DescObject:
		id := TypeID(d.Name())
		b.checkDuplicate(id, d)
		return b.Named(id, nullable, func() TypeNode { return b.buildObject(d) })
	case DescEnum:
		id := TypeID(d.Name())
		b.checkDuplicate(id, d)
		return b.Named(id, nullable, func() TypeNode {
			return &Enum{
				Name:        d.Name(),
				Entries:     append([]string(nil), d.EnumValues()...),
				Description: d.Description(),
			}
		})
	case DescPolymorphic:
		id := TypeID(d.Name())
		b.checkDuplicate(id, d)
		return b.Named(id, nullable, func() TypeNode { return b.buildPolymorphic(d) })
	default:
		return b.degrade(d, nullable)
	}
}

// Named runs build under cycle detection for id. When the id is already
// present, or currently being built, the existing reference is returned
// immediately and build is not invoked — this is what keeps self-referential
// types from expanding forever. The visiting mark is cleared whether build
// succeeds or not.
func (b *Builder) Named(id TypeID, nullable bool, build func() TypeNode) TypeRef {
	if _, ok := b.nodes[id]; ok {
		return RefTo(id, nullable)
	}
	if _, ok := b.visiting[id]; ok {
		return RefTo(id, nullable)
	}
	b.visiting[id] = struct{}{}
	defer delete(b.visiting, id)
	if n := build(); n != nil {
		b.nodes[id] = n
	}
	return RefTo(id, nullable)
}

// Graph seals the build: the root descriptor is converted and the accumulated
// node table handed over. The builder must not be reused afterwards.
func (b *Builder) Graph(root Descriptor) *TypeGraph {
	r := b.Ref(root, false)
	return &TypeGraph{Root: r, Nodes: b.nodes}
}

// Warnings returns the non-fatal diagnostics collected during the build, one
// per descriptor that degraded to an empty object.
func (b *Builder) Warnings() Issues { return b.warnings }

func (b *Builder) buildObject(d Descriptor) TypeNode {
	obj := &Object{
		Name:        d.Name(),
		Required:    map[string]struct{}{},
		Description: d.Description(),
	}
	for _, el := range d.Elements() {
		ref := b.Ref(el.Descriptor, el.Nullable)
		obj.Properties = append(obj.Properties, Property{
			Name:        el.Name,
			Type:        ref,
			Description: el.Description,
			HasDefault:  el.HasDefault,
			Default:     el.Default,
		})
		if !el.HasDefault && !el.Nullable {
			obj.Required[el.Name] = struct{}{}
		}
	}
	return obj
}

func (b *Builder) buildPolymorphic(d Descriptor) TypeNode {
	base := simpleName(d.Name())
	p := &Polymorphic{BaseName: base, Description: d.Description()}
	for _, sd := range d.Subtypes() {
		id := QualifiedID(base, simpleName(sd.Name()))
		b.checkDuplicate(id, sd)
		sub := sd
		ref := b.Named(id, false, func() TypeNode {
			if sub.Kind() != DescObject {
				b.warn(sub, "polymorphic subtype degraded to empty object")
				return &Object{Name: sub.Name(), Required: map[string]struct{}{}}
			}
			return b.buildObject(sub)
		})
		p.Subtypes = append(p.Subtypes, SubtypeRef{ID: id, Ref: ref})
	}
	if disc := d.DiscriminatorField(); disc != nil {
		qualified := &Discriminator{PropertyName: disc.PropertyName, Required: disc.Required}
		if len(disc.Mapping) > 0 {
			qualified.Mapping = make(map[string]TypeID, len(disc.Mapping))
			for v, id := range disc.Mapping {
				qualified.Mapping[v] = QualifiedID(base, simpleName(string(id)))
			}
		}
		p.Discriminator = qualified
	}
	return p
}

// degrade maps an unsupported descriptor to an empty object node so one odd
// member does not sink the whole graph build. Anonymous shapes get a
// counter-suffixed fallback id; a shared slot would merge unrelated members.
func (b *Builder) degrade(d Descriptor, nullable bool) TypeRef {
	b.warn(d, "")
	name := d.Name()
	if name == "" {
		b.anon++
		name = "Unknown" + strconv.Itoa(b.anon)
	}
	id := TypeID(name)
	b.checkDuplicate(id, d)
	return b.Named(id, nullable, func() TypeNode {
		return &Object{Name: name, Required: map[string]struct{}{}}
	})
}

// checkDuplicate records the shape claiming id on first sight and warns when
// a differently-shaped descriptor claims an id that is already bound. The
// first binding wins; later claimants keep referencing it.
func (b *Builder) checkDuplicate(id TypeID, d Descriptor) {
	fp := fingerprint(d)
	prev, ok := b.seen[id]
	if !ok {
		b.seen[id] = fp
		return
	}
	if prev != fp {
		b.warnings = AppendIssues(b.warnings, Issue{
			Path:    "/",
			Code:    CodeDuplicateTypeID,
			Message: i18n.T(CodeDuplicateTypeID, nil),
			Hint:    string(id),
		})
	}
}

// fingerprint summarizes a descriptor's shallow shape: kind, name, member
// names, enum entries and subtype names. Deliberately non-recursive — it only
// has to tell two distinct types apart, not prove them equal.
func fingerprint(d Descriptor) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(d.Kind())))
	sb.WriteByte(':')
	sb.WriteString(d.Name())
	for _, el := range d.Elements() {
		sb.WriteByte('|')
		sb.WriteString(el.Name)
	}
	for _, v := range d.EnumValues() {
		sb.WriteByte(',')
		sb.WriteString(v)
	}
	for _, sd := range d.Subtypes() {
		sb.WriteByte('+')
		sb.WriteString(sd.Name())
	}
	return sb.String()
}

func (b *Builder) warn(d Descriptor, hint string) {
	if hint == "" {
		hint = d.Name()
	}
	b.warnings = AppendIssues(b.warnings, Issue{
		Path:    "/",
		Code:    CodeUnsupportedDescriptor,
		Message: i18n.T(CodeUnsupportedDescriptor, nil),
		Hint:    hint,
	})
}

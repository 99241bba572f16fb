package metadata

import "fmt"

// DefaultDiscriminatorName is the discriminator property name added by
// convention to TPH hierarchy roots.
const DefaultDiscriminatorName = "discriminator"

// EntityType is a node in the inheritance forest and in the ownership
// graph. Base and derived types are wired explicitly: every type holds a
// back-reference to its base and an index of its directly derived types,
// and traversals operate over this index directly.
type EntityType struct {
	model *Model
	name  string

	base     *EntityType
	derived  []*EntityType
	abstract bool

	properties []*Property
	propIndex  map[string]*Property
	pk         []*Property

	foreignKeys []*ForeignKey

	// Hierarchy configuration, meaningful on the root type only.
	strategy      MappingStrategy
	discriminator string
}

// Name returns the entity type name.
func (t *EntityType) Name() string { return t.name }

// Model returns the model the entity type belongs to.
func (t *EntityType) Model() *Model { return t.model }

// BaseType returns the base entity type, or nil for a root.
func (t *EntityType) BaseType() *EntityType { return t.base }

// Root returns the root of the inheritance tree the type belongs to.
// A type without a base is its own root.
func (t *EntityType) Root() *EntityType {
	root := t
	for root.base != nil {
		root = root.base
	}
	return root
}

// Abstract reports whether the type is abstract. Abstract TPC types do
// not map to a table of their own.
func (t *EntityType) Abstract() bool { return t.abstract }

// SetAbstract marks the type as abstract.
func (t *EntityType) SetAbstract(abstract bool) *EntityType {
	t.mutable()
	t.abstract = abstract
	return t
}

// DirectlyDerivedTypes returns the types directly derived from t.
func (t *EntityType) DirectlyDerivedTypes() []*EntityType {
	return t.derived
}

// DerivedTypes returns all types derived from t, directly or indirectly,
// in breadth-first order.
func (t *EntityType) DerivedTypes() []*EntityType {
	var all []*EntityType
	queue := append([]*EntityType(nil), t.derived...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		all = append(all, next)
		queue = append(queue, next.derived...)
	}
	return all
}

// SetBaseType sets the base type of t and registers t in the base's
// derived-type index. A nil base detaches the type from its hierarchy.
func (t *EntityType) SetBaseType(base *EntityType) error {
	if t.model.frozen {
		return ErrFrozenModel
	}
	if base != nil {
		if base.model != t.model {
			return NewModelError(t.name, "base type belongs to another model", nil)
		}
		for anc := base; anc != nil; anc = anc.base {
			if anc == t {
				return NewModelError(t.name, fmt.Sprintf("setting base type %q would create a cycle", base.name), nil)
			}
		}
	}
	if t.base != nil {
		siblings := t.base.derived
		for i, d := range siblings {
			if d == t {
				t.base.derived = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
	}
	t.base = base
	if base != nil {
		base.derived = append(base.derived, t)
	}
	return nil
}

// Strategy returns the inheritance mapping strategy of the hierarchy the
// type belongs to. The strategy is stored on the root; TPH is the default.
func (t *EntityType) Strategy() MappingStrategy {
	if s := t.Root().strategy; s != "" {
		return s
	}
	return TPH
}

// SetStrategy sets the inheritance mapping strategy on the hierarchy root.
func (t *EntityType) SetStrategy(s MappingStrategy) error {
	if t.model.frozen {
		return ErrFrozenModel
	}
	if !s.Valid() {
		return NewModelError(t.name, fmt.Sprintf("unknown mapping strategy %q", s), nil)
	}
	t.Root().strategy = s
	return nil
}

// Discriminator returns the discriminator property name of the hierarchy,
// or empty if the hierarchy is not discriminated.
func (t *EntityType) Discriminator() string {
	return t.Root().discriminator
}

// SetDiscriminator sets the discriminator property name on the hierarchy root.
func (t *EntityType) SetDiscriminator(name string) error {
	if t.model.frozen {
		return ErrFrozenModel
	}
	if name == "" {
		return NewModelError(t.name, "discriminator name cannot be empty", nil)
	}
	t.Root().discriminator = name
	return nil
}

// AddProperty adds a declared property to the entity type.
func (t *EntityType) AddProperty(name string, kind Kind) (*Property, error) {
	if t.model.frozen {
		return nil, ErrFrozenModel
	}
	if name == "" {
		return nil, NewPropertyError(t.name, "", "property name cannot be empty", nil)
	}
	if !kind.Valid() {
		return nil, NewPropertyError(t.name, name, "invalid property kind", nil)
	}
	if t.propIndex[name] != nil {
		return nil, NewPropertyError(t.name, name, "property redeclared", nil)
	}
	p := &Property{
		declaring: t,
		name:      name,
		kind:      kind,
	}
	t.properties = append(t.properties, p)
	t.propIndex[name] = p
	return p, nil
}

// DeclaredProperties returns the properties declared on t itself.
func (t *EntityType) DeclaredProperties() []*Property {
	return t.properties
}

// Properties returns all properties of the type, base types first.
func (t *EntityType) Properties() []*Property {
	if t.base == nil {
		return t.properties
	}
	inherited := t.base.Properties()
	all := make([]*Property, 0, len(inherited)+len(t.properties))
	all = append(all, inherited...)
	all = append(all, t.properties...)
	return all
}

// Property returns the property with the given name, declared on t or
// inherited from a base type. Returns nil if no such property exists.
func (t *EntityType) Property(name string) *Property {
	for cur := t; cur != nil; cur = cur.base {
		if p := cur.propIndex[name]; p != nil {
			return p
		}
	}
	return nil
}

// SetPrimaryKey sets the primary key of the hierarchy. The key is stored
// on the root type and shared by all derived types.
func (t *EntityType) SetPrimaryKey(names ...string) error {
	if t.model.frozen {
		return ErrFrozenModel
	}
	if len(names) == 0 {
		return NewModelError(t.name, "primary key requires at least one property", nil)
	}
	root := t.Root()
	props := make([]*Property, len(names))
	for i, name := range names {
		p := root.Property(name)
		if p == nil {
			return NewPropertyError(root.name, name, "primary key property not found", nil)
		}
		props[i] = p
	}
	root.pk = props
	return nil
}

// PrimaryKey returns the primary key properties of the hierarchy the type
// belongs to, or nil if no key was configured.
func (t *EntityType) PrimaryKey() []*Property {
	return t.Root().pk
}

// AddForeignKey adds a foreign key from t (the dependent side) to the
// principal type. The principal key defaults to the principal's primary
// key when no explicit key properties are given.
func (t *EntityType) AddForeignKey(principal *EntityType, properties []string, principalKey ...string) (*ForeignKey, error) {
	if t.model.frozen {
		return nil, ErrFrozenModel
	}
	if principal == nil {
		return nil, NewForeignKeyError(t.name, "", "principal type cannot be nil", nil)
	}
	if principal.model != t.model {
		return nil, NewForeignKeyError(t.name, principal.name, "principal type belongs to another model", nil)
	}
	props := make([]*Property, len(properties))
	for i, name := range properties {
		p := t.Property(name)
		if p == nil {
			return nil, NewForeignKeyError(t.name, principal.name, fmt.Sprintf("unknown foreign key property %q", name), nil)
		}
		props[i] = p
	}
	var key []*Property
	if len(principalKey) > 0 {
		key = make([]*Property, len(principalKey))
		for i, name := range principalKey {
			p := principal.Property(name)
			if p == nil {
				return nil, NewForeignKeyError(t.name, principal.name, fmt.Sprintf("unknown principal key property %q", name), nil)
			}
			key[i] = p
		}
	} else {
		key = principal.PrimaryKey()
		if key == nil {
			return nil, NewForeignKeyError(t.name, principal.name, "principal type has no primary key", nil)
		}
	}
	if len(props) != len(key) {
		return nil, NewForeignKeyError(t.name, principal.name,
			fmt.Sprintf("foreign key property count %d does not match principal key count %d", len(props), len(key)), nil)
	}
	fk := &ForeignKey{
		declaring:    t,
		principal:    principal,
		properties:   props,
		principalKey: key,
	}
	t.foreignKeys = append(t.foreignKeys, fk)
	return fk, nil
}

// ForeignKeys returns the foreign keys declared on t (the dependent side).
func (t *EntityType) ForeignKeys() []*ForeignKey {
	return t.foreignKeys
}

// FindOwnership returns the foreign key through which t is owned, or nil
// if t is not an owned type. An entity type has at most one ownership.
func (t *EntityType) FindOwnership() *ForeignKey {
	for _, fk := range t.foreignKeys {
		if fk.ownership {
			return fk
		}
	}
	return nil
}

func (t *EntityType) mutable() {
	if t.model.frozen {
		panic("efcore: mutating a frozen model")
	}
}

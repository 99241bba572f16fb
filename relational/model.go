package relational

import (
	"github.com/kryptine/efcore/metadata"
)

// maxHops bounds every traversal over table-sharing and ownership
// chains. Exceeding it is treated as "no shared root" (or "nullable",
// for the optional-sharing walk), never as an infinite loop. True cycles
// are rejected by Validate; the bound is defense-in-depth.
const maxHops = 100

// facet is one configured column value with its provenance. A set from
// a weaker configuration source never replaces a stronger one.
type facet[T any] struct {
	value  T
	source metadata.ConfigurationSource
	ok     bool
}

func (f *facet[T]) set(v T, src metadata.ConfigurationSource) T {
	if f.ok && !src.Overrides(f.source) {
		return f.value
	}
	f.value, f.source, f.ok = v, src, true
	return v
}

func (f *facet[T]) get() (T, bool) {
	return f.value, f.ok
}

func (f *facet[T]) sourceOf() (metadata.ConfigurationSource, bool) {
	return f.source, f.ok
}

// ColumnFacets is the typed configuration record of one column: every
// relational facet a property can carry, each with its provenance. The
// same record type backs both model-wide configuration and per-store-
// object overrides.
type ColumnFacets struct {
	name            facet[string]
	typeName        facet[string]
	order           facet[int]
	defaultValue    facet[any]
	defaultValueSQL facet[string]
	computedSQL     facet[string]
	stored          facet[bool]
	maxLength       facet[int]
	precision       facet[int]
	scale           facet[int]
	unicode         facet[bool]
	fixedLength     facet[bool]
	comment         facet[string]
	collation       facet[string]
}

// overrideKey identifies a per-store-object facet override record.
type overrideKey struct {
	property *metadata.Property
	object   StoreObject
}

// Model is the relational extension of a metadata model. It stores the
// configured store object names and column facets and exposes the
// resolution algorithms that compute defaults where nothing was
// configured.
//
// Configuration happens during the single-writer model building phase;
// once the underlying metadata model is finalized, every method is a
// pure read and safe for concurrent use.
type Model struct {
	base *metadata.Model

	objects   map[*metadata.EntityType]*objectNames
	columns   map[*metadata.Property]*ColumnFacets
	overrides map[overrideKey]*ColumnFacets
}

// Extend wraps a metadata model with relational mapping state. Call it
// before finalizing the model to configure facets, or after to resolve
// them.
func Extend(m *metadata.Model) *Model {
	return &Model{
		base:      m,
		objects:   make(map[*metadata.EntityType]*objectNames),
		columns:   make(map[*metadata.Property]*ColumnFacets),
		overrides: make(map[overrideKey]*ColumnFacets),
	}
}

// Base returns the underlying metadata model.
func (m *Model) Base() *metadata.Model { return m.base }

// Stripped returns the runtime view of the relational model. The facet
// state is shared with the receiver; debug-only facets fail fast on the
// returned model.
func (m *Model) Stripped() (*Model, error) {
	base, err := m.base.Stripped()
	if err != nil {
		return nil, err
	}
	rm := *m
	rm.base = base
	return &rm, nil
}

func (m *Model) mutable() {
	if m.base.Frozen() {
		panic("efcore: configuring relational facets on a frozen model")
	}
}

func (m *Model) objectsFor(et *metadata.EntityType) *objectNames {
	o := m.objects[et]
	if o == nil {
		o = &objectNames{}
		m.objects[et] = o
	}
	return o
}

func (m *Model) columnsFor(p *metadata.Property) *ColumnFacets {
	c := m.columns[p]
	if c == nil {
		c = &ColumnFacets{}
		m.columns[p] = c
	}
	return c
}

func (m *Model) overridesFor(p *metadata.Property, so StoreObject) *ColumnFacets {
	key := overrideKey{property: p, object: so}
	c := m.overrides[key]
	if c == nil {
		c = &ColumnFacets{}
		m.overrides[key] = c
	}
	return c
}

// overrideFor returns the override record for (p, so) without creating it.
func (m *Model) overrideFor(p *metadata.Property, so StoreObject) (*ColumnFacets, bool) {
	c, ok := m.overrides[overrideKey{property: p, object: so}]
	return c, ok
}

// HasOverrides reports whether any facet was overridden for the property
// at the given store object.
func (m *Model) HasOverrides(p *metadata.Property, so StoreObject) bool {
	_, ok := m.overrideFor(p, so)
	return ok
}

// debugFacet guards facets that are stripped from runtime models.
func (m *Model) debugFacet(name string) {
	if m.base.Runtime() {
		panic("efcore: " + name + " is not available on a runtime model")
	}
}

// facetIn resolves a store-object-aware facet: the per-object override
// wins, then the shared-object root property's configuration, then the
// property's own model-wide configuration.
func facetIn[T any](m *Model, p *metadata.Property, so StoreObject, pick func(*ColumnFacets) (T, bool)) (T, bool) {
	if c, ok := m.overrideFor(p, so); ok {
		if v, ok := pick(c); ok {
			return v, true
		}
	}
	if root, err := m.SharedObjectRoot(p, so); err == nil && root != nil {
		if c, ok := m.overrideFor(root, so); ok {
			if v, ok := pick(c); ok {
				return v, true
			}
		}
		if c := m.columns[root]; c != nil {
			if v, ok := pick(c); ok {
				return v, true
			}
		}
	}
	if c := m.columns[p]; c != nil {
		if v, ok := pick(c); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

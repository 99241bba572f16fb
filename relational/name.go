package relational

import (
	"fmt"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/kryptine/efcore/metadata"
)

// ColumnName returns the column name of the property on its declaring
// type's table, or false if the declaring type maps to no table.
func (m *Model) ColumnName(p *metadata.Property) (string, bool) {
	so, ok := m.StoreObjectFor(p.Declaring(), KindTable)
	if !ok {
		return "", false
	}
	return m.ColumnNameIn(p, so)
}

// ColumnNameIn returns the column name of the property at the given
// store object, or false if the property does not map there at all.
// An explicit per-object override wins over the model-wide name, which
// wins over the computed default.
func (m *Model) ColumnNameIn(p *metadata.Property, so StoreObject) (string, bool) {
	return m.columnNameIn(p, so, 0)
}

func (m *Model) columnNameIn(p *metadata.Property, so StoreObject, depth int) (string, bool) {
	if !m.mappedTo(p, so) {
		return "", false
	}
	if c, ok := m.overrideFor(p, so); ok {
		if name, ok := c.name.get(); ok {
			return name, true
		}
	}
	if c := m.columns[p]; c != nil {
		if name, ok := c.name.get(); ok {
			return name, true
		}
	}
	return m.defaultColumnNameIn(p, so, depth), true
}

// mappedTo decides whether the property maps to the store object at all.
//
// Functions and SQL queries carry every property they are asked about.
// Primary-key properties map to every object produced by the declaring
// type or one of its derived types, so TPT and TPC tables all carry the
// key. Other properties map only to the object their declaring type
// itself produces; under TPC the directly-derived forest is searched
// breadth-first because each concrete table repeats the inherited
// columns.
func (m *Model) mappedTo(p *metadata.Property, so StoreObject) bool {
	switch so.kind {
	case KindFunction, KindSQLQuery:
		return true
	}
	et := p.Declaring()
	if p.IsPrimaryKey() {
		if obj, ok := m.StoreObjectFor(et, so.kind); ok && obj == so {
			return true
		}
		for _, d := range et.DerivedTypes() {
			if obj, ok := m.StoreObjectFor(d, so.kind); ok && obj == so {
				return true
			}
		}
		return false
	}
	if obj, ok := m.StoreObjectFor(et, so.kind); ok && obj == so {
		return true
	}
	if et.Strategy() == metadata.TPC {
		for _, d := range et.DerivedTypes() {
			if obj, ok := m.StoreObjectFor(d, so.kind); ok && obj == so {
				return true
			}
		}
	}
	return false
}

// DefaultColumnNameIn computes the default column name of the property
// at the given store object, assuming it maps there.
//
// Shared primary-key and concurrency-token columns reuse the name of
// their root property. Everything else gets the ownership navigation
// prefix walk: while the declaring type is an owned dependent whose
// owner shares the same store object, the owning navigation name is
// prepended, so Order owning Address through "ShippingAddress" yields
// "ShippingAddress_Street".
func (m *Model) DefaultColumnNameIn(p *metadata.Property, so StoreObject) string {
	return m.defaultColumnNameIn(p, so, 0)
}

// defaultColumnNameIn bounds the root-delegation depth: every hop to a
// root property increments depth, so cyclic sharing configurations fall
// back to the unprefixed base name instead of recursing forever.
func (m *Model) defaultColumnNameIn(p *metadata.Property, so StoreObject, depth int) string {
	if depth > maxHops {
		return m.DefaultColumnBaseName(p)
	}
	if root := m.sharedPrimaryKeyRoot(p, so); root != nil {
		if name, ok := m.columnNameIn(root, so, depth+1); ok {
			return name
		}
	}
	if root := m.sharedConcurrencyTokenRoot(p, so); root != nil {
		if name, ok := m.columnNameIn(root, so, depth+1); ok {
			return name
		}
	}
	prefix := ""
	et := p.Declaring()
	for hop := 0; hop < maxHops; hop++ {
		fk := et.FindOwnership()
		if fk == nil {
			break
		}
		owner := fk.Principal()
		if obj, ok := m.StoreObjectFor(owner, so.kind); !ok || obj != so {
			break
		}
		if nav := fk.Navigation(); nav != "" {
			prefix = nav + "_" + prefix
		}
		et = owner
	}
	return Truncate(prefix+m.DefaultColumnBaseName(p), m.base.MaxIdentifierLength())
}

// DefaultColumnBaseName returns the default column name of the property
// before any ownership prefixing: the property name truncated to the
// model's maximum identifier length.
func (m *Model) DefaultColumnBaseName(p *metadata.Property) string {
	return Truncate(p.Name(), m.base.MaxIdentifierLength())
}

// SetColumnName configures the model-wide column name of the property
// and returns the applied value.
func (m *Model) SetColumnName(p *metadata.Property, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).name.set(name, src)
}

// SetColumnNameIn configures the column name of the property for one
// specific store object and returns the applied value.
func (m *Model) SetColumnNameIn(p *metadata.Property, so StoreObject, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.overridesFor(p, so).name.set(name, src)
}

// ColumnNameSource returns the provenance of the model-wide column name.
func (m *Model) ColumnNameSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.name.sourceOf()
	}
	return 0, false
}

// ColumnNameSourceIn returns the provenance of the per-object column
// name override.
func (m *Model) ColumnNameSourceIn(p *metadata.Property, so StoreObject) (metadata.ConfigurationSource, bool) {
	if c, ok := m.overrideFor(p, so); ok {
		return c.name.sourceOf()
	}
	return 0, false
}

// Truncate shortens the identifier to at most maxLength bytes. The tail
// of a long identifier is replaced with a tag derived from the hash of
// the whole name, so two long identifiers sharing a prefix stay
// distinct. The cut never splits a rune, so the result stays valid
// UTF-8 and may come in slightly under maxLength. Truncation is
// idempotent: a truncated identifier passes through unchanged.
func Truncate(name string, maxLength int) string {
	if len(name) <= maxLength {
		return name
	}
	tag := fmt.Sprintf("~%08x", uint32(xxhash.Sum64String(name)))
	cut := maxLength - len(tag)
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut] + tag
}

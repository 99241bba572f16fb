package relational

import (
	"github.com/kryptine/efcore/metadata"
)

// Nullable reports whether the property's column allows nulls,
// independent of any specific store object. A non-nullable property
// still maps to a nullable column when it is declared on a derived type
// of a discriminated hierarchy, because sibling branches never populate
// it.
func (m *Model) Nullable(p *metadata.Property) bool {
	return p.Nullable() || derivedDiscriminated(p.Declaring())
}

// NullableIn reports whether the property's column at the given store
// object allows nulls. A property sharing its column with another
// entity type defers to the shared-object root: the dependent's key
// columns stay as nullable as the principal's. On top of the model-wide
// rules, a column of an optional sharing dependent is nullable: when
// every row-internal relationship that puts the declaring type into the
// shared object is optional (or leads, recursively, to an optional
// principal), rows of the other types exist without a dependent row to
// fill the column.
func (m *Model) NullableIn(p *metadata.Property, so StoreObject) bool {
	return m.nullableIn(p, so, 0)
}

func (m *Model) nullableIn(p *metadata.Property, so StoreObject, depth int) bool {
	if depth > maxHops {
		return true
	}
	if root, err := m.SharedObjectRoot(p, so); err == nil && root != nil {
		return m.nullableIn(root, so, depth+1)
	}
	return p.Nullable() ||
		derivedDiscriminated(p.Declaring()) ||
		m.optionalSharingDependent(p.Declaring(), so, depth)
}

func derivedDiscriminated(et *metadata.EntityType) bool {
	return et.BaseType() != nil && et.Discriminator() != ""
}

// optionalSharingDependent AND-combines optionality across all
// row-internal foreign keys of the type at the store object. With no
// such keys it falls back to the discriminator rule. Overflowing the
// hop limit fails open: the column is reported nullable.
func (m *Model) optionalSharingDependent(et *metadata.EntityType, so StoreObject, depth int) bool {
	if depth > maxHops {
		return true
	}
	var optional *bool
	for _, fk := range m.rowInternalForeignKeys(et, so) {
		v := !fk.RequiredDependent() || m.optionalSharingDependent(fk.Principal(), so, depth+1)
		if optional == nil {
			optional = &v
		} else {
			*optional = *optional && v
		}
	}
	if optional != nil {
		return *optional
	}
	return derivedDiscriminated(et)
}

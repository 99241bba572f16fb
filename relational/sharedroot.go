package relational

import (
	"slices"

	"github.com/kryptine/efcore/metadata"
)

// SharedObjectRoot finds the property that is the authoritative source
// of column facets for p at the given store object, when p's row is
// shared with another entity type's row there. It walks row-internal
// foreign keys towards the principal side, matching by resolved column
// name, for at most maxHops hops.
//
// The result is never p itself: a nil result with a nil error means p is
// its own root. Querying a property that is not mapped to the store
// object at all is an error.
//
// This is the general fallback resolver. Primary-key and concurrency-
// token columns have more specific walks (sharedPrimaryKeyRoot and
// sharedConcurrencyTokenRoot) whose linkage is defined by key
// correspondence rather than name matching; those are consulted by the
// default-name computation and need no name to exist beforehand.
func (m *Model) SharedObjectRoot(p *metadata.Property, so StoreObject) (*metadata.Property, error) {
	column, ok := m.ColumnNameIn(p, so)
	if !ok {
		return nil, &NotMappedError{
			Property: p.Name(),
			Type:     p.Declaring().Name(),
			Object:   so,
		}
	}
	cur := p
	for hop := 0; hop < maxHops; hop++ {
		var next *metadata.Property
		for _, fk := range m.rowInternalForeignKeys(cur.Declaring(), so) {
			for _, pp := range fk.Principal().Properties() {
				if pp == cur {
					continue
				}
				if name, ok := m.ColumnNameIn(pp, so); ok && name == column {
					next = pp
					break
				}
			}
			if next != nil {
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
	}
	if cur == p {
		return nil, nil
	}
	return cur, nil
}

// sharedPrimaryKeyRoot follows the row-internal foreign key chain of a
// primary-key property, substituting the cursor with the principal key
// property at the same ordinal position on every hop. Returns nil when p
// is its own root.
func (m *Model) sharedPrimaryKeyRoot(p *metadata.Property, so StoreObject) *metadata.Property {
	if !p.IsPrimaryKey() {
		return nil
	}
	cur := p
	for hop := 0; hop < maxHops; hop++ {
		fks := m.rowInternalForeignKeys(cur.Declaring(), so)
		if len(fks) == 0 {
			break
		}
		fk := fks[0]
		idx := slices.Index(fk.Properties(), cur)
		if idx < 0 {
			break
		}
		cur = fk.PrincipalKey()[idx]
	}
	if cur == p {
		return nil
	}
	return cur
}

// sharedConcurrencyTokenRoot follows the row-internal foreign key chain
// of a concurrency-token property, looking up the same-named token on
// the principal side on every hop. A principal without a same-named
// concurrency token breaks the chain entirely: the walk returns nil and
// p stays authoritative for its own value.
func (m *Model) sharedConcurrencyTokenRoot(p *metadata.Property, so StoreObject) *metadata.Property {
	if !p.ConcurrencyToken() {
		return nil
	}
	cur := p
	for hop := 0; hop < maxHops; hop++ {
		fks := m.rowInternalForeignKeys(cur.Declaring(), so)
		if len(fks) == 0 {
			break
		}
		q := fks[0].Principal().Property(cur.Name())
		if q == nil || !q.ConcurrencyToken() {
			return nil
		}
		cur = q
	}
	if cur == p {
		return nil
	}
	return cur
}

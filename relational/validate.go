package relational

import (
	"fmt"
	"sort"

	"github.com/yourbasic/graph"
	"golang.org/x/sync/errgroup"

	"github.com/kryptine/efcore/metadata"
)

// Validate checks the relational mapping of a finalized model. It is
// the authoritative cycle defense: the hop limit inside the resolvers
// only bounds work, while Validate rejects genuinely cyclic sharing
// configurations before they reach production resolution paths.
//
// Two checks run:
//
//   - the row-sharing graph (row-internal foreign keys and ownerships)
//     must be acyclic;
//   - within one store object, all properties resolving to the same
//     column name must agree on column type and nullability.
//
// Store objects are checked concurrently; the frozen model makes the
// concurrent reads safe.
func (m *Model) Validate() error {
	if !m.base.Frozen() {
		return metadata.NewModelError("", "cannot validate a model before Finalize", nil)
	}
	if err := m.validateSharingCycles(); err != nil {
		return err
	}
	return m.validateColumns()
}

// validateSharingCycles builds the dependent-to-principal sharing graph
// over all entity types and rejects strongly connected components.
func (m *Model) validateSharingCycles() error {
	types := m.base.EntityTypes()
	index := make(map[*metadata.EntityType]int, len(types))
	for i, et := range types {
		index[et] = i
	}
	g := graph.New(len(types))
	for _, et := range types {
		for _, fk := range et.ForeignKeys() {
			if fk.Principal() == et {
				continue
			}
			shared := fk.Ownership() && fk.Unique()
			if !shared {
				if so, ok := m.StoreObjectFor(et, KindTable); ok {
					for _, rifk := range m.rowInternalForeignKeys(et, so) {
						if rifk == fk {
							shared = true
							break
						}
					}
				}
			}
			if shared {
				g.Add(index[et], index[fk.Principal()])
			}
		}
	}
	if graph.Acyclic(g) {
		return nil
	}
	for _, comp := range graph.StrongComponents(g) {
		if len(comp) < 2 {
			continue
		}
		sort.Ints(comp)
		names := make([]string, len(comp))
		for i, v := range comp {
			names[i] = types[v].Name()
		}
		return &MappingError{
			Types:   names,
			Message: "table sharing forms a cycle",
		}
	}
	return &MappingError{Message: "table sharing forms a cycle"}
}

// validateColumns resolves every column of every store object and
// rejects same-named columns with incompatible facets.
func (m *Model) validateColumns() error {
	byObject := make(map[StoreObject][]*metadata.Property)
	for _, et := range m.base.EntityTypes() {
		for _, kind := range []Kind{KindTable, KindView} {
			so, ok := m.StoreObjectFor(et, kind)
			if !ok {
				continue
			}
			for _, p := range et.DeclaredProperties() {
				if m.mappedTo(p, so) {
					byObject[so] = append(byObject[so], p)
				}
			}
		}
	}
	var g errgroup.Group
	for so, props := range byObject {
		g.Go(func() error {
			type column struct {
				property *metadata.Property
				typeName string
				nullable bool
			}
			seen := make(map[string]column)
			for _, p := range props {
				name, ok := m.ColumnNameIn(p, so)
				if !ok {
					continue
				}
				col := column{
					property: p,
					typeName: m.ColumnTypeIn(p, so),
					nullable: m.NullableIn(p, so),
				}
				prev, ok := seen[name]
				if !ok {
					seen[name] = col
					continue
				}
				if prev.typeName != col.typeName {
					return &MappingError{
						Object: so,
						Types:  []string{prev.property.Declaring().Name(), p.Declaring().Name()},
						Message: fmt.Sprintf("column %q is mapped with conflicting types %q and %q",
							name, prev.typeName, col.typeName),
					}
				}
				if prev.nullable != col.nullable {
					return &MappingError{
						Object: so,
						Types:  []string{prev.property.Declaring().Name(), p.Declaring().Name()},
						Message: fmt.Sprintf("column %q is mapped with conflicting nullability",
							name),
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

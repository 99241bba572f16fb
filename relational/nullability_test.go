package relational

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kryptine/efcore/metadata"
)

func TestNullable_Discriminated(t *testing.T) {
	require := require.New(t)
	rm, animal, dog := tphFixture(t)

	// A non-nullable property on a derived type of a discriminated
	// hierarchy still maps to a nullable column: sibling branches never
	// populate it.
	breed := dog.Property("BreedName")
	require.False(breed.Nullable())
	require.True(rm.Nullable(breed))

	// Root-declared properties are unaffected.
	require.False(rm.Nullable(animal.Property("Name")))
	require.False(rm.Nullable(animal.Property("Id")))

	so, ok := rm.StoreObjectFor(dog, KindTable)
	require.True(ok)
	require.Equal(Table("animals", ""), so)
	require.True(rm.NullableIn(breed, so))
	require.False(rm.NullableIn(animal.Property("Name"), so))
}

func TestNullable_Declared(t *testing.T) {
	require := require.New(t)
	rm, emp, _ := sharedTableFixture(t)

	title := emp.Property("Title")
	require.False(rm.Nullable(title))
	title.SetNullable(true)
	require.True(rm.Nullable(title))
}

func TestNullableIn_OptionalSharingDependent(t *testing.T) {
	require := require.New(t)
	rm, emp, addr := sharedTableFixture(t)
	so, ok := rm.StoreObjectFor(addr, KindTable)
	require.True(ok)

	street := addr.Property("Street")
	require.False(street.Nullable())

	// The dependent side of the split is optional: employee rows exist
	// without an address row, so its columns must allow nulls.
	require.True(rm.NullableIn(street, so))
	require.False(rm.NullableIn(emp.Property("Title"), so))

	// Shared key columns defer to the root property and stay as
	// nullable as the principal's key.
	require.False(rm.NullableIn(addr.Property("Id"), so))

	// A required dependent fills its columns on every row.
	addr.ForeignKeys()[0].SetRequiredDependent(true)
	require.False(rm.NullableIn(street, so))
}

func TestNullableIn_SharingChain(t *testing.T) {
	require := require.New(t)
	m, err := metadata.NewModel()
	require.NoError(err)
	rm := Extend(m)

	types := make([]*metadata.EntityType, 0, 3)
	for _, tt := range []struct{ name, prop string }{
		{"Order", "Note"},
		{"OrderDetails", "Detail"},
		{"OrderAudit", "AuditNote"},
	} {
		et, err := m.AddEntityType(tt.name)
		require.NoError(err)
		_, err = et.AddProperty("Id", metadata.KindInt64)
		require.NoError(err)
		_, err = et.AddProperty(tt.prop, metadata.KindString)
		require.NoError(err)
		require.NoError(et.SetPrimaryKey("Id"))
		rm.SetTableName(et, "orders", metadata.SourceExplicit)
		types = append(types, et)
	}
	order, details, audit := types[0], types[1], types[2]

	// details is an optional dependent of order; audit a required
	// dependent of details.
	fk, err := details.AddForeignKey(order, []string{"Id"})
	require.NoError(err)
	fk.SetUnique(true).SetRequiredDependent(false)
	fk, err = audit.AddForeignKey(details, []string{"Id"})
	require.NoError(err)
	fk.SetUnique(true).SetRequiredDependent(true)

	so := Table("orders", "")
	require.False(rm.NullableIn(order.Property("Note"), so))
	require.True(rm.NullableIn(details.Property("Detail"), so))
	// Required of an optional is still transitively optional.
	require.True(rm.NullableIn(audit.Property("AuditNote"), so))
}

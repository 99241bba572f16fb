package relational

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kryptine/efcore/metadata"
)

func TestSharedObjectRoot(t *testing.T) {
	require := require.New(t)
	rm, emp, addr := sharedTableFixture(t)
	so, ok := rm.StoreObjectFor(addr, KindTable)
	require.True(ok)
	require.Equal(Table("employees", ""), so)

	root, err := rm.SharedObjectRoot(addr.Property("Id"), so)
	require.NoError(err)
	require.Same(emp.Property("Id"), root)

	// The resolver is irreflexive: a property that is authoritative for
	// its own column has no root.
	root, err = rm.SharedObjectRoot(emp.Property("Id"), so)
	require.NoError(err)
	require.Nil(root)
	root, err = rm.SharedObjectRoot(addr.Property("Street"), so)
	require.NoError(err)
	require.Nil(root)
}

func TestSharedObjectRoot_NotMapped(t *testing.T) {
	require := require.New(t)
	rm, _, addr := sharedTableFixture(t)

	m := rm.Base()
	customer, err := m.AddEntityType("Customer")
	require.NoError(err)
	name, err := customer.AddProperty("Name", metadata.KindString)
	require.NoError(err)

	so, ok := rm.StoreObjectFor(addr, KindTable)
	require.True(ok)
	_, err = rm.SharedObjectRoot(name, so)
	require.ErrorIs(err, ErrNotMapped)
	require.EqualError(err, "efcore: property Name of type Customer is not mapped to employees (Table)")
}

func TestSharedPrimaryKeyRoot_Ordinal(t *testing.T) {
	require := require.New(t)
	m, err := metadata.NewModel()
	require.NoError(err)
	rm := Extend(m)

	order, err := m.AddEntityType("Order")
	require.NoError(err)
	_, err = order.AddProperty("TenantId", metadata.KindInt64)
	require.NoError(err)
	_, err = order.AddProperty("Id", metadata.KindInt64)
	require.NoError(err)
	require.NoError(order.SetPrimaryKey("TenantId", "Id"))

	details, err := m.AddEntityType("OrderDetails")
	require.NoError(err)
	_, err = details.AddProperty("TenantId", metadata.KindInt64)
	require.NoError(err)
	_, err = details.AddProperty("Id", metadata.KindInt64)
	require.NoError(err)
	require.NoError(details.SetPrimaryKey("TenantId", "Id"))
	fk, err := details.AddForeignKey(order, []string{"TenantId", "Id"})
	require.NoError(err)
	fk.SetUnique(true)
	rm.SetTableName(details, "orders", metadata.SourceExplicit)

	so, ok := rm.StoreObjectFor(details, KindTable)
	require.True(ok)
	require.Same(order.Property("TenantId"), rm.sharedPrimaryKeyRoot(details.Property("TenantId"), so))
	require.Same(order.Property("Id"), rm.sharedPrimaryKeyRoot(details.Property("Id"), so))
	require.Nil(rm.sharedPrimaryKeyRoot(order.Property("Id"), so))
}

func TestSharedConcurrencyTokenRoot(t *testing.T) {
	require := require.New(t)
	rm, emp, addr := sharedTableFixture(t)
	so, ok := rm.StoreObjectFor(addr, KindTable)
	require.True(ok)

	rm.SetColumnName(emp.Property("Version"), "xmin", metadata.SourceExplicit)

	name, ok := rm.ColumnNameIn(addr.Property("Version"), so)
	require.True(ok)
	require.Equal("xmin", name, "token columns inherit the root token's name")
}

func TestSharedConcurrencyTokenRoot_BrokenChain(t *testing.T) {
	require := require.New(t)
	rm, emp, addr := sharedTableFixture(t)
	so, ok := rm.StoreObjectFor(addr, KindTable)
	require.True(ok)

	// The principal's same-named property is not a token: the chain
	// breaks and the dependent keeps its own column name.
	emp.Property("Version").SetConcurrencyToken(false)
	rm.SetColumnName(emp.Property("Version"), "xmin", metadata.SourceExplicit)

	name, ok := rm.ColumnNameIn(addr.Property("Version"), so)
	require.True(ok)
	require.Equal("Version", name)
}

func TestSharedObjectRoot_CycleTerminates(t *testing.T) {
	require := require.New(t)
	m, err := metadata.NewModel()
	require.NoError(err)
	rm := Extend(m)

	a, err := m.AddEntityType("Left")
	require.NoError(err)
	_, err = a.AddProperty("Id", metadata.KindInt64)
	require.NoError(err)
	require.NoError(a.SetPrimaryKey("Id"))

	b, err := m.AddEntityType("Right")
	require.NoError(err)
	_, err = b.AddProperty("Id", metadata.KindInt64)
	require.NoError(err)
	require.NoError(b.SetPrimaryKey("Id"))

	fk, err := a.AddForeignKey(b, []string{"Id"})
	require.NoError(err)
	fk.SetUnique(true)
	fk, err = b.AddForeignKey(a, []string{"Id"})
	require.NoError(err)
	fk.SetUnique(true)

	rm.SetTableName(a, "shared", metadata.SourceExplicit)
	rm.SetTableName(b, "shared", metadata.SourceExplicit)

	so := Table("shared", "")
	root, err := rm.SharedObjectRoot(a.Property("Id"), so)
	require.NoError(err)
	again, err := rm.SharedObjectRoot(a.Property("Id"), so)
	require.NoError(err)
	require.Equal(root, again, "cyclic sharing resolves deterministically")

	name, ok := rm.ColumnNameIn(a.Property("Id"), so)
	require.True(ok)
	require.Equal("Id", name)
}

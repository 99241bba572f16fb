package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModel(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)
	require.Equal(DefaultMaxIdentifierLength, m.MaxIdentifierLength())
	require.Empty(m.DefaultSchema())
	require.False(m.Frozen())
	require.False(m.Runtime())

	m, err = NewModel(WithMaxIdentifierLength(30), WithDefaultSchema("app"))
	require.NoError(err)
	require.Equal(30, m.MaxIdentifierLength())
	require.Equal("app", m.DefaultSchema())

	_, err = NewModel(WithMaxIdentifierLength(4))
	require.EqualError(err, "efcore: model error: maximum identifier length must be at least 16")
}

func TestModel_AddEntityType(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	order, err := m.AddEntityType("Order")
	require.NoError(err)
	require.Equal("Order", order.Name())
	require.Same(m, order.Model())
	require.Same(order, m.EntityType("Order"))

	_, err = m.AddEntityType("Order")
	require.EqualError(err, "efcore: model error on type Order: entity type redeclared")

	_, err = m.AddEntityType("")
	require.EqualError(err, "efcore: model error: entity type name cannot be empty")

	require.NoError(m.Finalize())
	_, err = m.AddEntityType("Late")
	require.ErrorIs(err, ErrFrozenModel)
}

func TestEntityType_Inheritance(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	animal, err := m.AddEntityType("Animal")
	require.NoError(err)
	dog, err := m.AddEntityType("Dog")
	require.NoError(err)
	puppy, err := m.AddEntityType("Puppy")
	require.NoError(err)
	cat, err := m.AddEntityType("Cat")
	require.NoError(err)

	require.NoError(dog.SetBaseType(animal))
	require.NoError(cat.SetBaseType(animal))
	require.NoError(puppy.SetBaseType(dog))

	require.Same(animal, dog.BaseType())
	require.Same(animal, puppy.Root())
	require.Equal([]*EntityType{dog, cat}, animal.DirectlyDerivedTypes())
	require.Equal([]*EntityType{dog, cat, puppy}, animal.DerivedTypes())

	err = animal.SetBaseType(puppy)
	require.EqualError(err, `efcore: model error on type Animal: setting base type "Puppy" would create a cycle`)

	// Detaching removes the type from the child index.
	require.NoError(cat.SetBaseType(nil))
	require.Equal([]*EntityType{dog}, animal.DirectlyDerivedTypes())
}

func TestEntityType_Strategy(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	animal, err := m.AddEntityType("Animal")
	require.NoError(err)
	dog, err := m.AddEntityType("Dog")
	require.NoError(err)
	require.NoError(dog.SetBaseType(animal))

	require.Equal(TPH, dog.Strategy(), "TPH is the default")
	require.NoError(dog.SetStrategy(TPT))
	require.Equal(TPT, animal.Strategy(), "strategy is stored on the root")

	err = dog.SetStrategy("unknown")
	require.EqualError(err, `efcore: model error on type Dog: unknown mapping strategy "unknown"`)
}

func TestEntityType_Properties(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	animal, err := m.AddEntityType("Animal")
	require.NoError(err)
	dog, err := m.AddEntityType("Dog")
	require.NoError(err)
	require.NoError(dog.SetBaseType(animal))

	id, err := animal.AddProperty("Id", KindInt64)
	require.NoError(err)
	name, err := animal.AddProperty("Name", KindString)
	require.NoError(err)
	breed, err := dog.AddProperty("BreedName", KindString)
	require.NoError(err)

	_, err = animal.AddProperty("Name", KindString)
	require.EqualError(err, "efcore: property error on type Animal property Name: property redeclared")
	_, err = animal.AddProperty("", KindString)
	require.EqualError(err, "efcore: property error on type Animal: property name cannot be empty")
	_, err = animal.AddProperty("Bad", KindInvalid)
	require.EqualError(err, "efcore: property error on type Animal property Bad: invalid property kind")

	require.Same(name, dog.Property("Name"), "inherited lookup")
	require.Same(breed, dog.Property("BreedName"))
	require.Nil(animal.Property("BreedName"))
	require.Equal([]*Property{id, name, breed}, dog.Properties())
	require.Equal([]*Property{breed}, dog.DeclaredProperties())

	require.Same(animal, id.Declaring())
	require.Equal(KindInt64, id.Kind())
	require.False(id.Nullable())
	id.SetNullable(true)
	require.True(id.Nullable())
}

func TestEntityType_PrimaryKey(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	animal, err := m.AddEntityType("Animal")
	require.NoError(err)
	dog, err := m.AddEntityType("Dog")
	require.NoError(err)
	require.NoError(dog.SetBaseType(animal))

	id, err := animal.AddProperty("Id", KindInt64)
	require.NoError(err)
	breed, err := dog.AddProperty("BreedName", KindString)
	require.NoError(err)

	err = animal.SetPrimaryKey("Missing")
	require.EqualError(err, "efcore: property error on type Animal property Missing: primary key property not found")
	err = animal.SetPrimaryKey()
	require.EqualError(err, "efcore: model error on type Animal: primary key requires at least one property")

	require.NoError(dog.SetPrimaryKey("Id"))
	require.Equal([]*Property{id}, animal.PrimaryKey(), "key is stored on the root")
	require.Equal([]*Property{id}, dog.PrimaryKey())
	require.True(id.IsPrimaryKey())
	require.False(breed.IsPrimaryKey())
}

func TestEntityType_ForeignKeys(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	order, err := m.AddEntityType("Order")
	require.NoError(err)
	details, err := m.AddEntityType("OrderDetails")
	require.NoError(err)

	orderID, err := order.AddProperty("Id", KindInt64)
	require.NoError(err)
	require.NoError(order.SetPrimaryKey("Id"))
	detailsID, err := details.AddProperty("Id", KindInt64)
	require.NoError(err)
	require.NoError(details.SetPrimaryKey("Id"))

	_, err = details.AddForeignKey(nil, []string{"Id"})
	require.EqualError(err, "efcore: foreign key error on type OrderDetails: principal type cannot be nil")
	_, err = details.AddForeignKey(order, []string{"Missing"})
	require.EqualError(err, `efcore: foreign key error (OrderDetails -> Order): unknown foreign key property "Missing"`)

	fk, err := details.AddForeignKey(order, []string{"Id"})
	require.NoError(err)
	require.Same(details, fk.Declaring())
	require.Same(order, fk.Principal())
	require.Equal([]*Property{detailsID}, fk.Properties())
	require.Equal([]*Property{orderID}, fk.PrincipalKey(), "principal key defaults to the primary key")
	require.True(fk.PrincipalKeyIsPrimary())
	require.True(fk.PropertiesArePrimaryKey())

	fk.SetUnique(true).SetOwnership(true).SetRequiredDependent(true).SetNavigation("Details")
	require.True(fk.Unique())
	require.True(fk.Ownership())
	require.True(fk.RequiredDependent())
	require.Equal("Details", fk.Navigation())
	require.Same(fk, details.FindOwnership())
	require.Nil(order.FindOwnership())
}

func TestModel_Finalize(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	animal, err := m.AddEntityType("Animal")
	require.NoError(err)
	dog, err := m.AddEntityType("Dog")
	require.NoError(err)
	require.NoError(dog.SetBaseType(animal))
	_, err = animal.AddProperty("Id", KindInt64)
	require.NoError(err)
	require.NoError(animal.SetPrimaryKey("Id"))

	require.Empty(animal.Discriminator())
	require.NoError(m.Finalize())
	require.True(m.Frozen())
	require.Equal(DefaultDiscriminatorName, animal.Discriminator(), "TPH hierarchies get a discriminator by convention")
	require.Equal(DefaultDiscriminatorName, dog.Discriminator())

	require.ErrorIs(m.Finalize(), ErrFrozenModel)
	require.Panics(func() { dog.SetAbstract(true) })

	rt, err := m.Stripped()
	require.NoError(err)
	require.True(rt.Runtime())
	require.False(m.Runtime())
}

func TestModel_FinalizeTPCDiscriminator(t *testing.T) {
	require := require.New(t)
	m, err := NewModel()
	require.NoError(err)

	vehicle, err := m.AddEntityType("Vehicle")
	require.NoError(err)
	car, err := m.AddEntityType("Car")
	require.NoError(err)
	require.NoError(car.SetBaseType(vehicle))
	require.NoError(vehicle.SetStrategy(TPC))
	require.NoError(vehicle.SetDiscriminator("kind"))

	require.EqualError(m.Finalize(), "efcore: model error on type Vehicle: TPC hierarchy cannot have a discriminator")
}

func TestModel_StrippedBeforeFinalize(t *testing.T) {
	m, err := NewModel()
	require.NoError(t, err)
	_, err = m.Stripped()
	require.EqualError(t, err, "efcore: model error: cannot strip a model before Finalize")
}

func TestConfigurationSource(t *testing.T) {
	tests := []struct {
		s, other  ConfigurationSource
		overrides bool
	}{
		{SourceExplicit, SourceConvention, true},
		{SourceExplicit, SourceExplicit, true},
		{SourceDataAnnotation, SourceExplicit, false},
		{SourceConvention, SourceDataAnnotation, false},
		{SourceConvention, SourceConvention, true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.overrides, tt.s.Overrides(tt.other), "%s overrides %s", tt.s, tt.other)
	}
	require.Equal(t, "explicit", SourceExplicit.String())
	require.Equal(t, "convention", SourceConvention.String())
	require.Equal(t, "data annotation", SourceDataAnnotation.String())
}

func TestKind(t *testing.T) {
	for k := KindBool; k < endKinds; k++ {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		require.Equal(t, k, parsed)
	}
	_, ok := ParseKind("varchar")
	require.False(t, ok)

	require.True(t, KindInt32.Numeric())
	require.True(t, KindDecimal.Numeric())
	require.False(t, KindString.Numeric())
	require.True(t, KindInt64.Integer())
	require.False(t, KindFloat64.Integer())
	require.False(t, KindInvalid.Valid())
}

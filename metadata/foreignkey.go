package metadata

// ForeignKey links a dependent entity type to a principal entity type.
// The dependent properties correspond positionally to the principal key
// properties. Ownership and row-sharing semantics are derived from the
// flags below by the relational layer.
type ForeignKey struct {
	declaring    *EntityType // dependent side
	principal    *EntityType
	properties   []*Property // dependent properties
	principalKey []*Property

	unique            bool
	ownership         bool
	requiredDependent bool
	navigation        string // principal-to-dependent navigation name
}

// Declaring returns the dependent entity type.
func (fk *ForeignKey) Declaring() *EntityType { return fk.declaring }

// Principal returns the principal entity type.
func (fk *ForeignKey) Principal() *EntityType { return fk.principal }

// Properties returns the dependent-side foreign key properties.
func (fk *ForeignKey) Properties() []*Property { return fk.properties }

// PrincipalKey returns the principal-side key properties, in the same
// order as Properties.
func (fk *ForeignKey) PrincipalKey() []*Property { return fk.principalKey }

// Unique reports whether the relationship is one-to-one.
func (fk *ForeignKey) Unique() bool { return fk.unique }

// SetUnique marks the relationship as one-to-one.
func (fk *ForeignKey) SetUnique(unique bool) *ForeignKey {
	fk.declaring.mutable()
	fk.unique = unique
	return fk
}

// Ownership reports whether the principal owns the dependent type.
func (fk *ForeignKey) Ownership() bool { return fk.ownership }

// SetOwnership marks the relationship as an ownership.
func (fk *ForeignKey) SetOwnership(ownership bool) *ForeignKey {
	fk.declaring.mutable()
	fk.ownership = ownership
	return fk
}

// RequiredDependent reports whether a principal row must have a
// dependent row. Optional dependents make shared columns nullable.
func (fk *ForeignKey) RequiredDependent() bool { return fk.requiredDependent }

// SetRequiredDependent marks the dependent side as required.
func (fk *ForeignKey) SetRequiredDependent(required bool) *ForeignKey {
	fk.declaring.mutable()
	fk.requiredDependent = required
	return fk
}

// Navigation returns the principal-to-dependent navigation name. It is
// the source of the ownership column-name prefix.
func (fk *ForeignKey) Navigation() string { return fk.navigation }

// SetNavigation sets the principal-to-dependent navigation name.
func (fk *ForeignKey) SetNavigation(name string) *ForeignKey {
	fk.declaring.mutable()
	fk.navigation = name
	return fk
}

// PrincipalKeyIsPrimary reports whether the principal key targeted by the
// foreign key is the principal hierarchy's primary key.
func (fk *ForeignKey) PrincipalKeyIsPrimary() bool {
	pk := fk.principal.PrimaryKey()
	if len(pk) != len(fk.principalKey) {
		return false
	}
	for i := range pk {
		if pk[i] != fk.principalKey[i] {
			return false
		}
	}
	return true
}

// PropertiesArePrimaryKey reports whether the dependent-side properties
// are exactly the dependent hierarchy's primary key, in order.
func (fk *ForeignKey) PropertiesArePrimaryKey() bool {
	pk := fk.declaring.PrimaryKey()
	if len(pk) != len(fk.properties) {
		return false
	}
	for i := range pk {
		if pk[i] != fk.properties[i] {
			return false
		}
	}
	return true
}

package relational

import (
	"github.com/kryptine/efcore/metadata"
)

// The facet accessor API. Every facet has a model-wide getter, a
// store-object-aware getter (override first, then the shared-object
// root's configuration, then the property's own), a setter returning
// the value that was applied after precedence, and a provenance query.
// Column order, comment and collation are debug-only facets: they are
// stripped from runtime models and querying them there fails fast.

// ColumnType returns the configured column type of the property, or the
// default type mapping for its kind.
func (m *Model) ColumnType(p *metadata.Property) string {
	if c := m.columns[p]; c != nil {
		if t, ok := c.typeName.get(); ok {
			return t
		}
	}
	return m.DefaultColumnType(p)
}

// ColumnTypeIn returns the column type of the property at the given
// store object.
func (m *Model) ColumnTypeIn(p *metadata.Property, so StoreObject) string {
	if t, ok := facetIn(m, p, so, func(c *ColumnFacets) (string, bool) { return c.typeName.get() }); ok {
		return t
	}
	return m.DefaultColumnType(p)
}

// SetColumnType configures the column type of the property.
func (m *Model) SetColumnType(p *metadata.Property, typeName string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).typeName.set(typeName, src)
}

// SetColumnTypeIn configures the column type of the property for one
// specific store object.
func (m *Model) SetColumnTypeIn(p *metadata.Property, so StoreObject, typeName string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.overridesFor(p, so).typeName.set(typeName, src)
}

// ColumnTypeSource returns the provenance of the configured column type.
func (m *Model) ColumnTypeSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.typeName.sourceOf()
	}
	return 0, false
}

// ColumnOrder returns the configured column order. Debug-only facet.
func (m *Model) ColumnOrder(p *metadata.Property) (int, bool) {
	m.debugFacet("column order")
	if c := m.columns[p]; c != nil {
		return c.order.get()
	}
	return 0, false
}

// ColumnOrderIn returns the column order at the given store object.
// Debug-only facet.
func (m *Model) ColumnOrderIn(p *metadata.Property, so StoreObject) (int, bool) {
	m.debugFacet("column order")
	return facetIn(m, p, so, func(c *ColumnFacets) (int, bool) { return c.order.get() })
}

// SetColumnOrder configures the column order of the property.
func (m *Model) SetColumnOrder(p *metadata.Property, order int, src metadata.ConfigurationSource) int {
	m.mutable()
	return m.columnsFor(p).order.set(order, src)
}

// ColumnOrderSource returns the provenance of the configured column order.
func (m *Model) ColumnOrderSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.order.sourceOf()
	}
	return 0, false
}

// DefaultValue returns the configured default value of the property,
// coerced to the property's declared kind. A nil value means no default
// was configured. A configured value that cannot be converted is an
// error.
func (m *Model) DefaultValue(p *metadata.Property) (any, error) {
	if c := m.columns[p]; c != nil {
		if v, ok := c.defaultValue.get(); ok {
			return coerceValue(v, p)
		}
	}
	return nil, nil
}

// DefaultValueIn returns the default value of the property at the given
// store object, coerced to the property's declared kind.
func (m *Model) DefaultValueIn(p *metadata.Property, so StoreObject) (any, error) {
	if v, ok := facetIn(m, p, so, func(c *ColumnFacets) (any, bool) { return c.defaultValue.get() }); ok {
		return coerceValue(v, p)
	}
	return nil, nil
}

// SetDefaultValue configures the default value of the property.
func (m *Model) SetDefaultValue(p *metadata.Property, value any, src metadata.ConfigurationSource) any {
	m.mutable()
	return m.columnsFor(p).defaultValue.set(value, src)
}

// SetDefaultValueIn configures the default value of the property for one
// specific store object.
func (m *Model) SetDefaultValueIn(p *metadata.Property, so StoreObject, value any, src metadata.ConfigurationSource) any {
	m.mutable()
	return m.overridesFor(p, so).defaultValue.set(value, src)
}

// DefaultValueSource returns the provenance of the configured default value.
func (m *Model) DefaultValueSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.defaultValue.sourceOf()
	}
	return 0, false
}

// DefaultValueSQL returns the SQL expression configured as the column
// default.
func (m *Model) DefaultValueSQL(p *metadata.Property) (string, bool) {
	if c := m.columns[p]; c != nil {
		return c.defaultValueSQL.get()
	}
	return "", false
}

// DefaultValueSQLIn returns the default SQL expression at the given
// store object.
func (m *Model) DefaultValueSQLIn(p *metadata.Property, so StoreObject) (string, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (string, bool) { return c.defaultValueSQL.get() })
}

// SetDefaultValueSQL configures the SQL default expression of the property.
func (m *Model) SetDefaultValueSQL(p *metadata.Property, expr string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).defaultValueSQL.set(expr, src)
}

// SetDefaultValueSQLIn configures the SQL default expression for one
// specific store object.
func (m *Model) SetDefaultValueSQLIn(p *metadata.Property, so StoreObject, expr string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.overridesFor(p, so).defaultValueSQL.set(expr, src)
}

// DefaultValueSQLSource returns the provenance of the SQL default expression.
func (m *Model) DefaultValueSQLSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.defaultValueSQL.sourceOf()
	}
	return 0, false
}

// ComputedColumnSQL returns the expression of a computed column.
func (m *Model) ComputedColumnSQL(p *metadata.Property) (string, bool) {
	if c := m.columns[p]; c != nil {
		return c.computedSQL.get()
	}
	return "", false
}

// ComputedColumnSQLIn returns the computed-column expression at the
// given store object.
func (m *Model) ComputedColumnSQLIn(p *metadata.Property, so StoreObject) (string, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (string, bool) { return c.computedSQL.get() })
}

// SetComputedColumnSQL configures the computed-column expression of the
// property.
func (m *Model) SetComputedColumnSQL(p *metadata.Property, expr string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).computedSQL.set(expr, src)
}

// SetComputedColumnSQLIn configures the computed-column expression for
// one specific store object.
func (m *Model) SetComputedColumnSQLIn(p *metadata.Property, so StoreObject, expr string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.overridesFor(p, so).computedSQL.set(expr, src)
}

// ComputedColumnSQLSource returns the provenance of the computed-column
// expression.
func (m *Model) ComputedColumnSQLSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.computedSQL.sourceOf()
	}
	return 0, false
}

// IsStored reports whether a computed column is stored rather than
// virtual.
func (m *Model) IsStored(p *metadata.Property) (bool, bool) {
	if c := m.columns[p]; c != nil {
		return c.stored.get()
	}
	return false, false
}

// IsStoredIn reports the stored flag at the given store object.
func (m *Model) IsStoredIn(p *metadata.Property, so StoreObject) (bool, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (bool, bool) { return c.stored.get() })
}

// SetStored configures whether the computed column is stored.
func (m *Model) SetStored(p *metadata.Property, stored bool, src metadata.ConfigurationSource) bool {
	m.mutable()
	return m.columnsFor(p).stored.set(stored, src)
}

// StoredSource returns the provenance of the stored flag.
func (m *Model) StoredSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.stored.sourceOf()
	}
	return 0, false
}

// MaxLength returns the configured maximum length of the column.
func (m *Model) MaxLength(p *metadata.Property) (int, bool) {
	if c := m.columns[p]; c != nil {
		return c.maxLength.get()
	}
	return 0, false
}

// MaxLengthIn returns the maximum length at the given store object.
func (m *Model) MaxLengthIn(p *metadata.Property, so StoreObject) (int, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (int, bool) { return c.maxLength.get() })
}

// SetMaxLength configures the maximum length of the column.
func (m *Model) SetMaxLength(p *metadata.Property, length int, src metadata.ConfigurationSource) int {
	m.mutable()
	return m.columnsFor(p).maxLength.set(length, src)
}

// MaxLengthSource returns the provenance of the maximum length.
func (m *Model) MaxLengthSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.maxLength.sourceOf()
	}
	return 0, false
}

// Precision returns the configured precision of the column.
func (m *Model) Precision(p *metadata.Property) (int, bool) {
	if c := m.columns[p]; c != nil {
		return c.precision.get()
	}
	return 0, false
}

// PrecisionIn returns the precision at the given store object.
func (m *Model) PrecisionIn(p *metadata.Property, so StoreObject) (int, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (int, bool) { return c.precision.get() })
}

// SetPrecision configures the precision of the column.
func (m *Model) SetPrecision(p *metadata.Property, precision int, src metadata.ConfigurationSource) int {
	m.mutable()
	return m.columnsFor(p).precision.set(precision, src)
}

// PrecisionSource returns the provenance of the precision.
func (m *Model) PrecisionSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.precision.sourceOf()
	}
	return 0, false
}

// Scale returns the configured scale of the column.
func (m *Model) Scale(p *metadata.Property) (int, bool) {
	if c := m.columns[p]; c != nil {
		return c.scale.get()
	}
	return 0, false
}

// ScaleIn returns the scale at the given store object.
func (m *Model) ScaleIn(p *metadata.Property, so StoreObject) (int, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (int, bool) { return c.scale.get() })
}

// SetScale configures the scale of the column.
func (m *Model) SetScale(p *metadata.Property, scale int, src metadata.ConfigurationSource) int {
	m.mutable()
	return m.columnsFor(p).scale.set(scale, src)
}

// ScaleSource returns the provenance of the scale.
func (m *Model) ScaleSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.scale.sourceOf()
	}
	return 0, false
}

// IsUnicode reports whether a string column stores Unicode text.
func (m *Model) IsUnicode(p *metadata.Property) (bool, bool) {
	if c := m.columns[p]; c != nil {
		return c.unicode.get()
	}
	return false, false
}

// IsUnicodeIn reports the Unicode flag at the given store object.
func (m *Model) IsUnicodeIn(p *metadata.Property, so StoreObject) (bool, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (bool, bool) { return c.unicode.get() })
}

// SetUnicode configures whether the string column stores Unicode text.
func (m *Model) SetUnicode(p *metadata.Property, unicode bool, src metadata.ConfigurationSource) bool {
	m.mutable()
	return m.columnsFor(p).unicode.set(unicode, src)
}

// UnicodeSource returns the provenance of the Unicode flag.
func (m *Model) UnicodeSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.unicode.sourceOf()
	}
	return 0, false
}

// IsFixedLength reports whether the column has a fixed length.
func (m *Model) IsFixedLength(p *metadata.Property) (bool, bool) {
	if c := m.columns[p]; c != nil {
		return c.fixedLength.get()
	}
	return false, false
}

// IsFixedLengthIn reports the fixed-length flag at the given store object.
func (m *Model) IsFixedLengthIn(p *metadata.Property, so StoreObject) (bool, bool) {
	return facetIn(m, p, so, func(c *ColumnFacets) (bool, bool) { return c.fixedLength.get() })
}

// SetFixedLength configures whether the column has a fixed length.
func (m *Model) SetFixedLength(p *metadata.Property, fixed bool, src metadata.ConfigurationSource) bool {
	m.mutable()
	return m.columnsFor(p).fixedLength.set(fixed, src)
}

// FixedLengthSource returns the provenance of the fixed-length flag.
func (m *Model) FixedLengthSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.fixedLength.sourceOf()
	}
	return 0, false
}

// Comment returns the column comment. Debug-only facet.
func (m *Model) Comment(p *metadata.Property) (string, bool) {
	m.debugFacet("column comment")
	if c := m.columns[p]; c != nil {
		return c.comment.get()
	}
	return "", false
}

// CommentIn returns the column comment at the given store object.
// Debug-only facet.
func (m *Model) CommentIn(p *metadata.Property, so StoreObject) (string, bool) {
	m.debugFacet("column comment")
	return facetIn(m, p, so, func(c *ColumnFacets) (string, bool) { return c.comment.get() })
}

// SetComment configures the column comment of the property.
func (m *Model) SetComment(p *metadata.Property, comment string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).comment.set(comment, src)
}

// CommentSource returns the provenance of the column comment.
func (m *Model) CommentSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.comment.sourceOf()
	}
	return 0, false
}

// Collation returns the column collation. Debug-only facet.
func (m *Model) Collation(p *metadata.Property) (string, bool) {
	m.debugFacet("column collation")
	if c := m.columns[p]; c != nil {
		return c.collation.get()
	}
	return "", false
}

// CollationIn returns the column collation at the given store object.
// Debug-only facet.
func (m *Model) CollationIn(p *metadata.Property, so StoreObject) (string, bool) {
	m.debugFacet("column collation")
	return facetIn(m, p, so, func(c *ColumnFacets) (string, bool) { return c.collation.get() })
}

// SetCollation configures the column collation of the property.
func (m *Model) SetCollation(p *metadata.Property, collation string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.columnsFor(p).collation.set(collation, src)
}

// CollationSource returns the provenance of the column collation.
func (m *Model) CollationSource(p *metadata.Property) (metadata.ConfigurationSource, bool) {
	if c := m.columns[p]; c != nil {
		return c.collation.sourceOf()
	}
	return 0, false
}

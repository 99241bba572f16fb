package relational

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/kryptine/efcore/metadata"
)

// Kind identifies the class of store object an entity type maps to.
type Kind int

const (
	// KindTable is a database table.
	KindTable Kind = iota
	// KindView is a database view.
	KindView
	// KindFunction is a table-valued function.
	KindFunction
	// KindSQLQuery is an ad-hoc SQL query.
	KindSQLQuery
)

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindView:
		return "View"
	case KindFunction:
		return "Function"
	case KindSQLQuery:
		return "SqlQuery"
	default:
		return "Unknown"
	}
}

// StoreObject identifies a table, view, function or SQL query by kind
// and name, plus schema for tables and views. It is an immutable value
// type: two identifiers are equal iff kind, name and schema match.
type StoreObject struct {
	kind   Kind
	name   string
	schema string
}

// Table returns the identifier of a table.
func Table(name, schema string) StoreObject {
	return StoreObject{kind: KindTable, name: name, schema: schema}
}

// View returns the identifier of a view.
func View(name, schema string) StoreObject {
	return StoreObject{kind: KindView, name: name, schema: schema}
}

// Function returns the identifier of a table-valued function.
// Functions carry no schema.
func Function(name string) StoreObject {
	return StoreObject{kind: KindFunction, name: name}
}

// SQLQuery returns the identifier of an ad-hoc SQL query.
func SQLQuery(name string) StoreObject {
	return StoreObject{kind: KindSQLQuery, name: name}
}

// Kind returns the store object kind.
func (o StoreObject) Kind() Kind { return o.kind }

// Name returns the store object name.
func (o StoreObject) Name() string { return o.name }

// Schema returns the store object schema, where applicable.
func (o StoreObject) Schema() string { return o.schema }

// Valid reports whether the identifier names an object.
func (o StoreObject) Valid() bool { return o.name != "" }

// String implements the fmt.Stringer interface.
func (o StoreObject) String() string {
	if o.schema != "" {
		return fmt.Sprintf("%s.%s (%s)", o.schema, o.name, o.kind)
	}
	return fmt.Sprintf("%s (%s)", o.name, o.kind)
}

var rules = inflect.NewDefaultRuleset()

// objectNames holds the configured store object names of one entity type.
type objectNames struct {
	table       facet[string]
	tableSchema facet[string]
	view        facet[string]
	viewSchema  facet[string]
	function    facet[string]
	sqlQuery    facet[string]
}

// StoreObjectFor returns the store object the entity type maps to for
// the given kind, or false if the type is unmapped for that kind.
//
// Tables have default names; views, functions and SQL queries are mapped
// only when configured explicitly.
func (m *Model) StoreObjectFor(et *metadata.EntityType, kind Kind) (StoreObject, bool) {
	switch kind {
	case KindTable:
		name, ok := m.TableName(et)
		if !ok {
			return StoreObject{}, false
		}
		return Table(name, m.TableSchema(et)), true
	case KindView:
		o := m.objects[et]
		if o == nil {
			return StoreObject{}, false
		}
		name, ok := o.view.get()
		if !ok {
			return StoreObject{}, false
		}
		schema, _ := o.viewSchema.get()
		if schema == "" {
			schema = m.base.DefaultSchema()
		}
		return View(name, schema), true
	case KindFunction:
		o := m.objects[et]
		if o == nil {
			return StoreObject{}, false
		}
		name, ok := o.function.get()
		if !ok {
			return StoreObject{}, false
		}
		return Function(name), true
	case KindSQLQuery:
		o := m.objects[et]
		if o == nil {
			return StoreObject{}, false
		}
		name, ok := o.sqlQuery.get()
		if !ok {
			return StoreObject{}, false
		}
		return SQLQuery(name), true
	default:
		panic(fmt.Sprintf("efcore: unsupported store object kind %d", kind))
	}
}

// TableName returns the table name the entity type maps to, or false if
// the type maps to no table (an abstract TPC type).
//
// The default name walks the hierarchy and ownership configuration: TPH
// types share the root's table, owned one-to-one dependents share their
// owner's table, everything else gets a pluralized form of the type name.
func (m *Model) TableName(et *metadata.EntityType) (string, bool) {
	if o := m.objects[et]; o != nil {
		if name, ok := o.table.get(); ok {
			return name, true
		}
	}
	return m.defaultTableName(et, 0)
}

func (m *Model) defaultTableName(et *metadata.EntityType, depth int) (string, bool) {
	if depth > maxHops {
		return "", false
	}
	if et.BaseType() != nil && et.Strategy() == metadata.TPH {
		return m.tableNameAt(et.Root(), depth+1)
	}
	if et.Abstract() && et.Strategy() == metadata.TPC {
		return "", false
	}
	if fk := et.FindOwnership(); fk != nil && fk.Unique() {
		return m.tableNameAt(fk.Principal(), depth+1)
	}
	return Truncate(rules.Underscore(rules.Pluralize(et.Name())), m.base.MaxIdentifierLength()), true
}

func (m *Model) tableNameAt(et *metadata.EntityType, depth int) (string, bool) {
	if o := m.objects[et]; o != nil {
		if name, ok := o.table.get(); ok {
			return name, true
		}
	}
	return m.defaultTableName(et, depth)
}

// TableSchema returns the schema of the entity type's table, defaulting
// to the model's default schema.
func (m *Model) TableSchema(et *metadata.EntityType) string {
	if o := m.objects[et]; o != nil {
		if schema, ok := o.tableSchema.get(); ok {
			return schema
		}
	}
	if owner := tableSource(et); owner != et {
		return m.TableSchema(owner)
	}
	return m.base.DefaultSchema()
}

// tableSource returns the entity type whose configuration decides the
// table of et: the hierarchy root for TPH derived types, the owner for
// owned one-to-one dependents, otherwise et itself.
func tableSource(et *metadata.EntityType) *metadata.EntityType {
	if et.BaseType() != nil && et.Strategy() == metadata.TPH {
		return et.Root()
	}
	if fk := et.FindOwnership(); fk != nil && fk.Unique() {
		return fk.Principal()
	}
	return et
}

// SetTableName configures the table name of the entity type.
func (m *Model) SetTableName(et *metadata.EntityType, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).table.set(name, src)
}

// SetTableSchema configures the table schema of the entity type.
func (m *Model) SetTableSchema(et *metadata.EntityType, schema string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).tableSchema.set(schema, src)
}

// SetViewName configures the view name of the entity type.
func (m *Model) SetViewName(et *metadata.EntityType, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).view.set(name, src)
}

// SetViewSchema configures the view schema of the entity type.
func (m *Model) SetViewSchema(et *metadata.EntityType, schema string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).viewSchema.set(schema, src)
}

// SetFunctionName configures the table-valued function of the entity type.
func (m *Model) SetFunctionName(et *metadata.EntityType, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).function.set(name, src)
}

// SetSQLQuery configures the ad-hoc SQL query of the entity type.
func (m *Model) SetSQLQuery(et *metadata.EntityType, name string, src metadata.ConfigurationSource) string {
	m.mutable()
	return m.objectsFor(et).sqlQuery.set(name, src)
}

// TableNameSource returns the provenance of the entity type's configured
// table name.
func (m *Model) TableNameSource(et *metadata.EntityType) (metadata.ConfigurationSource, bool) {
	if o := m.objects[et]; o != nil {
		return o.table.sourceOf()
	}
	return 0, false
}

// rowInternalForeignKeys returns the foreign keys through which et shares
// rows of the given store object with a principal type: one-to-one,
// primary-key-to-primary-key relationships whose principal maps to the
// same object. Functions and SQL queries never carry row-internal
// semantics.
func (m *Model) rowInternalForeignKeys(et *metadata.EntityType, so StoreObject) []*metadata.ForeignKey {
	if so.kind != KindTable && so.kind != KindView {
		return nil
	}
	var fks []*metadata.ForeignKey
	for _, fk := range et.ForeignKeys() {
		if fk.Principal() == et || !fk.Unique() ||
			!fk.PrincipalKeyIsPrimary() || !fk.PropertiesArePrimaryKey() {
			continue
		}
		if obj, ok := m.StoreObjectFor(fk.Principal(), so.kind); ok && obj == so {
			fks = append(fks, fk)
		}
	}
	return fks
}

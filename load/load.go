// Package load compiles a declarative YAML manifest into a finalized
// metadata model with its relational mapping configured. It is the
// declarative counterpart of building the model through the metadata
// package directly.
package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kryptine/efcore/metadata"
	"github.com/kryptine/efcore/relational"
)

// Manifest is the root of the YAML model description.
type Manifest struct {
	MaxIdentifierLength int      `yaml:"maxIdentifierLength"`
	DefaultSchema       string   `yaml:"defaultSchema"`
	Entities            []Entity `yaml:"entities"`
}

// Entity describes one entity type.
type Entity struct {
	Name          string       `yaml:"name"`
	Base          string       `yaml:"base"`
	Abstract      bool         `yaml:"abstract"`
	Strategy      string       `yaml:"strategy"`
	Discriminator string       `yaml:"discriminator"`
	Table         string       `yaml:"table"`
	Schema        string       `yaml:"schema"`
	View          string       `yaml:"view"`
	Function      string       `yaml:"function"`
	SQLQuery      string       `yaml:"sqlQuery"`
	PrimaryKey    []string     `yaml:"primaryKey"`
	Properties    []Property   `yaml:"properties"`
	ForeignKeys   []ForeignKey `yaml:"foreignKeys"`
}

// Property describes one declared property and its explicit column facets.
type Property struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Nullable         bool   `yaml:"nullable"`
	ConcurrencyToken bool   `yaml:"concurrencyToken"`
	Column           string `yaml:"column"`
	ColumnType       string `yaml:"columnType"`
	MaxLength        int    `yaml:"maxLength"`
	FixedLength      bool   `yaml:"fixedLength"`
	Precision        int    `yaml:"precision"`
	Scale            int    `yaml:"scale"`
	Default          any    `yaml:"default"`
	DefaultSQL       string `yaml:"defaultSQL"`
	ComputedSQL      string `yaml:"computedSQL"`
	Stored           bool   `yaml:"stored"`
	Comment          string `yaml:"comment"`
	Collation        string `yaml:"collation"`
}

// ForeignKey describes one relationship from the declaring (dependent)
// entity to a principal entity.
type ForeignKey struct {
	Principal         string   `yaml:"principal"`
	Properties        []string `yaml:"properties"`
	PrincipalKey      []string `yaml:"principalKey"`
	Unique            bool     `yaml:"unique"`
	Ownership         bool     `yaml:"ownership"`
	RequiredDependent bool     `yaml:"requiredDependent"`
	Navigation        string   `yaml:"navigation"`
}

// Parse decodes a manifest from YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("efcore: parsing manifest: %w", err)
	}
	return &m, nil
}

// ReadFile decodes a manifest from a YAML file.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("efcore: reading manifest: %w", err)
	}
	return Parse(data)
}

// Build compiles the manifest into a finalized, relationally mapped
// model. All manifest-supplied configuration is recorded as explicit.
func (m *Manifest) Build() (*relational.Model, error) {
	var opts []metadata.Option
	if m.MaxIdentifierLength > 0 {
		opts = append(opts, metadata.WithMaxIdentifierLength(m.MaxIdentifierLength))
	}
	if m.DefaultSchema != "" {
		opts = append(opts, metadata.WithDefaultSchema(m.DefaultSchema))
	}
	model, err := metadata.NewModel(opts...)
	if err != nil {
		return nil, err
	}
	rm := relational.Extend(model)

	types := make(map[string]*metadata.EntityType, len(m.Entities))
	for _, e := range m.Entities {
		et, err := model.AddEntityType(e.Name)
		if err != nil {
			return nil, err
		}
		types[e.Name] = et
	}
	for _, e := range m.Entities {
		et := types[e.Name]
		if e.Base != "" {
			base := types[e.Base]
			if base == nil {
				return nil, metadata.NewModelError(e.Name, fmt.Sprintf("unknown base type %q", e.Base), nil)
			}
			if err := et.SetBaseType(base); err != nil {
				return nil, err
			}
		}
		if e.Abstract {
			et.SetAbstract(true)
		}
		if e.Strategy != "" {
			if err := et.SetStrategy(metadata.MappingStrategy(e.Strategy)); err != nil {
				return nil, err
			}
		}
		if e.Discriminator != "" {
			if err := et.SetDiscriminator(e.Discriminator); err != nil {
				return nil, err
			}
		}
		for _, pd := range e.Properties {
			kind, ok := metadata.ParseKind(pd.Type)
			if !ok {
				return nil, metadata.NewPropertyError(e.Name, pd.Name, fmt.Sprintf("unknown property type %q", pd.Type), nil)
			}
			p, err := et.AddProperty(pd.Name, kind)
			if err != nil {
				return nil, err
			}
			p.SetNullable(pd.Nullable).SetConcurrencyToken(pd.ConcurrencyToken)
			applyFacets(rm, p, pd)
		}
	}
	// Primary keys after all properties exist, including inherited ones.
	for _, e := range m.Entities {
		if len(e.PrimaryKey) > 0 {
			if err := types[e.Name].SetPrimaryKey(e.PrimaryKey...); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range m.Entities {
		et := types[e.Name]
		for _, fd := range e.ForeignKeys {
			principal := types[fd.Principal]
			if principal == nil {
				return nil, metadata.NewForeignKeyError(e.Name, fd.Principal, "unknown principal type", nil)
			}
			fk, err := et.AddForeignKey(principal, fd.Properties, fd.PrincipalKey...)
			if err != nil {
				return nil, err
			}
			fk.SetUnique(fd.Unique).
				SetOwnership(fd.Ownership).
				SetRequiredDependent(fd.RequiredDependent).
				SetNavigation(fd.Navigation)
		}
		if e.Table != "" {
			rm.SetTableName(et, e.Table, metadata.SourceExplicit)
		}
		if e.Schema != "" {
			rm.SetTableSchema(et, e.Schema, metadata.SourceExplicit)
		}
		if e.View != "" {
			rm.SetViewName(et, e.View, metadata.SourceExplicit)
		}
		if e.Function != "" {
			rm.SetFunctionName(et, e.Function, metadata.SourceExplicit)
		}
		if e.SQLQuery != "" {
			rm.SetSQLQuery(et, e.SQLQuery, metadata.SourceExplicit)
		}
	}
	if err := model.Finalize(); err != nil {
		return nil, err
	}
	return rm, nil
}

func applyFacets(rm *relational.Model, p *metadata.Property, pd Property) {
	if pd.Column != "" {
		rm.SetColumnName(p, pd.Column, metadata.SourceExplicit)
	}
	if pd.ColumnType != "" {
		rm.SetColumnType(p, pd.ColumnType, metadata.SourceExplicit)
	}
	if pd.MaxLength > 0 {
		rm.SetMaxLength(p, pd.MaxLength, metadata.SourceExplicit)
	}
	if pd.FixedLength {
		rm.SetFixedLength(p, true, metadata.SourceExplicit)
	}
	if pd.Precision > 0 {
		rm.SetPrecision(p, pd.Precision, metadata.SourceExplicit)
	}
	if pd.Scale > 0 {
		rm.SetScale(p, pd.Scale, metadata.SourceExplicit)
	}
	if pd.Default != nil {
		rm.SetDefaultValue(p, pd.Default, metadata.SourceExplicit)
	}
	if pd.DefaultSQL != "" {
		rm.SetDefaultValueSQL(p, pd.DefaultSQL, metadata.SourceExplicit)
	}
	if pd.ComputedSQL != "" {
		rm.SetComputedColumnSQL(p, pd.ComputedSQL, metadata.SourceExplicit)
		if pd.Stored {
			rm.SetStored(p, true, metadata.SourceExplicit)
		}
	}
	if pd.Comment != "" {
		rm.SetComment(p, pd.Comment, metadata.SourceExplicit)
	}
	if pd.Collation != "" {
		rm.SetCollation(p, pd.Collation, metadata.SourceExplicit)
	}
}

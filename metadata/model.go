package metadata

// DefaultMaxIdentifierLength is the store identifier length limit applied
// when no explicit limit is configured on the model.
const DefaultMaxIdentifierLength = 128

// ConfigurationSource records where a configuration value came from and is
// used for override precedence: an explicit value is never replaced by a
// convention, a convention never replaces a data annotation, and so on.
type ConfigurationSource int

const (
	// SourceConvention marks values computed by model-building conventions.
	SourceConvention ConfigurationSource = iota
	// SourceDataAnnotation marks values read from declarative annotations.
	SourceDataAnnotation
	// SourceExplicit marks values configured explicitly by the user.
	SourceExplicit
)

// Overrides reports whether a value from source s may replace a value
// previously set from the other source.
func (s ConfigurationSource) Overrides(other ConfigurationSource) bool {
	return s >= other
}

// String implements the fmt.Stringer interface.
func (s ConfigurationSource) String() string {
	switch s {
	case SourceConvention:
		return "convention"
	case SourceDataAnnotation:
		return "data annotation"
	case SourceExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// MappingStrategy determines how an inheritance hierarchy maps to tables.
type MappingStrategy string

const (
	// TPH maps the whole hierarchy to a single table distinguished
	// by a discriminator column.
	TPH MappingStrategy = "tph"
	// TPT maps each type to its own table; derived rows join to base
	// rows by shared primary key.
	TPT MappingStrategy = "tpt"
	// TPC maps each concrete type to its own complete table.
	TPC MappingStrategy = "tpc"
)

// Valid reports whether the strategy is one of the supported values.
func (s MappingStrategy) Valid() bool {
	switch s {
	case TPH, TPT, TPC:
		return true
	}
	return false
}

// Model is the root of the metadata graph. It is mutated by a single
// writer during model building and becomes immutable after Finalize;
// all reads against a finalized model are safe for concurrent use.
type Model struct {
	types   map[string]*EntityType
	ordered []*EntityType

	maxIdentifierLength int
	defaultSchema       string

	frozen  bool
	runtime bool
}

// NewModel creates an empty model configured by the given options.
func NewModel(opts ...Option) (*Model, error) {
	m := &Model{
		types:               make(map[string]*EntityType),
		maxIdentifierLength: DefaultMaxIdentifierLength,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MaxIdentifierLength returns the maximum store identifier length
// configured for the model.
func (m *Model) MaxIdentifierLength() int { return m.maxIdentifierLength }

// DefaultSchema returns the default store schema, or empty if none is set.
func (m *Model) DefaultSchema() string { return m.defaultSchema }

// Frozen reports whether the model has been finalized.
func (m *Model) Frozen() bool { return m.frozen }

// Runtime reports whether this is a stripped runtime model. Debug-only
// relational facets are not available on runtime models.
func (m *Model) Runtime() bool { return m.runtime }

// EntityType returns the entity type with the given name, or nil.
func (m *Model) EntityType(name string) *EntityType {
	return m.types[name]
}

// EntityTypes returns all entity types in insertion order.
func (m *Model) EntityTypes() []*EntityType {
	return m.ordered
}

// AddEntityType adds a new entity type to the model.
func (m *Model) AddEntityType(name string) (*EntityType, error) {
	if m.frozen {
		return nil, ErrFrozenModel
	}
	if name == "" {
		return nil, NewModelError("", "entity type name cannot be empty", nil)
	}
	if m.types[name] != nil {
		return nil, NewModelError(name, "entity type redeclared", nil)
	}
	et := &EntityType{
		model:     m,
		name:      name,
		propIndex: make(map[string]*Property),
	}
	m.types[name] = et
	m.ordered = append(m.ordered, et)
	return et, nil
}

// Finalize applies the remaining model conventions and freezes the model.
// After Finalize returns, the model and everything reachable from it is
// read-only.
func (m *Model) Finalize() error {
	if m.frozen {
		return ErrFrozenModel
	}
	for _, et := range m.ordered {
		if et.base != nil {
			continue
		}
		// TPH hierarchies get a discriminator by convention unless
		// the root configured one.
		if len(et.derived) > 0 && et.Strategy() == TPH && et.discriminator == "" {
			et.discriminator = DefaultDiscriminatorName
		}
		if et.discriminator != "" && et.Strategy() == TPC {
			return NewModelError(et.name, "TPC hierarchy cannot have a discriminator", nil)
		}
	}
	for _, et := range m.ordered {
		for _, fk := range et.foreignKeys {
			if fk.ownership && et.FindOwnership() != fk {
				return NewForeignKeyError(et.name, fk.principal.name, "entity type has more than one ownership", nil)
			}
		}
	}
	m.frozen = true
	return nil
}

// Stripped returns a runtime view of a finalized model. The entity types
// are shared with the receiver; only the runtime flag differs. Accessing
// debug-only relational facets through a stripped model fails fast.
func (m *Model) Stripped() (*Model, error) {
	if !m.frozen {
		return nil, NewModelError("", "cannot strip a model before Finalize", nil)
	}
	rm := *m
	rm.runtime = true
	return &rm, nil
}

package metadata

// Option configures model building.
type Option func(*Model) error

// WithMaxIdentifierLength sets the maximum length of store identifiers
// (table and column names) produced for the model. Longer default names
// are truncated with a deterministic hash tag.
func WithMaxIdentifierLength(n int) Option {
	return func(m *Model) error {
		if n < 16 {
			return NewModelError("", "maximum identifier length must be at least 16", nil)
		}
		m.maxIdentifierLength = n
		return nil
	}
}

// WithDefaultSchema sets the default store schema for the model.
func WithDefaultSchema(schema string) Option {
	return func(m *Model) error {
		m.defaultSchema = schema
		return nil
	}
}

package metadata

// Kind is the declared value kind of a property. It drives the default
// column type mapping in the relational layer.
type Kind int

const (
	// KindInvalid is the zero Kind and is never valid.
	KindInvalid Kind = iota
	// KindBool is a boolean property.
	KindBool
	// KindInt16 is a 16-bit integer property.
	KindInt16
	// KindInt32 is a 32-bit integer property.
	KindInt32
	// KindInt64 is a 64-bit integer property.
	KindInt64
	// KindFloat32 is a single-precision float property.
	KindFloat32
	// KindFloat64 is a double-precision float property.
	KindFloat64
	// KindDecimal is an exact numeric property with precision and scale.
	KindDecimal
	// KindString is a text property.
	KindString
	// KindBytes is a binary property.
	KindBytes
	// KindTime is a timestamp property.
	KindTime
	// KindUUID is a UUID property.
	KindUUID
	// KindJSON is a JSON document property.
	KindJSON

	endKinds
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindDecimal: "decimal",
	KindString:  "string",
	KindBytes:   "bytes",
	KindTime:    "time",
	KindUUID:    "uuid",
	KindJSON:    "json",
}

// String implements the fmt.Stringer interface.
func (k Kind) String() string {
	if k < 0 || k >= endKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return k > KindInvalid && k < endKinds }

// Numeric reports whether k is a numeric kind.
func (k Kind) Numeric() bool {
	switch k {
	case KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64, KindDecimal:
		return true
	}
	return false
}

// Integer reports whether k is an integer kind.
func (k Kind) Integer() bool {
	switch k {
	case KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for k := KindBool; k < endKinds; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Property belongs to exactly one declaring entity type. It is mutated
// during model building and read-only after the model is finalized.
type Property struct {
	declaring *EntityType
	name      string
	kind      Kind

	nullable    bool
	concurrency bool
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Declaring returns the entity type the property is declared on.
func (p *Property) Declaring() *EntityType { return p.declaring }

// Kind returns the declared value kind of the property.
func (p *Property) Kind() Kind { return p.kind }

// Nullable reports whether the property itself allows null values.
// The relational layer may still map a non-nullable property to a
// nullable column; see the default nullability rules there.
func (p *Property) Nullable() bool { return p.nullable }

// SetNullable marks the property as allowing null values.
func (p *Property) SetNullable(nullable bool) *Property {
	p.declaring.mutable()
	p.nullable = nullable
	return p
}

// ConcurrencyToken reports whether the property is a concurrency token.
func (p *Property) ConcurrencyToken() bool { return p.concurrency }

// SetConcurrencyToken marks the property as a concurrency token.
func (p *Property) SetConcurrencyToken(token bool) *Property {
	p.declaring.mutable()
	p.concurrency = token
	return p
}

// IsPrimaryKey reports whether the property is part of the primary key
// of its hierarchy.
func (p *Property) IsPrimaryKey() bool {
	for _, kp := range p.declaring.PrimaryKey() {
		if kp == p {
			return true
		}
	}
	return false
}

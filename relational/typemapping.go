package relational

import (
	"fmt"
	"reflect"
	"time"

	"ariga.io/atlas/sql/postgres"
	"github.com/google/uuid"

	"github.com/kryptine/efcore/metadata"
)

// DefaultColumnType maps the property's declared kind and facets to a
// concrete column type. Strings honor the max-length and fixed-length
// facets, decimals honor precision and scale.
func (m *Model) DefaultColumnType(p *metadata.Property) string {
	switch p.Kind() {
	case metadata.KindBool:
		return postgres.TypeBoolean
	case metadata.KindInt16:
		return postgres.TypeSmallInt
	case metadata.KindInt32:
		return postgres.TypeInteger
	case metadata.KindInt64:
		return postgres.TypeBigInt
	case metadata.KindFloat32:
		return postgres.TypeReal
	case metadata.KindFloat64:
		return postgres.TypeDouble
	case metadata.KindDecimal:
		precision, ok := m.Precision(p)
		if !ok {
			return postgres.TypeNumeric
		}
		if scale, ok := m.Scale(p); ok {
			return fmt.Sprintf("%s(%d,%d)", postgres.TypeNumeric, precision, scale)
		}
		return fmt.Sprintf("%s(%d)", postgres.TypeNumeric, precision)
	case metadata.KindString:
		length, ok := m.MaxLength(p)
		if !ok {
			return postgres.TypeText
		}
		if fixed, _ := m.IsFixedLength(p); fixed {
			return fmt.Sprintf("%s(%d)", postgres.TypeChar, length)
		}
		return fmt.Sprintf("%s(%d)", postgres.TypeVarChar, length)
	case metadata.KindBytes:
		return postgres.TypeBytea
	case metadata.KindTime:
		return postgres.TypeTimestamp
	case metadata.KindUUID:
		return postgres.TypeUUID
	case metadata.KindJSON:
		return postgres.TypeJSONB
	default:
		panic(fmt.Sprintf("efcore: no column type mapping for kind %s", p.Kind()))
	}
}

// coerceValue converts a configured default value to the property's
// declared kind. Integer kinds accept any Go integer, float kinds any
// Go number, UUID kinds accept uuid.UUID values, 16-byte arrays and
// parseable strings. A value that cannot be converted is a fatal,
// descriptive error.
func coerceValue(v any, p *metadata.Property) (any, error) {
	fail := func(cause error) (any, error) {
		return nil, &ValueConversionError{
			Value:    v,
			Property: p.Name(),
			Type:     p.Declaring().Name(),
			Kind:     p.Kind(),
			Cause:    cause,
		}
	}
	switch p.Kind() {
	case metadata.KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case metadata.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case metadata.KindInt16, metadata.KindInt32, metadata.KindInt64:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return int64(rv.Uint()), nil
		}
	case metadata.KindFloat32, metadata.KindFloat64, metadata.KindDecimal:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), nil
		}
	case metadata.KindBytes:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
	case metadata.KindTime:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	case metadata.KindUUID:
		switch u := v.(type) {
		case uuid.UUID:
			return u, nil
		case [16]byte:
			return uuid.UUID(u), nil
		case string:
			parsed, err := uuid.Parse(u)
			if err != nil {
				return fail(err)
			}
			return parsed, nil
		}
	case metadata.KindJSON:
		switch v.(type) {
		case string, []byte:
			return v, nil
		}
	}
	return fail(nil)
}

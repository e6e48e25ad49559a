package typehandler

import (
	"database/sql/driver"
	"time"
)

// StringHandler converts string parameters and text columns.
type StringHandler struct{}

func (StringHandler) Value(v any) (driver.Value, error) {
	s, ok := v.(string)
	if !ok {
		return nil, conversionError("StringHandler", v)
	}
	return s, nil
}

func (StringHandler) Scan(src any) (any, error) {
	switch s := src.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case nil:
		return "", nil
	default:
		return nil, conversionError("StringHandler", src)
	}
}

// Int64Handler converts integer parameters and columns. Smaller integer
// kinds widen to int64 on the way in.
type Int64Handler struct{}

func (Int64Handler) Value(v any) (driver.Value, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	default:
		return nil, conversionError("Int64Handler", v)
	}
}

func (Int64Handler) Scan(src any) (any, error) {
	switch n := src.(type) {
	case int64:
		return n, nil
	case nil:
		return int64(0), nil
	default:
		return nil, conversionError("Int64Handler", src)
	}
}

// BoolHandler converts boolean parameters and columns, accepting the
// integer encodings drivers commonly use.
type BoolHandler struct{}

func (BoolHandler) Value(v any) (driver.Value, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, conversionError("BoolHandler", v)
	}
	return b, nil
}

func (BoolHandler) Scan(src any) (any, error) {
	switch b := src.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case nil:
		return false, nil
	default:
		return nil, conversionError("BoolHandler", src)
	}
}

// TimeHandler converts time.Time parameters and timestamp columns.
type TimeHandler struct{}

func (TimeHandler) Value(v any) (driver.Value, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, conversionError("TimeHandler", v)
	}
	return t, nil
}

func (TimeHandler) Scan(src any) (any, error) {
	switch t := src.(type) {
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, nil
	default:
		return nil, conversionError("TimeHandler", src)
	}
}

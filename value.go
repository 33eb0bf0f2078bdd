package cmdtree

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// parseValue converts the string form of a value into T. Supported types are the Go scalars
// (string, bool, signed and unsigned integers, floats), time.Duration, and any type whose pointer
// implements [encoding.TextUnmarshaler].
func parseValue[T any](s string) (T, error) {
	var v T
	if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return v, err
		}
		return v, nil
	}

	var (
		out any
		err error
	)
	switch any(v).(type) {
	case string:
		out = s
	case bool:
		out, err = strconv.ParseBool(s)
	case time.Duration:
		out, err = time.ParseDuration(s)
	case int:
		var n int64
		n, err = strconv.ParseInt(s, 10, strconv.IntSize)
		out = int(n)
	case int8:
		var n int64
		n, err = strconv.ParseInt(s, 10, 8)
		out = int8(n)
	case int16:
		var n int64
		n, err = strconv.ParseInt(s, 10, 16)
		out = int16(n)
	case int32:
		var n int64
		n, err = strconv.ParseInt(s, 10, 32)
		out = int32(n)
	case int64:
		out, err = strconv.ParseInt(s, 10, 64)
	case uint:
		var n uint64
		n, err = strconv.ParseUint(s, 10, strconv.IntSize)
		out = uint(n)
	case uint8:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 8)
		out = uint8(n)
	case uint16:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 16)
		out = uint16(n)
	case uint32:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 32)
		out = uint32(n)
	case uint64:
		out, err = strconv.ParseUint(s, 10, 64)
	case float32:
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		out = float32(f)
	case float64:
		out, err = strconv.ParseFloat(s, 64)
	default:
		return v, fmt.Errorf("unsupported value type %s", typeName[T]())
	}
	if err != nil {
		// strconv errors repeat the function name and input, which the caller already reports.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return v, numErr.Err
		}
		return v, err
	}
	return out.(T), nil
}

// formatValue returns the string form of v such that parseValue[T](formatValue(v)) == v.
func formatValue[T any](v T) string {
	if m, ok := any(v).(encoding.TextMarshaler); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	if m, ok := any(&v).(encoding.TextMarshaler); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	switch x := any(v).(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Duration:
		return x.String()
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// typeName returns a short, user-facing name for T, as shown in help text.
func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t == reflect.TypeFor[time.Duration]() {
		return "duration"
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

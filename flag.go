package cmdtree

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Flag is an order-independent input, supplied as --name=value. Boolean flags may also be
// supplied as --name, or by a single-character alias made of the first letter of the name in
// either case (-c or -C for "create").
//
// Flags are always optional. A boolean flag defaults to false.
type Flag[T any] struct {
	base[T]
}

var _ Input = (*Flag[bool])(nil)

// NewFlag returns an optional flag named name. Names are given without leading dashes.
func NewFlag[T any](name string) *Flag[T] {
	f := &Flag[T]{base: base[T]{name: name}}
	if _, ok := any(f.def).(bool); ok {
		f.hasDefault = true
	}
	return f
}

// BoolFlag is shorthand for NewFlag[bool].
func BoolFlag(name string) *Flag[bool] {
	return NewFlag[bool](name)
}

// Describe sets the description shown in help text and shell completions.
func (f *Flag[T]) Describe(description string) *Flag[T] {
	f.description = description
	return f
}

// Default sets the value reported when the flag is absent.
func (f *Flag[T]) Default(v T) *Flag[T] {
	f.def = v
	f.hasDefault = true
	return f
}

// Completor sets the function used to complete the value after --name=.
func (f *Flag[T]) Completor(fn CompleteFunc) *Flag[T] {
	f.completor = fn
	return f
}

func (f *Flag[T]) Kind() InputKind { return KindFlag }

func (f *Flag[T]) IsBoolFlag() bool {
	_, ok := any(f.def).(bool)
	return ok
}

// Parse claims --name (boolean flags), --name=value, or the short alias (boolean flags), in that
// order. Any other token is not this flag's concern.
func (f *Flag[T]) Parse(token string) (bool, error) {
	if rest, ok := strings.CutPrefix(token, "--"); ok {
		if rest == f.name && f.IsBoolFlag() {
			return true, f.set("true")
		}
		name, value, hasValue := strings.Cut(rest, "=")
		if !hasValue || name != f.name {
			return false, nil
		}
		if err := f.set(value); err != nil {
			return false, newInputError(ErrInvalidValue, f, token,
				fmt.Errorf("invalid value %q for flag --%s: %w", value, f.name, err))
		}
		return true, nil
	}
	if f.IsBoolFlag() && f.matchesAlias(token) {
		return true, f.set("true")
	}
	return false, nil
}

// matchesAlias reports whether token is "-" followed by the first letter of the flag name,
// compared case-insensitively.
func (f *Flag[T]) matchesAlias(token string) bool {
	if utf8.RuneCountInString(token) != 2 || token[0] != '-' || f.name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(f.name)
	return strings.EqualFold(token[1:], string(first))
}

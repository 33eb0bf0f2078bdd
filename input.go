package cmdtree

import (
	"fmt"
	"strings"
)

// InputKind distinguishes the two kinds of [Input].
type InputKind int

const (
	// KindFlag is an order-independent input identified by --name or a short alias.
	KindFlag InputKind = iota + 1
	// KindArg is a positional input matched by declaration order.
	KindArg
)

func (k InputKind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindArg:
		return "argument"
	default:
		return "unknown"
	}
}

// Input is a named unit that consumes zero or one token and yields a typed value or its default.
//
// The set of implementations is closed: only [*Arg] and [*Flag] satisfy it.
type Input interface {
	// Kind reports whether this input is a flag or a positional argument.
	Kind() InputKind

	// Parse claims token if it is shaped for this input. It returns false, nil when the token is
	// not this input's concern, so the caller can offer it to the next input. It returns an error
	// when the shape matched but the value could not be converted.
	Parse(token string) (bool, error)

	// Complete returns candidates for the value portion of a partially typed token. Every
	// candidate starts with partial.
	Complete(partial string) ([]string, error)

	HasDefault() bool
	Parsed() bool
	IsBoolFlag() bool
	Description() string
	DisplayName() string
	TypeName() string

	// DefaultString is the string form of the default value, or "" when there is none.
	DefaultString() string

	reset()
}

// CompleteFunc returns completion candidates for a partially typed value.
type CompleteFunc func(partial string) ([]string, error)

// CompleteFrom returns a [CompleteFunc] that offers every option starting with the partial value.
func CompleteFrom(options ...string) CompleteFunc {
	return func(partial string) ([]string, error) {
		return filterPrefix(options, partial), nil
	}
}

func filterPrefix(options []string, prefix string) []string {
	var out []string
	for _, o := range options {
		if strings.HasPrefix(o, prefix) {
			out = append(out, o)
		}
	}
	return out
}

// completer is implemented by value types that know their own completion set, such as [Shell].
type completer interface {
	Completions() []string
}

// defaultCompletions picks the completion set for T when the author did not supply a completor.
func defaultCompletions[T any](partial string) []string {
	var v T
	switch x := any(v).(type) {
	case bool:
		return filterPrefix([]string{"true", "false"}, partial)
	case completer:
		return filterPrefix(x.Completions(), partial)
	}
	return nil
}

// base holds the state shared by both input kinds.
type base[T any] struct {
	name        string
	description string
	value       T
	def         T
	hasDefault  bool
	parsed      bool
	completor   CompleteFunc
}

func (b *base[T]) HasDefault() bool    { return b.hasDefault }
func (b *base[T]) Parsed() bool        { return b.parsed }
func (b *base[T]) Description() string { return b.description }
func (b *base[T]) DisplayName() string { return b.name }
func (b *base[T]) TypeName() string    { return typeName[T]() }

func (b *base[T]) DefaultString() string {
	if !b.hasDefault {
		return ""
	}
	return formatValue(b.def)
}

// Get returns the parsed value, the default when nothing was parsed, or the zero value of T.
func (b *base[T]) Get() T {
	if b.parsed {
		return b.value
	}
	return b.def
}

// Lookup returns the value and whether it was supplied on the command line or by a default.
func (b *base[T]) Lookup() (T, bool) {
	return b.Get(), b.parsed || b.hasDefault
}

func (b *base[T]) Complete(partial string) ([]string, error) {
	if b.completor == nil {
		return defaultCompletions[T](partial), nil
	}
	candidates, err := b.completor(partial)
	if err != nil {
		return nil, fmt.Errorf("complete %q: %w", b.name, err)
	}
	return candidates, nil
}

func (b *base[T]) set(token string) error {
	v, err := parseValue[T](token)
	if err != nil {
		return err
	}
	b.value = v
	b.parsed = true
	return nil
}

func (b *base[T]) reset() {
	var zero T
	b.value = zero
	b.parsed = false
}

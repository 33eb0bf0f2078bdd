package cmdtree

import (
	"fmt"
	"strings"
)

// Arg is a positional input. Arguments are matched to tokens in declaration order and each
// consumes exactly one token. An argument without a default is required.
type Arg[T any] struct {
	base[T]
}

var _ Input = (*Arg[string])(nil)

// NewArg returns a required positional argument named name.
//
//	name := cmdtree.NewArg[string]("name").Describe("note to edit")
func NewArg[T any](name string) *Arg[T] {
	return &Arg[T]{base: base[T]{name: name}}
}

// Describe sets the description shown in help text and shell completions.
func (a *Arg[T]) Describe(description string) *Arg[T] {
	a.description = description
	return a
}

// Default makes the argument optional, falling back to v when no token is supplied.
func (a *Arg[T]) Default(v T) *Arg[T] {
	a.def = v
	a.hasDefault = true
	return a
}

// Completor sets the function used to complete this argument's value.
func (a *Arg[T]) Completor(fn CompleteFunc) *Arg[T] {
	a.completor = fn
	return a
}

func (a *Arg[T]) Kind() InputKind  { return KindArg }
func (a *Arg[T]) IsBoolFlag() bool { return false }

// Parse always claims the token. Position is the only matching rule for arguments, so a token
// that cannot be converted is an error rather than a signal to try another input.
func (a *Arg[T]) Parse(token string) (bool, error) {
	if strings.HasPrefix(token, "--") {
		return false, newInputError(ErrInvalidValue, a, token,
			fmt.Errorf("flag-like token %q cannot be used as argument %q", token, a.name))
	}
	if err := a.set(token); err != nil {
		return false, newInputError(ErrInvalidValue, a, token,
			fmt.Errorf("invalid value %q for argument %q: %w", token, a.name, err))
	}
	return true, nil
}

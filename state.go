package cmdtree

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// State is passed to the selected command's handler. It carries the command's inputs in
// declaration order and the I/O streams configured through [RunOptions].
type State struct {
	// Command is the documentation snapshot of the command being executed.
	Command CommandDoc

	// Inputs holds every input of the command, in declaration order. Each one is either parsed or
	// carries its default.
	Inputs []Input

	// Standard I/O streams.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger is never nil inside a handler. It discards output unless configured.
	Logger *log.Logger
}

// Get retrieves an input value by name, with type inference. Example usage:
//
//	create := cmdtree.Get[bool](state, "create")
//	name := cmdtree.Get[string](state, "name")
//
// If no input has that name, or the input holds a different type, Get panics: both are
// programming errors in the command definition, and it's better to fail early than to silently
// use a zero value.
func Get[T any](s *State, name string) T {
	for _, in := range s.Inputs {
		if in.DisplayName() != name {
			continue
		}
		if getter, ok := in.(interface{ Get() T }); ok {
			return getter.Get()
		}
		panic(fmt.Errorf("internal error: type mismatch for %s %q in command %q: registered %s, requested %s",
			in.Kind(), name, s.Command.Path(), in.TypeName(), typeName[T]()))
	}
	panic(fmt.Errorf("internal error: input %q not found in command %q", name, s.Command.Path()))
}

package cmdtree

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ExecFunc is a command's handler. It receives the parsed (or defaulted) inputs of the selected
// command through [State].
type ExecFunc func(ctx context.Context, s *State) error

// CommandDoc is an identity and documentation snapshot of a [Command].
type CommandDoc struct {
	// Name is always a single word representing the command's name.
	Name string
	// Description is a brief description of the command's purpose.
	Description string
	// Version is optional and is only reported for the root command.
	Version string
	// Parents lists the names of every ancestor, root first.
	Parents []string
}

// Path returns the full command path, for example "notes tag add".
func (d CommandDoc) Path() string {
	return strings.Join(append(append([]string(nil), d.Parents...), d.Name), " ")
}

// Command is a node in the command tree. It owns an ordered list of inputs, ordered subcommands,
// and an optional handler. Build one with [New] and the chained builder methods:
//
//	name := cmdtree.NewArg[string]("name")
//	create := cmdtree.BoolFlag("create")
//	edit := cmdtree.New("edit").
//		Description("edit a note").
//		Input(name, create).
//		Handler(func(ctx context.Context, s *cmdtree.State) error {
//			return editNote(name.Get(), create.Get())
//		})
//	root := cmdtree.New("notes").Subcommand(edit).WithCompletions()
type Command struct {
	doc       CommandDoc
	inputs    []Input
	children  []*Command
	exec      ExecFunc
	usageFunc func(*Command) string
}

// New returns a command named name with no inputs, subcommands or handler.
func New(name string) *Command {
	return &Command{doc: CommandDoc{Name: name}}
}

// Description sets the command's description.
func (c *Command) Description(description string) *Command {
	c.doc.Description = description
	return c
}

// Version sets the version reported by --version on the root command.
func (c *Command) Version(version string) *Command {
	c.doc.Version = version
	return c
}

// Input appends inputs in declaration order. Declaration order decides positional matching and
// which flag wins when two flags could claim the same token.
func (c *Command) Input(inputs ...Input) *Command {
	c.inputs = append(c.inputs, inputs...)
	return c
}

// Handler binds the command's handler, replacing any previous one.
func (c *Command) Handler(fn ExecFunc) *Command {
	c.exec = fn
	return c
}

// Usage overrides the help text renderer for this command.
func (c *Command) Usage(fn func(*Command) string) *Command {
	c.usageFunc = fn
	return c
}

// Subcommand appends sub as a child. The child, and every command below it, records this
// command's path as its ancestry.
func (c *Command) Subcommand(sub *Command) *Command {
	sub.pushParents(append(append([]string(nil), c.doc.Parents...), c.doc.Name))
	c.children = append(c.children, sub)
	return c
}

// pushParents prepends parents to the ancestry of c and its descendants. Commands attached before
// their parent joined the tree are fixed up here.
func (c *Command) pushParents(parents []string) {
	c.doc.Parents = append(append([]string(nil), parents...), c.doc.Parents...)
	for _, child := range c.children {
		child.pushParents(parents)
	}
}

// WithCompletions appends the built-in "completions <shell>" subcommand, which prints the
// registration script for bash, zsh or fish.
func (c *Command) WithCompletions() *Command {
	program := c.doc.Name
	shell := NewArg[Shell]("shell").Describe("one of bash, zsh or fish")
	return c.Subcommand(New("completions").
		Description("generate completions for a given shell").
		Input(shell).
		Handler(func(ctx context.Context, s *State) error {
			_, err := fmt.Fprintln(s.Stdout, shell.Get().Script(program))
			return err
		}),
	)
}

// Docs returns the command's documentation snapshot.
func (c *Command) Docs() CommandDoc {
	return c.doc
}

// Symbols returns the command's inputs in declaration order.
func (c *Command) Symbols() []Input {
	return c.inputs
}

// SubcommandDocs returns a documentation snapshot per child, in declaration order.
func (c *Command) SubcommandDocs() []CommandDoc {
	docs := make([]CommandDoc, 0, len(c.children))
	for _, child := range c.children {
		docs = append(docs, child.doc)
	}
	return docs
}

func (c *Command) parseSubcommand(ctx context.Context, idx int, tokens []string, s *State) error {
	return c.children[idx].parseTokens(ctx, tokens, s)
}

func (c *Command) completeSubcommand(idx int, tokens []string) ([]Candidate, error) {
	return c.children[idx].completeTokens(tokens)
}

// callHandler invokes the handler with every input of c in declaration order.
func (c *Command) callHandler(ctx context.Context, s *State) error {
	if c.exec == nil {
		return NewError(ErrNoHandler, fmt.Errorf("no handler bound to %s", c.doc.Path()))
	}
	s.Command = c.doc
	s.Inputs = c.inputs
	return c.exec(ctx, s)
}

// findSubCommand returns the index of the first child named name, or -1.
func (c *Command) findSubCommand(name string) int {
	for i, child := range c.children {
		if child.doc.Name == name {
			return i
		}
	}
	return -1
}

// requiredInputs counts arguments without a default. Flags are always optional.
func (c *Command) requiredInputs() int {
	var n int
	for _, in := range c.inputs {
		if in.Kind() == KindArg && !in.HasDefault() {
			n++
		}
	}
	return n
}

// reset clears values parsed by a previous pass over the tree.
func (c *Command) reset() {
	for _, in := range c.inputs {
		in.reset()
	}
	for _, child := range c.children {
		child.reset()
	}
}

func validateCommands(root *Command, path []string) error {
	if root.doc.Name == "" {
		if len(path) == 0 {
			return errors.New("root command has no name")
		}
		return fmt.Errorf("subcommand in path %q has no name", strings.Join(path, " "))
	}
	if strings.ContainsAny(root.doc.Name, " \t\n") {
		return fmt.Errorf("command name %q contains spaces, must be a single word", root.doc.Name)
	}

	currentPath := append(path, root.doc.Name)

	seen := make(map[InputKind]map[string]bool)
	for _, in := range root.inputs {
		if in == nil {
			return fmt.Errorf("command %q: nil input", strings.Join(currentPath, " "))
		}
		name := in.DisplayName()
		if name == "" {
			return fmt.Errorf("command %q: %s has no name", strings.Join(currentPath, " "), in.Kind())
		}
		if strings.HasPrefix(name, "-") || strings.ContainsAny(name, " =") {
			return fmt.Errorf("command %q: invalid %s name %q", strings.Join(currentPath, " "), in.Kind(), name)
		}
		if seen[in.Kind()] == nil {
			seen[in.Kind()] = make(map[string]bool)
		}
		if seen[in.Kind()][name] {
			return fmt.Errorf("command %q: duplicate %s %q", strings.Join(currentPath, " "), in.Kind(), name)
		}
		seen[in.Kind()][name] = true
	}

	for _, sub := range root.children {
		if err := validateCommands(sub, currentPath); err != nil {
			return err
		}
	}
	return nil
}

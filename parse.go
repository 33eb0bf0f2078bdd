package cmdtree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mfridman/cmdtree/pkg/suggest"
)

const helpFlag = "--help"

// Parse walks the command tree with args, typically os.Args[1:], selects a command and invokes
// its handler with the parsed inputs. It returns an error if parsing fails at any point, or the
// handler's error unchanged.
//
// Parse does not recognize completion requests; use [Run] for that.
func Parse(ctx context.Context, root *Command, args []string, options *RunOptions) error {
	if root == nil {
		return errors.New("failed to parse: root command is nil")
	}
	if err := validateCommands(root, nil); err != nil {
		return fmt.Errorf("failed to parse: %w", err)
	}
	options = checkAndSetRunOptions(options)
	root.reset()

	s := &State{
		Stdin:  options.Stdin,
		Stdout: options.Stdout,
		Stderr: options.Stderr,
		Logger: options.Logger,
	}
	return root.parseTokens(ctx, args, s)
}

// parseTokens is a single pass over tokens: subcommand resolution first, then inputs.
func (c *Command) parseTokens(ctx context.Context, tokens []string, s *State) error {
	if len(tokens) == 0 && (c.requiredInputs() > 0 || len(c.children) > 0) {
		if len(c.children) == 0 {
			if in := c.missingArgument(); in != nil {
				return &Error{code: ErrMissingArgument, err: errors.New(c.help()), input: in.DisplayName()}
			}
		}
		return helpError(c.help(), true)
	}

	if len(c.children) > 0 {
		token := tokens[0]
		if token == helpFlag {
			return helpError(c.help(), false)
		}
		if idx := c.findSubCommand(token); idx >= 0 {
			s.Logger.Debug("dispatch", "command", c.doc.Path(), "subcommand", token)
			return c.parseSubcommand(ctx, idx, tokens[1:], s)
		}
		return c.formatUnknownCommandError(token)
	}

	if c.helpRequested(tokens) {
		return helpError(c.help(), false)
	}

	for _, token := range tokens {
		if strings.HasPrefix(token, "-") {
			if err := c.parseFlag(token); err != nil {
				return err
			}
			continue
		}
		if err := c.parseArg(token); err != nil {
			return err
		}
	}

	if in := c.missingArgument(); in != nil {
		return missingArgumentError(c, in)
	}
	return c.callHandler(ctx, s)
}

// missingArgument returns the first required argument that has not been parsed, or nil.
func (c *Command) missingArgument() Input {
	for _, in := range c.inputs {
		if in.Kind() == KindArg && !in.HasDefault() && !in.Parsed() {
			return in
		}
	}
	return nil
}

// parseFlag offers token to every flag not yet parsed, in declaration order, until one claims it.
func (c *Command) parseFlag(token string) error {
	for _, in := range c.inputs {
		if in.Kind() != KindFlag || in.Parsed() {
			continue
		}
		ok, err := in.Parse(token)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return &Error{
		code:  ErrUnexpectedFlag,
		err:   c.unexpectedFlagError(token),
		token: token,
	}
}

// parseArg gives token to the first argument not yet parsed.
func (c *Command) parseArg(token string) error {
	for _, in := range c.inputs {
		if in.Kind() != KindArg || in.Parsed() {
			continue
		}
		_, err := in.Parse(token)
		return err
	}
	return &Error{
		code:  ErrUnexpectedToken,
		err:   fmt.Errorf("%s: unexpected token %q", c.doc.Path(), token),
		token: token,
	}
}

// helpRequested reports whether tokens contain the built-in help flag and no input of c claims
// the name for itself.
func (c *Command) helpRequested(tokens []string) bool {
	for _, in := range c.inputs {
		if in.Kind() == KindFlag && in.DisplayName() == "help" {
			return false
		}
	}
	for _, token := range tokens {
		if token == helpFlag {
			return true
		}
	}
	return false
}

func (c *Command) formatUnknownCommandError(unknownCmd string) error {
	var known []string
	for _, sub := range c.children {
		known = append(known, sub.doc.Name)
	}
	var err error
	if suggestions := suggest.FindSimilar(unknownCmd, known, 3); len(suggestions) > 0 {
		err = fmt.Errorf("%s is not a valid subcommand. Did you mean one of these?\n\t%s",
			unknownCmd,
			strings.Join(suggestions, "\n\t"))
	} else {
		err = fmt.Errorf("%s is not a valid subcommand", unknownCmd)
	}
	return &Error{code: ErrUnknownCommand, err: err, token: unknownCmd}
}

func (c *Command) unexpectedFlagError(token string) error {
	name, _, _ := strings.Cut(strings.TrimLeft(token, "-"), "=")
	var known []string
	for _, in := range c.inputs {
		if in.Kind() == KindFlag {
			known = append(known, in.DisplayName())
		}
	}
	if suggestions := suggest.FindSimilar(name, known, 1); len(suggestions) > 0 {
		return fmt.Errorf("%s: unexpected flag-like token %s, did you mean --%s?", c.doc.Path(), token, suggestions[0])
	}
	return fmt.Errorf("%s: unexpected flag-like token %s", c.doc.Path(), token)
}

package cmdtree

import (
	"fmt"
	"strings"

	"github.com/mfridman/cmdtree/pkg/textutil"
)

const helpWidth = 80

func (c *Command) help() string {
	if c.usageFunc != nil {
		return c.usageFunc(c)
	}
	return DefaultUsage(c)
}

// DefaultUsage renders help text from the command's docs, its inputs and its children's docs.
// Leaf commands list their flags and arguments; commands with subcommands list those instead.
func DefaultUsage(c *Command) string {
	if c == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(c.doc.Path())
	if c.doc.Version != "" {
		b.WriteString(" " + c.doc.Version)
	}
	if c.doc.Description != "" {
		b.WriteString(" - " + c.doc.Description)
	}
	b.WriteString("\n\n")

	subcommands := c.SubcommandDocs()

	b.WriteString("Usage:\n")
	if len(subcommands) > 0 {
		fmt.Fprintf(&b, "  %s <command>\n\n", c.doc.Path())

		rows := make([]textutil.Row, 0, len(subcommands))
		for _, sub := range subcommands {
			rows = append(rows, textutil.Row{Name: sub.Name, Text: sub.Description})
		}
		b.WriteString("Available Commands:\n")
		b.WriteString(textutil.Columns(rows, helpWidth))
		b.WriteString("\n")

		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", c.doc.Path())
		return strings.TrimRight(b.String(), "\n")
	}

	var flags, args []textutil.Row
	usage := c.doc.Path()
	for _, in := range c.inputs {
		description := in.Description()
		if def := in.DefaultString(); def != "" && !in.IsBoolFlag() {
			description = strings.TrimSpace(description + fmt.Sprintf(" (default: %s)", def))
		}
		switch in.Kind() {
		case KindFlag:
			name := "--" + in.DisplayName()
			if !in.IsBoolFlag() {
				name += "=<" + in.TypeName() + ">"
			}
			flags = append(flags, textutil.Row{Name: name, Text: description})
		case KindArg:
			args = append(args, textutil.Row{Name: in.DisplayName(), Text: description})
			if in.HasDefault() {
				usage += " [" + in.DisplayName() + "]"
			} else {
				usage += " <" + in.DisplayName() + ">"
			}
		}
	}
	if len(flags) > 0 {
		usage += " [flags]"
	}
	fmt.Fprintf(&b, "  %s\n\n", usage)

	if len(flags) > 0 {
		b.WriteString("Flags:\n")
		b.WriteString(textutil.Columns(flags, helpWidth))
		b.WriteString("\n")
	}
	if len(args) > 0 {
		b.WriteString("Arguments:\n")
		b.WriteString(textutil.Columns(args, helpWidth))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

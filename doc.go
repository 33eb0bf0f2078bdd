// Package cmdtree is a declarative command-line definition and parsing engine. A program is
// described once as a tree of commands, each owning typed positional arguments and flags, and
// that one definition drives both argument parsing and shell completion for bash, zsh and fish.
//
// Parsing is a single left-to-right pass. Subcommand names are resolved first; the remaining
// tokens are then matched to the selected command's inputs: tokens starting with "-" are offered
// to its flags, anything else fills its arguments in declaration order. Declaration order breaks
// every tie.
//
// Completion follows the same subcommand resolution over the partially typed line and asks the
// relevant input for candidates. Programs register with a shell through the built-in
// "completions" subcommand (see [Command.WithCompletions]), and the shell then calls back with
// "complete" requests handled by [Run].
package cmdtree

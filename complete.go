package cmdtree

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/shlex"
)

// Candidate is a single completion suggestion. Description is dropped for shells that cannot
// display it.
type Candidate struct {
	Value       string
	Description string
}

// Complete returns completion candidates for tokens, the words typed after the program name with
// the last one being the word under the cursor (possibly empty). Subcommands are resolved exactly
// as [Parse] resolves them. A last token with one or two leading dashes completes to long flag
// names, so "-c" offers "--create"; every other candidate starts with the last token.
func Complete(root *Command, tokens []string) ([]Candidate, error) {
	if root == nil {
		return nil, errors.New("failed to complete: root command is nil")
	}
	if err := validateCommands(root, nil); err != nil {
		return nil, fmt.Errorf("failed to complete: %w", err)
	}
	return root.completeTokens(tokens)
}

func (c *Command) completeTokens(tokens []string) ([]Candidate, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if len(c.children) > 0 {
		if len(tokens) > 1 {
			if idx := c.findSubCommand(tokens[0]); idx >= 0 {
				return c.completeSubcommand(idx, tokens[1:])
			}
			return nil, nil
		}
		token := tokens[0]
		if strings.HasPrefix(token, "-") {
			return c.flagCandidates(trimDashes(token)), nil
		}
		var candidates []Candidate
		for _, sub := range c.children {
			if strings.HasPrefix(sub.doc.Name, token) {
				candidates = append(candidates, Candidate{Value: sub.doc.Name, Description: sub.doc.Description})
			}
		}
		return candidates, nil
	}

	last := tokens[len(tokens)-1]
	var positional int
	for _, token := range tokens[:len(tokens)-1] {
		if !strings.HasPrefix(token, "-") {
			positional++
		}
	}

	if strings.HasPrefix(last, "-") {
		partial := trimDashes(last)
		name, value, ok := strings.Cut(partial, "=")
		if !ok {
			return c.flagCandidates(partial), nil
		}
		for _, in := range c.inputs {
			if in.Kind() != KindFlag || in.DisplayName() != name {
				continue
			}
			values, err := in.Complete(value)
			if err != nil {
				return nil, err
			}
			candidates := make([]Candidate, 0, len(values))
			for _, v := range filterPrefix(values, value) {
				candidates = append(candidates, Candidate{Value: "--" + name + "=" + v})
			}
			return candidates, nil
		}
		return nil, nil
	}

	var n int
	for _, in := range c.inputs {
		if in.Kind() != KindArg {
			continue
		}
		if n == positional {
			values, err := in.Complete(last)
			if err != nil {
				return nil, err
			}
			// Not every shell filters the candidates it is given.
			candidates := make([]Candidate, 0, len(values))
			for _, v := range filterPrefix(values, last) {
				candidates = append(candidates, Candidate{Value: v})
			}
			return candidates, nil
		}
		n++
	}
	return nil, nil
}

// flagCandidates lists the flags of c, built-ins included, whose name starts with partial. Value
// flags end in "=" to signal that a value must follow.
func (c *Command) flagCandidates(partial string) []Candidate {
	var candidates []Candidate
	userHelp := false
	for _, in := range c.inputs {
		if in.Kind() != KindFlag {
			continue
		}
		if in.DisplayName() == "help" {
			userHelp = true
		}
		if !strings.HasPrefix(in.DisplayName(), partial) {
			continue
		}
		value := "--" + in.DisplayName()
		if !in.IsBoolFlag() {
			value += "="
		}
		candidates = append(candidates, Candidate{Value: value, Description: in.Description()})
	}
	if !userHelp && strings.HasPrefix("help", partial) {
		candidates = append(candidates, Candidate{Value: helpFlag, Description: "show help"})
	}
	if c.doc.Version != "" && len(c.doc.Parents) == 0 && strings.HasPrefix("version", partial) {
		candidates = append(candidates, Candidate{Value: versionFlag, Description: "show version"})
	}
	return candidates
}

func trimDashes(token string) string {
	token = strings.TrimPrefix(token, "-")
	return strings.TrimPrefix(token, "-")
}

// completionRequest is a decoded "complete <shell> [word-index] <line>" invocation.
type completionRequest struct {
	shell  Shell
	tokens []string
	// trim is the number of leading bytes of every candidate the shell already has in front of
	// the word it replaces. Only bash, which splits words at "=", needs it.
	trim int
}

// decodeCompletionRequest decodes the arguments following "complete". The word index is 0-based
// and counts the program name as word 0, matching bash's COMP_CWORD and zsh's $CURRENT - 1. Fish
// sends only the line up to the cursor, so the index is its last word and an index argument, if
// present, is ignored.
func decodeCompletionRequest(args []string) (completionRequest, error) {
	if len(args) < 2 {
		return completionRequest{}, errors.New("usage: complete <shell> <word-index> <line>")
	}
	var req completionRequest
	if err := req.shell.UnmarshalText([]byte(args[0])); err != nil {
		return completionRequest{}, err
	}
	words := splitLine(args[len(args)-1])

	index := len(words) - 1
	if req.shell != Fish {
		if len(args) < 3 {
			return completionRequest{}, fmt.Errorf("%s completion request requires a word index", req.shell)
		}
		var err error
		index, err = strconv.Atoi(args[1])
		if err != nil || index < 0 {
			return completionRequest{}, fmt.Errorf("invalid word index %q", args[1])
		}
		// Past the last word the cursor can only be on one new, empty word.
		index = min(index, len(words))
	}
	for len(words) <= index {
		words = append(words, "")
	}
	words = words[:index+1]

	if req.shell == Bash {
		words, req.trim = joinAssignments(words)
	}
	if len(words) > 1 {
		req.tokens = words[1:]
	}
	return req, nil
}

// splitLine splits a command line into words, honoring shell quoting. A line ending in whitespace
// ends with an empty word, the one the cursor is on.
func splitLine(line string) []string {
	words, err := shlex.Split(line)
	if err != nil {
		// Most likely an unterminated quote in the word being typed.
		words = strings.Fields(line)
	}
	if line != "" && unicode.IsSpace(rune(line[len(line)-1])) {
		words = append(words, "")
	}
	return words
}

// joinAssignments re-joins "--name", "=", "value" words that bash split apart, and returns the
// number of bytes of the last joined word that precede bash's own current word.
func joinAssignments(words []string) ([]string, int) {
	if len(words) == 0 {
		return words, 0
	}
	current := words[len(words)-1]
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == "=" && len(out) > 0 {
			prev := out[len(out)-1]
			if strings.HasPrefix(prev, "-") && !strings.Contains(prev, "=") {
				prev += "="
				if i+1 < len(words) && words[i+1] != "" {
					i++
					prev += words[i]
				}
				out[len(out)-1] = prev
				continue
			}
		}
		out = append(out, w)
	}
	return out, len(out[len(out)-1]) - len(current)
}

// writeCandidates encodes candidates for the shell that sent req.
func writeCandidates(w io.Writer, req completionRequest, candidates []Candidate) error {
	switch req.shell {
	case Bash:
		for _, c := range candidates {
			value := c.Value
			if req.trim > 0 && req.trim <= len(value) {
				value = value[req.trim:]
			}
			if _, err := fmt.Fprintln(w, value); err != nil {
				return err
			}
		}
	case Fish:
		for _, c := range candidates {
			line := c.Value
			if c.Description != "" {
				line += "\t" + strings.Join(strings.Fields(c.Description), " ")
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	case Zsh:
		if len(candidates) == 0 {
			return nil
		}
		items := make([]string, 0, len(candidates))
		for _, c := range candidates {
			item := strings.ReplaceAll(c.Value, ":", `\:`)
			if c.Description != "" {
				item += ":" + strings.Join(strings.Fields(c.Description), " ")
			}
			items = append(items, zshQuote(item))
		}
		_, err := fmt.Fprintf(w, "local -a _cmdtree_candidates=(%s) && _describe 'values' _cmdtree_candidates\n",
			strings.Join(items, " "))
		return err
	default:
		return fmt.Errorf("unsupported shell %s", req.shell)
	}
	return nil
}

func zshQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

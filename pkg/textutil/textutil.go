// Package textutil formats help text for the terminal.
package textutil

import (
	"fmt"
	"strings"
)

// Wrap splits text into lines no longer than width, breaking on whitespace. Words longer than
// width are kept whole on a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		if currentLength+len(word)+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = len(word)
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = len(word)
			} else {
				currentLength += len(word) + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// Row is one entry of a two-column listing.
type Row struct {
	Name string
	Text string
}

// Columns renders rows as an indented two-column listing. Names are aligned on the longest one
// and the text column wraps to fit within width, continuation lines indented under it.
func Columns(rows []Row, width int) string {
	maxLen := 0
	for _, r := range rows {
		maxLen = max(maxLen, len(r.Name))
	}
	nameWidth := maxLen + 4
	wrapWidth := max(width-nameWidth, 20)
	indent := strings.Repeat(" ", nameWidth+2)

	var b strings.Builder
	for _, r := range rows {
		lines := Wrap(r.Text, wrapWidth)
		if len(lines) == 0 {
			fmt.Fprintf(&b, "  %s\n", r.Name)
			continue
		}
		padding := strings.Repeat(" ", maxLen-len(r.Name)+4)
		fmt.Fprintf(&b, "  %s%s%s\n", r.Name, padding, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(&b, "%s%s\n", indent, line)
		}
	}
	return b.String()
}

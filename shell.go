package cmdtree

import (
	"fmt"
	"strings"
	"text/template"
)

// Shell identifies a shell completion protocol.
type Shell int

const (
	Bash Shell = iota + 1
	Zsh
	Fish
)

var shellNames = map[Shell]string{
	Bash: "bash",
	Zsh:  "zsh",
	Fish: "fish",
}

func (s Shell) String() string {
	if name, ok := shellNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shell(%d)", int(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s Shell) MarshalText() ([]byte, error) {
	if _, ok := shellNames[s]; !ok {
		return nil, fmt.Errorf("unknown shell %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Names are matched case-insensitively.
func (s *Shell) UnmarshalText(text []byte) error {
	for sh, name := range shellNames {
		if strings.EqualFold(string(text), name) {
			*s = sh
			return nil
		}
	}
	return fmt.Errorf("unsupported shell %q, choices are bash, zsh and fish", string(text))
}

// Completions lists the supported shell names, so an argument of type Shell completes itself.
func (s Shell) Completions() []string {
	return []string{"bash", "zsh", "fish"}
}

// Script returns the registration script for program. The script calls back into program with a
// completion request on every completion attempt:
//
//	bash: program complete bash <COMP_CWORD> "<COMP_WORDS>"
//	zsh:  program complete zsh <CURRENT-1> "<words>"
//	fish: program complete fish "<commandline -cp>"
func (s Shell) Script(program string) string {
	tmpl, ok := scriptTemplates[s]
	if !ok {
		return ""
	}
	var b strings.Builder
	data := struct{ Name, Func string }{
		Name: program,
		Func: strings.NewReplacer("-", "_", ".", "_").Replace(program),
	}
	if err := tmpl.Execute(&b, data); err != nil {
		// The templates are fixed and only interpolate strings.
		panic(err)
	}
	return b.String()
}

var scriptTemplates = map[Shell]*template.Template{
	Bash: template.Must(template.New("bash").Parse(`_{{.Func}}_complete()
{
    local out
    out="$( {{.Name}} complete bash "${COMP_CWORD}" "${COMP_WORDS[*]}" 2>/dev/null )" || return 1
    local IFS=$'\n'
    COMPREPLY=( ${out} )
}
complete -o nospace -o default -F _{{.Func}}_complete {{.Name}}`)),

	Zsh: template.Must(template.New("zsh").Parse(`#compdef {{.Name}}

_{{.Func}}() {
    local out
    out="$( {{.Name}} complete zsh "$((CURRENT - 1))" "${words[*]}" 2>/dev/null )" || return 1
    eval "${out}"
}

compdef _{{.Func}} {{.Name}}`)),

	Fish: template.Must(template.New("fish").Parse(
		`complete -c {{.Name}} -f -a '({{.Name}} complete fish (commandline -cp) 2>/dev/null)'`)),
}

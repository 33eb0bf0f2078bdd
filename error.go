package cmdtree

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of a parse failure.
type ErrorCode int

const (
	// ErrShowHelp is returned when help was requested, explicitly with --help or implicitly because
	// a command with subcommands was invoked without any tokens. The error text is the rendered help.
	ErrShowHelp ErrorCode = iota + 1
	// ErrMissingArgument is returned when a required argument received no token. When the command
	// was given no tokens at all, the error text is the rendered help.
	ErrMissingArgument
	// ErrUnexpectedToken is returned when a positional token is left over after every argument
	// has been filled.
	ErrUnexpectedToken
	// ErrUnexpectedFlag is returned when no flag claims a token starting with "-".
	ErrUnexpectedFlag
	// ErrUnknownCommand is returned when a token does not name a subcommand.
	ErrUnknownCommand
	// ErrInvalidValue is returned when a token is shaped for an input but cannot be converted to
	// the input's type.
	ErrInvalidValue
	// ErrNoHandler is returned when the selected command has no handler bound.
	ErrNoHandler
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	case ErrMissingArgument:
		return "missing required argument"
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrUnexpectedFlag:
		return "unexpected flag-like token"
	case ErrUnknownCommand:
		return "unknown command"
	case ErrInvalidValue:
		return "invalid value"
	case ErrNoHandler:
		return "no handler bound"
	default:
		return "unknown error"
	}
}

// Error represents a parse failure with an error code and an underlying error.
type Error struct {
	code ErrorCode
	err  error

	// input and token are set for failures attributed to a single input.
	input string
	token string
	// implicit marks help rendered because of a structural failure rather than --help.
	implicit bool
}

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

func newInputError(code ErrorCode, in Input, token string, err error) *Error {
	return &Error{code: code, err: err, input: in.DisplayName(), token: token}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Code returns the kind of failure.
func (e *Error) Code() ErrorCode { return e.code }

// Input returns the display name of the input the failure is attributed to, if any.
func (e *Error) Input() string { return e.input }

// Token returns the offending token, if any.
func (e *Error) Token() string { return e.token }

// ExitCode maps err to a process exit status. A nil error and an explicit help request map to 0,
// each [ErrorCode] maps to its own nonzero status, and any other error, including failures
// returned by handlers, maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cliErr *Error
	if !errors.As(err, &cliErr) {
		return 1
	}
	switch cliErr.code {
	case ErrShowHelp:
		if cliErr.implicit {
			return 2
		}
		return 0
	case ErrMissingArgument:
		return 3
	case ErrUnexpectedToken:
		return 4
	case ErrUnexpectedFlag:
		return 5
	case ErrUnknownCommand:
		return 6
	case ErrInvalidValue:
		return 7
	case ErrNoHandler:
		return 8
	default:
		return 1
	}
}

// IsHelp reports whether err is a help request, either explicit or implicit.
func IsHelp(err error) bool {
	var cliErr *Error
	return errors.As(err, &cliErr) && cliErr.code == ErrShowHelp
}

func helpError(help string, implicit bool) *Error {
	return &Error{code: ErrShowHelp, err: errors.New(help), implicit: implicit}
}

func missingArgumentError(c *Command, in Input) *Error {
	return &Error{
		code:  ErrMissingArgument,
		err:   fmt.Errorf("%s: missing required argument: %s", c.doc.Path(), in.DisplayName()),
		input: in.DisplayName(),
	}
}

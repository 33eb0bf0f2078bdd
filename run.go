package cmdtree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

const (
	versionFlag = "--version"

	// debugEnv enables debug logging to stderr in [Main] when set to a non-empty value.
	debugEnv = "CMDTREE_DEBUG"
)

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Logger receives debug events: subcommand dispatch, decoded completion requests, and
	// completion failures that are otherwise suppressed. If nil, nothing is logged.
	Logger *log.Logger
}

// Run dispatches args, typically os.Args[1:], against root. A completion request
//
//	complete <shell> <word-index> <line>
//
// writes shell-encoded candidates to Stdout; "--version" on a root with a version prints it; any
// other invocation is parsed and executed with [Parse].
//
// A root command that declares its own "complete" subcommand opts out of completion requests.
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func Run(ctx context.Context, root *Command, args []string, options *RunOptions) error {
	if root == nil {
		return errors.New("failed to run: root command is nil")
	}
	options = checkAndSetRunOptions(options)

	if len(args) >= 3 && args[0] == "complete" && root.findSubCommand("complete") < 0 {
		return runComplete(root, args[1:], options)
	}
	if len(args) == 1 && args[0] == versionFlag && root.doc.Version != "" {
		_, err := fmt.Fprintf(options.Stdout, "%s %s\n", root.doc.Name, root.doc.Version)
		return err
	}
	return Parse(ctx, root, args, options)
}

// CompletionError wraps a failure that happened while answering a completion request. Shells
// discard the helper's stderr, so [Main] exits nonzero without printing it.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string { return "completion: " + e.Err.Error() }
func (e *CompletionError) Unwrap() error { return e.Err }

func runComplete(root *Command, args []string, options *RunOptions) error {
	req, err := decodeCompletionRequest(args)
	if err != nil {
		options.Logger.Debug("invalid completion request", "args", args, "err", err)
		return &CompletionError{Err: err}
	}
	options.Logger.Debug("completion request", "shell", req.shell, "tokens", req.tokens)

	candidates, err := Complete(root, req.tokens)
	if err != nil {
		options.Logger.Debug("completion failed", "shell", req.shell, "tokens", req.tokens, "err", err)
		return &CompletionError{Err: err}
	}
	if err := writeCandidates(options.Stdout, req, candidates); err != nil {
		return &CompletionError{Err: err}
	}
	return nil
}

// Main runs root with os.Args[1:] and exits the process. Help goes to standard output, errors to
// standard error, and the exit status is [ExitCode] of the result. Setting CMDTREE_DEBUG logs
// debug events to standard error.
func Main(ctx context.Context, root *Command) {
	options := &RunOptions{}
	if os.Getenv(debugEnv) != "" {
		options.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.DebugLevel,
			Prefix: root.doc.Name,
		})
	}
	err := Run(ctx, root, os.Args[1:], options)
	os.Exit(report(err, os.Stdout, os.Stderr))
}

// report prints the outcome of a run and returns the exit status.
func report(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var complErr *CompletionError
	switch {
	case errors.As(err, &complErr):
	case IsHelp(err):
		fmt.Fprintln(stdout, err.Error())
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	code := ExitCode(err)
	if code == 0 && complErr != nil {
		return 1
	}
	return code
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	return opt
}

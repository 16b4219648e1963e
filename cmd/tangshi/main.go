// Command tangshi extracts structured JSON from model replies and drives the
// Tang poetry game from the command line.
//
// Usage:
//
//	tangshi extract [--stage] [--lenient] [--kind KIND] [FILE]
//	tangshi generate --prompt TEXT [--system TEXT] [--kind KIND] [--session ID]
//	tangshi new --name NAME [--gender 女|男]
//	tangshi advance --session ID
//	tangshi show --session ID
//	tangshi schema KIND
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/leofalp/tangshi/core/client"
	"github.com/leofalp/tangshi/core/extract"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: tangshi <command> [flags]

commands:
  extract   read a model reply from FILE or stdin and print the JSON it holds
  generate  send a prompt to the model and print the extracted payload
  new       start a new game session
  advance   move a session forward one month
  show      print a saved session
  schema    print the JSON Schema of a payload kind
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "extract":
		err = runExtract(args[1:], stdin, stdout, stderr)
	case "generate":
		err = runGenerate(ctx, args[1:], stdin, stdout, stderr)
	case "new":
		err = runNew(ctx, args[1:], stdout, stderr)
	case "advance":
		err = runAdvance(ctx, args[1:], stdout, stderr)
	case "show":
		err = runShow(ctx, args[1:], stdout, stderr)
	case "schema":
		err = runSchema(args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "tangshi: unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}

	return report(err, stderr)
}

// errUsage marks errors caused by bad command line arguments.
var errUsage = errors.New("usage")

func report(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "tangshi: %v\n", err)
		return exitUsage
	case errors.Is(err, client.ErrRetryPrompt), errors.Is(err, extract.ErrUnparseableOutput), errors.Is(err, extract.ErrEmptyInput):
		fmt.Fprintf(stderr, "tangshi: could not read the model reply, please retry: %v\n", err)
		return exitError
	default:
		fmt.Fprintf(stderr, "tangshi: %v\n", err)
		return exitError
	}
}

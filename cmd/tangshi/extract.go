package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/leofalp/tangshi/core/extract"
	"github.com/leofalp/tangshi/game"
)

func runExtract(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	showStage := fs.Bool("stage", false, "print the pipeline stage that produced the document to stderr")
	lenient := fs.Bool("lenient", false, "fall back to aggressive repair when the strict stages fail")
	kindName := fs.String("kind", "", "validate the document as a payload kind ("+kindList()+")")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: extract takes at most one file", errUsage)
	}

	raw, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	var opts []extract.Option
	if *lenient {
		opts = append(opts, extract.WithLenientFallback())
	}

	result, err := extract.Extract(string(raw), opts...)
	if err != nil {
		return err
	}
	if *showStage {
		fmt.Fprintf(stderr, "stage: %s\n", result.Stage)
	}

	if *kindName == "" {
		_, err = fmt.Fprintln(stdout, result.Text)
		return err
	}

	kind, err := game.ParseKind(*kindName)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	payload, err := decodeKind(kind, result.Value)
	if err != nil {
		return err
	}

	return writeJSON(stdout, payload)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decodeKind(kind game.Kind, value any) (any, error) {
	switch kind {
	case game.KindPoets:
		return game.DecodePayload[[]game.Poet](kind, value)
	case game.KindEvents:
		return game.DecodePayload[game.MonthlyEvents](kind, value)
	case game.KindParty:
		return game.DecodePayload[game.PoetryParty](kind, value)
	case game.KindExam:
		return game.DecodePayload[game.ExamResult](kind, value)
	case game.KindCompletion:
		return game.DecodePayload[game.PoemCompletion](kind, value)
	}
	return nil, fmt.Errorf("%w: %q", game.ErrUnknownKind, kind)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func kindList() string {
	names := make([]string, len(game.Kinds))
	for i, k := range game.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

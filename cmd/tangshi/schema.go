package main

import (
	"fmt"
	"io"

	"github.com/leofalp/tangshi/game"
)

func runSchema(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: schema takes one kind (%s)", errUsage, kindList())
	}

	kind, err := game.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	raw, err := game.Schema(kind)
	if err != nil {
		return err
	}

	_, err = stdout.Write(raw)
	return err
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/leofalp/tangshi/game"
)

// withSession loads the session named by --session, runs fn on it and saves
// it again when save is true.
func withSession(ctx context.Context, env *environment, id string, save bool, fn func(*game.Session) error) (err error) {
	st, closeStore, err := env.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); err == nil {
			err = cerr
		}
	}()

	session, err := game.LoadSession(ctx, st, id)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	if !save {
		return nil
	}

	return session.Save(ctx, st)
}

func runNew(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := pflag.NewFlagSet("new", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := addConfigFlag(fs)
	name := fs.String("name", "", "protagonist name")
	gender := fs.String("gender", "女", "protagonist gender")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *name == "" {
		return fmt.Errorf("%w: new requires --name", errUsage)
	}

	env, err := loadEnvironment(*configFile, stderr)
	if err != nil {
		return err
	}
	st, closeStore, err := env.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStore(); err == nil {
			err = cerr
		}
	}()

	session := game.NewSession(*name, *gender)
	if err := session.Save(ctx, st); err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, session.ID)
	return err
}

func runAdvance(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("advance", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := addConfigFlag(fs)
	id := fs.String("session", "", "session to advance")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: advance requires --session", errUsage)
	}

	env, err := loadEnvironment(*configFile, stderr)
	if err != nil {
		return err
	}

	return withSession(ctx, env, *id, true, func(s *game.Session) error {
		s.AdvanceMonth(nil)
		return writeJSON(stdout, s.World)
	})
}

func runShow(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := addConfigFlag(fs)
	id := fs.String("session", "", "session to print")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *id == "" {
		return fmt.Errorf("%w: show requires --session", errUsage)
	}

	env, err := loadEnvironment(*configFile, stderr)
	if err != nil {
		return err
	}

	return withSession(ctx, env, *id, false, func(s *game.Session) error {
		return writeJSON(stdout, s)
	})
}

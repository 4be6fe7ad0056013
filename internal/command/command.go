// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package command implements the settings command line tool.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/z5labs/settings"
	"github.com/z5labs/settings/dotenv"
	"github.com/z5labs/settings/pkg/slogx"
	"github.com/z5labs/settings/secretstore"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SecretStore is a secretstore.Store which can also be written to.
type SecretStore interface {
	secretstore.Store

	Set(ctx context.Context, collection, name, secret string) error
	Delete(ctx context.Context, collection, name string) error
}

// Option configures Run.
type Option func(*state)

// Stdin sets where commands read input from.
func Stdin(r io.Reader) Option {
	return func(s *state) {
		s.stdin = r
	}
}

// Stdout sets where commands write results to.
func Stdout(w io.Writer) Option {
	return func(s *state) {
		s.stdout = w
	}
}

// Stderr sets where logs and traces are written to.
func Stderr(w io.Writer) Option {
	return func(s *state) {
		s.stderr = w
	}
}

// Store sets the secret store commands use. The default is [secretstore.OS].
func Store(store SecretStore) Option {
	return func(s *state) {
		s.store = store
	}
}

type state struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	store  SecretStore

	envFiles []string
	logLevel string
	trace    bool

	log      *slog.Logger
	registry *settings.Registry
	tp       *sdktrace.TracerProvider
}

// Run executes the command line given by args.
func Run(ctx context.Context, args []string, opts ...Option) (err error) {
	s := &state{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		store:    secretstore.OS(),
		logLevel: slog.LevelWarn.String(),
	}
	for _, opt := range opts {
		opt(s)
	}
	defer s.shutdown(&err)

	cmd := root(s)
	cmd.SetArgs(args)
	cmd.SetIn(s.stdin)
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)
	return cmd.ExecuteContext(ctx)
}

func root(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "settings",
		Short:         "Inspect environment and secret store settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringSliceVar(&s.envFiles, "env-file", nil, "load variables from these .env files before running")
	flags.StringVar(&s.logLevel, "log-level", s.logLevel, "minimum level of logs written to stderr: debug, info, warn or error")
	flags.BoolVar(&s.trace, "trace", false, "write trace spans to stderr")

	cmd.AddCommand(
		envCommand(s),
		secretCommand(s),
		checkCommand(s),
		renderCommand(s),
	)
	return cmd
}

func (s *state) init(ctx context.Context) error {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(s.logLevel))
	if err != nil {
		return InvalidFlagError{Flag: "log-level", Cause: err}
	}

	h := slog.NewTextHandler(s.stderr, &slog.HandlerOptions{Level: lvl})
	s.log = slogx.New(h)
	s.registry = settings.NewRegistry(settings.LogHandler(h))

	if len(s.envFiles) > 0 {
		err = dotenv.Load(ctx, s.envFiles...)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to load env files", slogx.Error(err))
			return err
		}
	}

	if !s.trace {
		return nil
	}
	tp, err := newTracerProvider(ctx, s.stderr)
	if err != nil {
		return err
	}
	s.tp = tp
	otel.SetTracerProvider(tp)
	return nil
}

func (s *state) shutdown(err *error) {
	if s.tp == nil {
		return
	}
	serr := s.tp.Shutdown(context.Background())
	if serr != nil {
		*err = errors.Join(*err, fmt.Errorf("failed to flush traces: %w", serr))
	}
}

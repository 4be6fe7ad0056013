// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"context"
	"fmt"
	"time"

	"github.com/z5labs/settings"

	"github.com/spf13/cobra"
)

type valueFlags struct {
	def      string
	typ      string
	reobtain bool
}

func (f *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.def, "default", "", "raw value used when the setting is absent")
	cmd.Flags().StringVar(&f.typ, "type", "string", "type to convert to: string, int, bool, float or duration")
}

// defaultValue returns nil unless --default was given, so an explicit
// empty default is distinguishable from none.
func (f *valueFlags) defaultValue(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("default") {
		return nil
	}
	def := f.def
	return &def
}

func envCommand(s *state) *cobra.Command {
	var vf valueFlags

	cmd := &cobra.Command{
		Use:   "env NAME",
		Short: "Print an environment variable after conversion and defaulting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			def := vf.defaultValue(cmd)

			out, err := formatAs(vf.typ, func(f formatter) (string, error) {
				return f.env(ctx, args[0], def, vf.reobtain)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&vf.reobtain, "reobtain", false, "read the variable lazily")
	return cmd
}

// formatter reads a single setting as one concrete type.
type formatter interface {
	env(ctx context.Context, name string, def *string, reobtain bool) (string, error)
	secret(ctx context.Context, store SecretStore, collection, name string, def *string) (string, error)
}

type typed[T any] struct{}

func (typed[T]) options(def *string, reobtain bool) []settings.Option[T] {
	opts := []settings.Option[T]{settings.Reobtain[T](reobtain)}
	if def != nil {
		opts = append(opts, settings.Default[T](*def))
	}
	return opts
}

func (t typed[T]) env(ctx context.Context, name string, def *string, reobtain bool) (string, error) {
	s, err := settings.ReturnEnvVar[T](ctx, name, t.options(def, reobtain)...)
	if err != nil {
		return "", err
	}
	return settings.Format(ctx, s)
}

func (t typed[T]) secret(ctx context.Context, store SecretStore, collection, name string, def *string) (string, error) {
	opts := append(t.options(def, true), settings.SecretStore[T](store))
	s, err := settings.ReturnSecretVar[T](ctx, collection, name, opts...)
	if err != nil {
		return "", err
	}
	val, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	v, ok := val.Value()
	if !ok {
		return "", settings.NotFoundError{
			Source: "secret store",
			Name:   collection + "/" + name,
		}
	}
	return fmt.Sprint(v), nil
}

func formatAs(typ string, f func(formatter) (string, error)) (string, error) {
	switch typ {
	case "string":
		return f(typed[string]{})
	case "int":
		return f(typed[int]{})
	case "bool":
		return f(typed[bool]{})
	case "float":
		return f(typed[float64]{})
	case "duration":
		return f(typed[time.Duration]{})
	default:
		return "", UnknownTypeError{Type: typ}
	}
}

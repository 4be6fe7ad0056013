// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/z5labs/settings/pkg/slogx"

	"github.com/spf13/cobra"
)

func secretCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Read and write entries in the secret store",
	}
	cmd.AddCommand(
		secretGetCommand(s),
		secretSetCommand(s),
		secretDeleteCommand(s),
	)
	return cmd
}

func secretGetCommand(s *state) *cobra.Command {
	var vf valueFlags

	cmd := &cobra.Command{
		Use:   "get STORE KEY",
		Short: "Print a secret after conversion and defaulting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			def := vf.defaultValue(cmd)

			out, err := formatAs(vf.typ, func(f formatter) (string, error) {
				return f.secret(ctx, s.store, args[0], args[1], def)
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	vf.register(cmd)
	return cmd
}

func secretSetCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "set STORE KEY",
		Short: "Store a secret read from stdin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			secret := strings.TrimRight(string(b), "\r\n")

			err = s.store.Set(ctx, args[0], args[1], secret)
			if err != nil {
				s.log.ErrorContext(ctx, "failed to store secret", slogx.Source(args[0]), slogx.Setting(args[1]), slogx.Error(err))
				return err
			}
			s.log.InfoContext(ctx, "stored secret", slogx.Source(args[0]), slogx.Setting(args[1]))
			return nil
		},
	}
}

func secretDeleteCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete STORE KEY",
		Short: "Remove a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			err := s.store.Delete(ctx, args[0], args[1])
			if err != nil {
				s.log.ErrorContext(ctx, "failed to delete secret", slogx.Source(args[0]), slogx.Setting(args[1]), slogx.Error(err))
				return err
			}
			s.log.InfoContext(ctx, "deleted secret", slogx.Source(args[0]), slogx.Setting(args[1]))
			return nil
		},
	}
}

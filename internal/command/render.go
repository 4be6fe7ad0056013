// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"io"
	"os"

	"github.com/z5labs/settings/configtmpl"

	"github.com/spf13/cobra"
)

func renderCommand(s *state) *cobra.Command {
	var envs []string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a text/template using env, envOr, secret and setting functions",
		Long: `Render a text/template to stdout. A FILE of "-" reads the template from stdin.

Settings named with --env are bound before rendering so the template may
refer to them with the setting function.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			for _, name := range envs {
				err := s.checkEnv(ctx, name)
				if err != nil {
					return err
				}
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				r = f
			}

			_, err := io.Copy(cmd.OutOrStdout(), configtmpl.Render(ctx, r,
				configtmpl.Registry(s.registry),
				configtmpl.SecretStore(s.store),
			))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&envs, "env", nil, "environment variable to bind before rendering")
	return cmd
}

// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/z5labs/settings"
	"github.com/z5labs/settings/internal/try"
	"github.com/z5labs/settings/pkg/slogx"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// SecretRefError occurs when a --secret value is not of the form STORE/KEY.
type SecretRefError struct {
	Ref string
}

func (e SecretRefError) Error() string {
	return fmt.Sprintf("secret reference must be STORE/KEY: %s", e.Ref)
}

type checkResult struct {
	name string
	err  error
}

func checkCommand(s *state) *cobra.Command {
	var envs []string
	var secrets []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that required settings are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			checks := make([]func(context.Context) error, 0, len(envs)+len(secrets))
			names := make([]string, 0, cap(checks))
			for _, name := range envs {
				names = append(names, name)
				checks = append(checks, func(ctx context.Context) error {
					return s.checkEnv(ctx, name)
				})
			}
			for _, ref := range secrets {
				collection, key, ok := strings.Cut(ref, "/")
				if !ok || collection == "" || key == "" {
					return SecretRefError{Ref: ref}
				}
				names = append(names, ref)
				checks = append(checks, func(ctx context.Context) error {
					return s.checkSecret(ctx, ref, collection, key)
				})
			}

			results, err := runChecks(ctx, names, checks)
			if err != nil {
				return err
			}

			var failed []string
			out := cmd.OutOrStdout()
			for _, res := range results {
				if res.err == nil {
					fmt.Fprintf(out, "ok\t%s\n", res.name)
					continue
				}
				failed = append(failed, res.name)
				fmt.Fprintf(out, "fail\t%s\t%s\n", res.name, res.err)
			}
			if len(failed) > 0 {
				return CheckError{Failed: failed}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&envs, "env", nil, "environment variable which must be set")
	cmd.Flags().StringArrayVar(&secrets, "secret", nil, "secret, as STORE/KEY, which must be set")
	return cmd
}

// maxConcurrentChecks bounds how many settings are resolved at once.
const maxConcurrentChecks = 8

// runChecks runs every check concurrently. Results are in the same order
// as names. A failing check is recorded in its result; only cancellation
// of ctx stops the run and is returned.
func runChecks(ctx context.Context, names []string, checks []func(context.Context) error) ([]checkResult, error) {
	results := make([]checkResult, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, check := range checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkResult{
				name: names[i],
				err:  runCheck(gctx, check),
			}
			return ctx.Err()
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func runCheck(ctx context.Context, check func(context.Context) error) (err error) {
	defer try.Recover(&err)
	return check(ctx)
}

func (s *state) checkEnv(ctx context.Context, name string) error {
	err := settings.SetEnvVarLocally[string](ctx, s.registry, name)
	if err != nil {
		return err
	}
	_, err = settings.Resolve[string](ctx, s.registry, name)
	return err
}

func (s *state) checkSecret(ctx context.Context, ref, collection, key string) error {
	err := settings.SetSecretVarLocally[string](ctx, s.registry, ref, collection, key,
		settings.SecretStore[string](s.store),
		settings.Reobtain[string](false),
	)
	if err != nil {
		return err
	}

	_, err = settings.Resolve[string](ctx, s.registry, ref)
	if err != nil {
		s.log.WarnContext(ctx, "secret is not set", slogx.Source(collection), slogx.Setting(key), slogx.Error(err))
		return settings.NotFoundError{Source: "secret store", Name: ref}
	}
	return nil
}

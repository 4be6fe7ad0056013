// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package dotenv populates the process environment from .env files.
package dotenv

import (
	"context"
	"fmt"
	"os"

	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/internal/try"

	"github.com/joho/godotenv"
)

// DefaultPath is loaded when no paths are given.
const DefaultPath = ".env"

// ParseError is returned when a .env file exists but could not be parsed.
type ParseError struct {
	Path  string
	Cause error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("failed to parse env file: %s: %s", e.Path, e.Cause)
}

func (e ParseError) Unwrap() error {
	return e.Cause
}

// SetError is returned when a parsed variable could not be exported.
type SetError struct {
	Name  string
	Cause error
}

func (e SetError) Error() string {
	return fmt.Sprintf("failed to set environment variable: %s: %s", e.Name, e.Cause)
}

func (e SetError) Unwrap() error {
	return e.Cause
}

// Load reads each file in paths, in order, and exports the variables
// it defines. Variables already present in the environment are never
// overwritten, so earlier files take precedence over later ones.
// Files which do not exist are skipped.
func Load(ctx context.Context, paths ...string) error {
	return load(ctx, false, paths)
}

// Overload behaves like Load except every variable read is exported,
// replacing existing values. Later files take precedence.
func Overload(ctx context.Context, paths ...string) error {
	return load(ctx, true, paths)
}

// Read parses the named file without modifying the environment.
// A file which does not exist yields an unset value.
func Read(path string) config.Reader[map[string]string] {
	return config.Bind(config.ReadFile(path), func(ctx context.Context, f *os.File) config.Reader[map[string]string] {
		return config.ReaderFunc[map[string]string](func(ctx context.Context) (_ config.Value[map[string]string], err error) {
			defer try.Close(&err, f)

			vars, err := godotenv.Parse(f)
			if err != nil {
				return config.Value[map[string]string]{}, ParseError{Path: path, Cause: err}
			}
			return config.ValueOf(vars), nil
		})
	})
}

func load(ctx context.Context, override bool, paths []string) error {
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	for _, path := range paths {
		v, err := Read(path).Read(ctx)
		if err != nil {
			return err
		}

		vars, ok := v.Value()
		if !ok {
			continue
		}

		for name, value := range vars {
			if _, exists := os.LookupEnv(name); exists && !override {
				continue
			}
			if err := os.Setenv(name, value); err != nil {
				return SetError{Name: name, Cause: err}
			}
		}
	}
	return nil
}

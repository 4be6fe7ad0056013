// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package settings exposes environment variables and secret store entries as
// typed, validated values.
//
// Every value is produced by a [Pipeline]: obtain a raw string from its source,
// convert it to the target type and validate the result. A [Setting] is either
// eager, the pipeline ran once when it was created, or lazy, the pipeline runs
// again on every Read so changes to the source are always observed.
//
// # Operations
//
// There are three ways of getting at a value, each for both sources:
//
//   - TrackEnvVar and TrackSecretVar bind into the library's own [Global] registry
//   - SetEnvVarLocally and SetSecretVarLocally bind into a [Registry] you own
//   - ReturnEnvVar and ReturnSecretVar hand the Setting back to you
//
// Environment variables are eager by default and secrets are lazy by default,
// which can be changed with [Reobtain].
//
// # Basic Usage
//
// Return a value directly:
//
//	dbURL, err := settings.ReturnEnvVar[string](ctx, "DATABASE_URL")
//	if err != nil {
//	    return err
//	}
//	url, err := settings.Get(ctx, dbURL)
//
// Bind into your own registry and read it back later:
//
//	reg := settings.NewRegistry()
//	err := settings.SetEnvVarLocally(ctx, reg, "PORT",
//	    settings.Conversion(strconv.Atoi),
//	    settings.Validator(func(n int) bool { return n > 0 }),
//	    settings.Default[int]("8080"),
//	)
//	port, err := settings.Resolve[int](ctx, reg, "PORT")
//
// Track a secret from the operating system keyring:
//
//	err := settings.TrackSecretVar[string](ctx, "API_KEY", "Passwords", "my-app")
//	apiKey, err := settings.Resolve[string](ctx, settings.Global(), "API_KEY")
//
// # Errors
//
// A required environment variable which is absent fails with a [NotFoundError],
// a rejected value fails with a [ValidationError] and conversion errors are
// returned exactly as the conversion function produced them. Eager settings
// fail when they are created, lazy settings fail when they are read.
//
// # .env files
//
// Use the dotenv package, or blank import dotenv/autoload, to populate the
// process environment from a .env file before reading any settings.
package settings

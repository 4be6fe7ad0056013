// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"context"

	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/secretstore"
)

const (
	sourceEnvironment = "environment"
	sourceSecretStore = "secret store"
)

// EnvObtainer returns a Reader for the environment variable name. When the
// variable is absent def is used, if given, otherwise the Reader fails with
// a [NotFoundError].
func EnvObtainer(name string, def *string) config.Reader[string] {
	r := config.Env(name)
	if def != nil {
		r = config.Default(*def, r)
	}
	return config.ReaderFunc[string](func(ctx context.Context) (config.Value[string], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return config.Value[string]{}, err
		}
		if _, ok := val.Value(); !ok {
			return config.Value[string]{}, NotFoundError{
				Source: sourceEnvironment,
				Name:   name,
			}
		}
		return val, nil
	})
}

// SecretObtainer returns a Reader for the secret name in collection. When the
// secret is absent def is used, if given, otherwise the value is unset. It never
// fails because a secret is missing.
func SecretObtainer(store secretstore.Store, collection, name string, def *string) config.Reader[string] {
	r := secretstore.Reader(store, collection, name)
	if def == nil {
		return r
	}
	return config.Default(*def, r)
}

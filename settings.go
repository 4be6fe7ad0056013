// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import "context"

// TrackEnvVar binds the environment variable name into the [Global] registry
// under the same name. The value is read once unless [Reobtain] is given.
func TrackEnvVar[T any](ctx context.Context, name string, opts ...Option[T]) error {
	return SetEnvVarLocally(ctx, Global(), name, opts...)
}

// TrackSecretVar binds the secret nameInStore from store into the [Global]
// registry under varName. The secret is re-read on every access unless
// Reobtain(false) is given.
func TrackSecretVar[T any](ctx context.Context, varName, store, nameInStore string, opts ...Option[T]) error {
	return SetSecretVarLocally(ctx, Global(), varName, store, nameInStore, opts...)
}

// SetEnvVarLocally binds the environment variable name into r under the same name.
// The value is read once unless [Reobtain] is given.
func SetEnvVarLocally[T any](ctx context.Context, r *Registry, name string, opts ...Option[T]) error {
	o := newOptions(false, opts)
	return SetInRegistry(ctx, r, name, o.pipeline(name, EnvObtainer(name, o.def)))
}

// SetSecretVarLocally binds the secret nameInStore from store into r under varName.
// The secret is re-read on every access unless Reobtain(false) is given.
func SetSecretVarLocally[T any](ctx context.Context, r *Registry, varName, store, nameInStore string, opts ...Option[T]) error {
	o := newOptions(true, opts)
	return SetInRegistry(ctx, r, varName, o.pipeline(varName, SecretObtainer(o.store, store, nameInStore, o.def)))
}

// ReturnEnvVar returns a Setting for the environment variable name.
// The value is read once, before returning, unless [Reobtain] is given.
func ReturnEnvVar[T any](ctx context.Context, name string, opts ...Option[T]) (Setting[T], error) {
	o := newOptions(false, opts)
	return Returnable(ctx, o.pipeline(name, EnvObtainer(name, o.def)))
}

// ReturnSecretVar returns a Setting for the secret nameInStore from store.
// The secret is re-read on every access unless Reobtain(false) is given.
func ReturnSecretVar[T any](ctx context.Context, store, nameInStore string, opts ...Option[T]) (Setting[T], error) {
	o := newOptions(true, opts)
	return Returnable(ctx, o.pipeline(nameInStore, SecretObtainer(o.store, store, nameInStore, o.def)))
}

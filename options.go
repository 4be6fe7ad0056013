// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/secretstore"
)

type options[T any] struct {
	def      *string
	validate func(T) bool
	reobtain bool
	convert  func(string) (T, error)
	store    secretstore.Store
}

// Option configures how a setting of type T is obtained, converted and validated.
type Option[T any] interface {
	applyOption(*options[T])
}

type optionFunc[T any] func(*options[T])

func (f optionFunc[T]) applyOption(o *options[T]) {
	f(o)
}

// Default sets the raw value used when the source has no entry.
// The default goes through conversion and validation like any other raw value.
func Default[T any](raw string) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.def = &raw
	})
}

// Validator sets a predicate the converted value must satisfy.
func Validator[T any](f func(T) bool) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.validate = f
	})
}

// Reobtain overrides whether the value is re-read on every access (true)
// or read once when the setting is created (false).
func Reobtain[T any](b bool) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.reobtain = b
	})
}

// Conversion sets the function mapping a raw string to T. Errors it returns
// are passed to the caller unchanged. Without it [config.Decode] is used.
func Conversion[T any](f func(string) (T, error)) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.convert = f
	})
}

// SecretStore sets the store secrets are read from. It defaults to [secretstore.OS].
func SecretStore[T any](store secretstore.Store) Option[T] {
	return optionFunc[T](func(o *options[T]) {
		o.store = store
	})
}

func newOptions[T any](reobtain bool, opts []Option[T]) *options[T] {
	o := &options[T]{
		reobtain: reobtain,
		store:    secretstore.OS(),
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return o
}

func (o *options[T]) pipeline(name string, obtain config.Reader[string]) Pipeline[T] {
	return Pipeline[T]{
		Name:     name,
		Obtain:   obtain,
		Convert:  o.convert,
		Validate: o.validate,
		Reobtain: o.reobtain,
	}
}

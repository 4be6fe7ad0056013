// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"errors"
	"fmt"
)

// Value represents a configuration value which may or may not be set.
type Value[T any] struct {
	value T
	set   bool
}

// ValueOf returns a set Value holding v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{
		value: v,
		set:   true,
	}
}

// Value returns the underlying value and whether or not it has been set.
func (v Value[T]) Value() (T, bool) {
	return v.value, v.set
}

// Reader represents a source of a configuration value.
type Reader[T any] interface {
	Read(context.Context) (Value[T], error)
}

// ReaderFunc is a functional implementation of the Reader interface.
type ReaderFunc[T any] func(context.Context) (Value[T], error)

// Read implements the Reader interface.
func (f ReaderFunc[T]) Read(ctx context.Context) (Value[T], error) {
	return f(ctx)
}

// ErrValueNotSet is returned by Read when the Reader did not produce a value.
var ErrValueNotSet = errors.New("config value not set")

// Read reads a value from r. An unset value is reported as ErrValueNotSet.
func Read[T any](ctx context.Context, r Reader[T]) (T, error) {
	var zero T
	val, err := r.Read(ctx)
	if err != nil {
		return zero, err
	}
	v, ok := val.Value()
	if !ok {
		return zero, ErrValueNotSet
	}
	return v, nil
}

// Must is like Read but panics if the value can not be read.
func Must[T any](ctx context.Context, r Reader[T]) T {
	v, err := Read(ctx, r)
	if err != nil {
		panic(err)
	}
	return v
}

// MustOr returns def if r does not produce a value and panics if r fails.
func MustOr[T any](ctx context.Context, def T, r Reader[T]) T {
	return Must(ctx, Default(def, r))
}

// Default returns a Reader which falls back to def when r does not produce a value.
// Errors from r are never replaced by the default.
func Default[T any](def T, r Reader[T]) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return Value[T]{}, err
		}
		if _, ok := val.Value(); ok {
			return val, nil
		}
		return ValueOf(def), nil
	})
}

// Or returns the first set value from the given readers, in order.
func Or[T any](rs ...Reader[T]) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		for _, r := range rs {
			val, err := r.Read(ctx)
			if err != nil {
				return Value[T]{}, err
			}
			if _, ok := val.Value(); ok {
				return val, nil
			}
		}
		return Value[T]{}, nil
	})
}

// Map transforms the value produced by r with f. f is only called when
// r produces a value and its error is returned as is.
func Map[A, B any](r Reader[A], f func(context.Context, A) (B, error)) Reader[B] {
	return ReaderFunc[B](func(ctx context.Context) (Value[B], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return Value[B]{}, err
		}
		a, ok := val.Value()
		if !ok {
			return Value[B]{}, nil
		}
		b, err := f(ctx, a)
		if err != nil {
			return Value[B]{}, err
		}
		return ValueOf(b), nil
	})
}

// Bind uses the value produced by r to choose the next Reader.
func Bind[A, B any](r Reader[A], f func(context.Context, A) Reader[B]) Reader[B] {
	return ReaderFunc[B](func(ctx context.Context) (Value[B], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return Value[B]{}, err
		}
		a, ok := val.Value()
		if !ok {
			return Value[B]{}, nil
		}
		return f(ctx, a).Read(ctx)
	})
}

// ReaderOf returns a Reader which always produces v.
func ReaderOf[T any](v T) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		return ValueOf(v), nil
	})
}

// ValidationError is returned when a value is rejected by a validator.
type ValidationError struct {
	Name string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Name == "" {
		return "config value failed validation"
	}
	return fmt.Sprintf("config value failed validation: %s", e.Name)
}

// Validate returns a Reader which rejects values for which valid returns false.
// Unset values are passed through without calling valid.
func Validate[T any](name string, r Reader[T], valid func(T) bool) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return Value[T]{}, err
		}
		v, ok := val.Value()
		if !ok || valid == nil {
			return val, nil
		}
		if !valid(v) {
			return Value[T]{}, ValidationError{Name: name}
		}
		return val, nil
	})
}

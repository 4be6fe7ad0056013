// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"context"
	"fmt"

	"github.com/z5labs/settings/config"
)

// Setting is a typed configuration value. Every Read of a lazy Setting
// re-runs its [Pipeline], while an eager Setting always returns the value
// computed when it was created.
type Setting[T any] interface {
	Read(context.Context) (config.Value[T], error)
}

// Lazy is a Setting which obtains, converts and validates its value on every Read.
// It never caches.
type Lazy[T any] struct {
	p Pipeline[T]
}

// NewLazy returns a Lazy for p. The pipeline is not run until the first Read.
func NewLazy[T any](p Pipeline[T]) *Lazy[T] {
	return &Lazy[T]{p: p}
}

// Read implements the Setting interface.
func (l *Lazy[T]) Read(ctx context.Context) (config.Value[T], error) {
	return l.p.Read(ctx)
}

// Fixed is a Setting whose value was computed once.
type Fixed[T any] struct {
	val config.Value[T]
}

// Read implements the Setting interface.
func (f Fixed[T]) Read(context.Context) (config.Value[T], error) {
	return f.val, nil
}

// Returnable turns p into a Setting. When p.Reobtain is set a [Lazy] is
// returned without running the pipeline. Otherwise the pipeline runs now
// and any error it produces is returned immediately.
func Returnable[T any](ctx context.Context, p Pipeline[T]) (Setting[T], error) {
	if p.Reobtain {
		return NewLazy(p), nil
	}
	val, err := p.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Fixed[T]{val: val}, nil
}

// Get reads s once and returns its value. An unset value, e.g. a missing
// secret without a default, is returned as the zero value of T.
func Get[T any](ctx context.Context, s Setting[T]) (T, error) {
	val, err := s.Read(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := val.Value()
	return v, nil
}

// Equal reads s once and reports whether its value equals other.
// An unset value is never equal to anything.
func Equal[T comparable](ctx context.Context, s Setting[T], other T) (bool, error) {
	val, err := s.Read(ctx)
	if err != nil {
		return false, err
	}
	v, ok := val.Value()
	return ok && v == other, nil
}

// Format reads s once and formats its value with the default fmt verb.
// An unset value formats as "<nil>".
func Format[T any](ctx context.Context, s Setting[T]) (string, error) {
	val, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	v, ok := val.Value()
	if !ok {
		return "<nil>", nil
	}
	return fmt.Sprint(v), nil
}

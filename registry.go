// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"context"
	"log/slog"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/pkg/slogx"
)

type registryOptions struct {
	logHandler slog.Handler
}

// RegistryOption configures a Registry.
type RegistryOption interface {
	applyRegistry(*registryOptions)
}

type registryOptionFunc func(*registryOptions)

func (f registryOptionFunc) applyRegistry(ro *registryOptions) {
	f(ro)
}

// LogHandler sets the slog.Handler bindings are logged to. Secret values
// are always masked.
func LogHandler(h slog.Handler) RegistryOption {
	return registryOptionFunc(func(ro *registryOptions) {
		ro.logHandler = h
	})
}

// Registry is a namespace of named settings. It is safe for concurrent use.
type Registry struct {
	log *slog.Logger

	mu       sync.RWMutex
	bindings map[string]binding
}

type binding struct {
	setting any
	typ     reflect.Type
	format  func(context.Context) (string, error)
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	ro := &registryOptions{
		logHandler: slogx.NoopHandler(),
	}
	for _, opt := range opts {
		opt.applyRegistry(ro)
	}
	return &Registry{
		log:      slogx.New(ro.logHandler),
		bindings: make(map[string]binding),
	}
}

var global atomic.Pointer[Registry]

func init() {
	global.Store(NewRegistry())
}

// Global returns the library's own Registry which TrackEnvVar and TrackSecretVar bind into.
func Global() *Registry {
	return global.Load()
}

// SetGlobal replaces the Registry returned by Global.
func SetGlobal(r *Registry) {
	global.Store(r)
}

// SetInRegistry turns p into a Setting with [Returnable] and binds it under name
// in r, replacing any previous binding. Eager pipelines run before anything is
// bound so a failing pipeline leaves r untouched.
func SetInRegistry[T any](ctx context.Context, r *Registry, name string, p Pipeline[T]) error {
	if r == nil {
		return ErrNoNamespace
	}
	s, err := Returnable(ctx, p)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to resolve setting", slogx.Setting(name), slogx.Error(err))
		return err
	}
	bind(r, name, s)

	attrs := []any{slogx.Setting(name), slogx.Reobtain(p.Reobtain)}
	if f, ok := s.(Fixed[T]); ok {
		v, _ := f.val.Value()
		attrs = append(attrs, slogx.Secret(v))
	}
	r.log.DebugContext(ctx, "bound setting", attrs...)
	return nil
}

func bind[T any](r *Registry, name string, s Setting[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bindings[name] = binding{
		setting: s,
		typ:     reflect.TypeOf((*T)(nil)).Elem(),
		format: func(ctx context.Context) (string, error) {
			return Format(ctx, s)
		},
	}
}

// Lookup returns the Setting bound under name.
func Lookup[T any](r *Registry, name string) (Setting[T], error) {
	if r == nil {
		return nil, ErrNoNamespace
	}
	r.mu.RLock()
	b, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return nil, UnboundError{Name: name}
	}
	s, ok := b.setting.(Setting[T])
	if !ok {
		return nil, BindingTypeError{
			Name: name,
			Want: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:  b.typ.String(),
		}
	}
	return s, nil
}

// Resolve looks up the Setting bound under name and reads it.
// An unset value is reported as [config.ErrValueNotSet].
func Resolve[T any](ctx context.Context, r *Registry, name string) (T, error) {
	s, err := Lookup[T](r, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return config.Read[T](ctx, s)
}

// Format reads the setting bound under name, whatever its type, and
// formats it like [Format].
func (r *Registry) Format(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	b, ok := r.bindings[name]
	r.mu.RUnlock()
	if !ok {
		return "", UnboundError{Name: name}
	}
	return b.format(ctx)
}

// Names returns the bound names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Unbind removes the binding for name, if any.
func (r *Registry) Unbind(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bindings, name)
}

// Clear removes every binding.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.bindings)
}

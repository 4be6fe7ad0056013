// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package configtmpl renders text/template documents whose values are
// resolved from the environment, a secret store or a settings Registry.
//
// The following functions are available to every template:
//
//	{{ env "NAME" }}                  environment variable, required
//	{{ envOr "NAME" "fallback" }}     environment variable with a default
//	{{ secret "collection" "name" }}  secret store entry, required
//	{{ setting "NAME" }}              setting bound in a Registry
//	{{ default "fallback" .X }}       fallback for nil or zero values
package configtmpl

import (
	"context"
	"reflect"
	"text/template"

	"github.com/z5labs/settings"
	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/secretstore"
)

type funcs struct {
	ctx      context.Context
	registry *settings.Registry
	store    secretstore.Store
}

func (f funcs) funcMap() template.FuncMap {
	return template.FuncMap{
		"env":     f.env,
		"envOr":   f.envOr,
		"secret":  f.secret,
		"setting": f.setting,
		"default": Default,
	}
}

func (f funcs) env(name string) (string, error) {
	return config.Read(f.ctx, settings.EnvObtainer(name, nil))
}

func (f funcs) envOr(name, def string) (string, error) {
	return config.Read(f.ctx, settings.EnvObtainer(name, &def))
}

func (f funcs) secret(collection, name string) (string, error) {
	val, err := settings.SecretObtainer(f.store, collection, name, nil).Read(f.ctx)
	if err != nil {
		return "", err
	}
	v, ok := val.Value()
	if !ok {
		return "", settings.NotFoundError{
			Source: "secret store",
			Name:   collection + "/" + name,
		}
	}
	return v, nil
}

func (f funcs) setting(name string) (string, error) {
	if f.registry == nil {
		return "", settings.ErrNoNamespace
	}
	return f.registry.Format(f.ctx, name)
}

// Default returns the provided def value if v is either nil or the zero value for its type.
func Default(def, v any) any {
	if v == nil {
		return def
	}
	val := reflect.ValueOf(v)
	if val.IsZero() {
		return def
	}
	return v
}

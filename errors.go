// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"errors"
	"fmt"

	"github.com/z5labs/settings/config"
)

// NotFoundError occurs when a required value is absent from its source
// and no default was provided.
type NotFoundError struct {
	Source string
	Name   string
}

// Error implements the [builtin.error] interface.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s variable %s is required but not set", e.Source, e.Name)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e NotFoundError) Unwrap() error {
	return config.ErrValueNotSet
}

// ValidationError occurs when a converted value is rejected by its validator.
type ValidationError = config.ValidationError

// ErrNoNamespace is returned when a setting is bound without a [Registry] to bind it into.
var ErrNoNamespace = errors.New("settings: no registry to bind into")

// UnboundError occurs when looking up a name which has no binding.
type UnboundError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e UnboundError) Error() string {
	return fmt.Sprintf("no setting bound to name: %s", e.Name)
}

// BindingTypeError occurs when looking up a binding with a different
// type than it was bound with.
type BindingTypeError struct {
	Name string
	Want string
	Got  string
}

// Error implements the [builtin.error] interface.
func (e BindingTypeError) Error() string {
	return fmt.Sprintf("setting %s is bound as %s not %s", e.Name, e.Got, e.Want)
}

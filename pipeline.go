// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"context"

	"github.com/z5labs/settings/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Pipeline describes how a setting is produced: obtain a raw string,
// convert it and validate the result.
//
// A nil Convert uses [config.Decode] and a nil Validate accepts every value.
// An unset raw value is never converted but Validate still sees the zero
// value of T, so rejecting it makes the setting required.
type Pipeline[T any] struct {
	Name     string
	Obtain   config.Reader[string]
	Convert  func(string) (T, error)
	Validate func(T) bool

	// Reobtain selects between running the pipeline on every access
	// or once when the setting is created.
	Reobtain bool
}

// Read runs the pipeline once.
func (p Pipeline[T]) Read(ctx context.Context) (config.Value[T], error) {
	spanCtx, span := otel.Tracer("settings").Start(ctx, "Pipeline.Read")
	defer span.End()
	span.SetAttributes(
		attribute.String("settings.name", p.Name),
		attribute.Bool("settings.reobtain", p.Reobtain),
	)

	val, err := p.reader().Read(spanCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return config.Value[T]{}, err
	}
	_, ok := val.Value()
	span.SetAttributes(attribute.Bool("settings.set", ok))
	return val, nil
}

func (p Pipeline[T]) reader() config.Reader[T] {
	var converted config.Reader[T]
	if p.Convert == nil {
		converted = config.Convert[T](p.Obtain)
	} else {
		converted = config.Map(p.Obtain, func(_ context.Context, s string) (T, error) {
			return p.Convert(s)
		})
	}
	validated := config.Validate(p.Name, converted, p.Validate)
	if p.Validate == nil {
		return validated
	}
	return config.ReaderFunc[T](func(ctx context.Context) (config.Value[T], error) {
		val, err := validated.Read(ctx)
		if err != nil {
			return config.Value[T]{}, err
		}
		if _, ok := val.Value(); ok {
			return val, nil
		}

		// An unset value is validated as the zero value of T so a
		// validator can make a setting required.
		var zero T
		if !p.Validate(zero) {
			return config.Value[T]{}, ValidationError{Name: p.Name}
		}
		return val, nil
	})
}

// ObtainConvertValidate runs obtain, then convert on the raw value, then validate on
// the converted value. Errors from obtain and convert are returned unchanged and a
// rejected value fails with a [ValidationError]. An unset raw value skips conversion,
// is validated as the zero value of T and, when accepted, produces an unset result.
func ObtainConvertValidate[T any](
	ctx context.Context,
	obtain config.Reader[string],
	convert func(string) (T, error),
	validate func(T) bool,
) (config.Value[T], error) {
	p := Pipeline[T]{
		Obtain:   obtain,
		Convert:  convert,
		Validate: validate,
	}
	return p.Read(ctx)
}

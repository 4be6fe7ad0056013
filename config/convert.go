// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// BoolFromString parses the string produced by r with strconv.ParseBool.
func BoolFromString(r Reader[string]) Reader[bool] {
	return Map(r, func(_ context.Context, s string) (bool, error) {
		return strconv.ParseBool(s)
	})
}

// IntFromString parses the string produced by r with strconv.Atoi.
func IntFromString(r Reader[string]) Reader[int] {
	return Map(r, func(_ context.Context, s string) (int, error) {
		return strconv.Atoi(s)
	})
}

// Int64FromString parses the string produced by r as a base 10 int64.
func Int64FromString(r Reader[string]) Reader[int64] {
	return Map(r, func(_ context.Context, s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Float64FromString parses the string produced by r as a float64.
func Float64FromString(r Reader[string]) Reader[float64] {
	return Map(r, func(_ context.Context, s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// DurationFromString parses the string produced by r with time.ParseDuration.
func DurationFromString(r Reader[string]) Reader[time.Duration] {
	return Map(r, func(_ context.Context, s string) (time.Duration, error) {
		return time.ParseDuration(s)
	})
}

// Convert decodes the string produced by r into T using Decode.
func Convert[T any](r Reader[string]) Reader[T] {
	return Map(r, func(_ context.Context, s string) (T, error) {
		return Decode[T](s)
	})
}

// Decode converts s into a T.
//
// Types implementing encoding.TextUnmarshaler (through a pointer receiver)
// use UnmarshalText, time.Duration uses time.ParseDuration, bools and
// numbers use the strconv parsers (so "" is an error, not zero) and slices,
// maps and structs are parsed as YAML (which also accepts JSON). Any failure
// is returned as a TypeCoercionError.
func Decode[T any](s string) (T, error) {
	var out T
	from := reflect.ValueOf(s)
	to := reflect.ValueOf(&out).Elem()

	v, err := decodeHook(from, to)
	if err != nil {
		return out, err
	}
	if decoded, ok := v.(T); ok {
		return decoded, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook,
	})
	if err != nil {
		return out, err
	}
	err = dec.Decode(v)
	if err != nil {
		var zero T
		return zero, TypeCoercionError{
			from:  from.Type(),
			to:    to.Type(),
			Cause: err,
		}
	}
	return out, nil
}

var decodeHook = composeDecodeHooks(
	textUnmarshalerHookFunc(),
	timeDurationHookFunc(),
	scalarHookFunc(),
	yamlHookFunc(),
)

var errInvalidDecodeCondition = errors.New("invalid decode condition")

// TypeCoercionError occurs when a string can not be converted
// into the requested type.
type TypeCoercionError struct {
	from  reflect.Type
	to    reflect.Type
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.from, e.to, e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if err == errInvalidDecodeCondition {
				continue
			}
			return nil, TypeCoercionError{
				from:  f.Type(),
				to:    t.Type(),
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || !reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t)
		err := result.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(data.(string)))
		if err != nil {
			return nil, err
		}
		return result.Elem().Interface(), nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(data.(string))
		case reflect.Int:
			return time.Duration(int64(data.(int))), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}

func scalarHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		s := data.(string)

		var v any
		var err error
		switch t.Kind() {
		case reflect.Bool:
			v, err = strconv.ParseBool(s)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v, err = strconv.ParseInt(s, 10, t.Bits())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v, err = strconv.ParseUint(s, 10, t.Bits())
		case reflect.Float32, reflect.Float64:
			v, err = strconv.ParseFloat(s, t.Bits())
		default:
			return nil, errInvalidDecodeCondition
		}
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	}
}

func yamlHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errInvalidDecodeCondition
		}
		switch t.Kind() {
		case reflect.Slice:
			// []byte is left to mapstructure which copies the raw string.
			if t.Elem().Kind() == reflect.Uint8 {
				return nil, errInvalidDecodeCondition
			}
		case reflect.Array, reflect.Map, reflect.Struct:
		default:
			return nil, errInvalidDecodeCondition
		}

		result := reflect.New(t)
		err := yaml.Unmarshal([]byte(data.(string)), result.Interface())
		if err != nil {
			return nil, err
		}
		return result.Elem().Interface(), nil
	}
}

// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package slogx

import "log/slog"

// SecretKey is the attribute key for secret values. It is always masked.
const SecretKey = "secret"

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// Setting returns an slog.Attr naming a setting.
func Setting(name string) slog.Attr {
	return slog.String("setting", name)
}

// Source returns an slog.Attr naming where a setting came from, e.g. "environment".
func Source(src string) slog.Attr {
	return slog.String("source", src)
}

// Reobtain returns an slog.Attr recording whether a setting is re-read on every access.
func Reobtain(b bool) slog.Attr {
	return slog.Bool("reobtain", b)
}

// Secret returns an slog.Attr for a secret value. Handlers created
// by NewHandler never output it.
func Secret(v any) slog.Attr {
	return slog.Any(SecretKey, v)
}

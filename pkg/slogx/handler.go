// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogx provides the slog.Handler used by settings. It correlates
// records with the active OpenTelemetry span and masks sensitive attributes.
package slogx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Masked is the replacement value for masked attributes.
const Masked = "****"

type options struct {
	masked map[string]bool
}

// Option helps configure the Handler.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// Mask registers attribute keys whose values are replaced with Masked.
// Handlers always mask SecretKey.
func Mask(keys ...string) Option {
	return optionFunc(func(o *options) {
		for _, k := range keys {
			o.masked[k] = true
		}
	})
}

// Handler is an slog.Handler which adds the Trace ID and Span ID of the
// active span to each record and masks registered attributes.
type Handler struct {
	slog   slog.Handler
	masked map[string]bool
}

// NewHandler wraps h.
func NewHandler(h slog.Handler, opts ...Option) *Handler {
	o := &options{
		masked: map[string]bool{SecretKey: true},
	}
	for _, opt := range opts {
		opt.applyOption(o)
	}
	return &Handler{
		slog:   h,
		masked: o.masked,
	}
}

// New provides a simple wrapper for slog.New(NewHandler(h, opts...)).
func New(h slog.Handler, opts ...Option) *slog.Logger {
	return slog.New(NewHandler(h, opts...))
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(h.mask(a))
		return true
	})

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.Group(
				"otel",
				slog.String("trace_id", spanCtx.TraceID().String()),
				slog.String("span_id", spanCtx.SpanID().String()),
			),
		)
	}
	return h.slog.Handle(ctx, r)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{
		slog:   h.slog.WithAttrs(masked),
		masked: h.masked,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		slog:   h.slog.WithGroup(name),
		masked: h.masked,
	}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if h.masked[a.Key] {
		return slog.String(a.Key, Masked)
	}
	if a.Value.Kind() != slog.KindGroup {
		return a
	}
	group := a.Value.Group()
	attrs := make([]any, len(group))
	for i, ga := range group {
		attrs[i] = h.mask(ga)
	}
	return slog.Group(a.Key, attrs...)
}

type noopHandler struct{}

// NoopHandler returns a slog.Handler which discards every record.
func NoopHandler() slog.Handler {
	return noopHandler{}
}

func (noopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h noopHandler) WithGroup(string) slog.Handler           { return h }

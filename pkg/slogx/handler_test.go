// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package slogx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	err := json.Unmarshal(buf.Bytes(), &record)
	if !assert.Nil(t, err) {
		t.FailNow()
	}
	return record
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will mask", func(t *testing.T) {
		t.Run("if the attr is a secret", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil))

			log.Info("bound setting", Setting("API_KEY"), Secret("super duper secret value"))

			record := decodeRecord(t, &buf)
			if !assert.Equal(t, Masked, record[SecretKey]) {
				return
			}
			if !assert.Equal(t, "API_KEY", record["setting"]) {
				return
			}
		})

		t.Run("if the attr key was registered with Mask", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil), Mask("dsn"))

			log.Info("bound setting", slog.String("dsn", "postgres://user:pass@db"))

			record := decodeRecord(t, &buf)
			if !assert.Equal(t, Masked, record["dsn"]) {
				return
			}
		})

		t.Run("if the attr is nested in a group", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil))

			log.Info("bound setting", slog.Group("binding", Secret("hunter2")))

			record := decodeRecord(t, &buf)
			group, ok := record["binding"].(map[string]any)
			if !assert.True(t, ok) {
				return
			}
			if !assert.Equal(t, Masked, group[SecretKey]) {
				return
			}
		})

		t.Run("if the attr was added with WithAttrs", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil)).With(Secret("hunter2")).WithGroup("g")

			log.Info("hello")

			record := decodeRecord(t, &buf)
			if !assert.Equal(t, Masked, record[SecretKey]) {
				return
			}
		})
	})

	t.Run("will add trace and span ids", func(t *testing.T) {
		t.Run("if the context carries a valid span", func(t *testing.T) {
			tp := sdktrace.NewTracerProvider()
			defer tp.Shutdown(context.Background())

			ctx, span := tp.Tracer("test").Start(context.Background(), "test")
			defer span.End()

			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil))
			log.InfoContext(ctx, "hello")

			record := decodeRecord(t, &buf)
			group, ok := record["otel"].(map[string]any)
			if !assert.True(t, ok) {
				return
			}
			if !assert.Equal(t, span.SpanContext().TraceID().String(), group["trace_id"]) {
				return
			}
			if !assert.Equal(t, span.SpanContext().SpanID().String(), group["span_id"]) {
				return
			}
		})
	})

	t.Run("will not add trace ids", func(t *testing.T) {
		t.Run("if there is no span", func(t *testing.T) {
			var buf bytes.Buffer
			log := New(slog.NewJSONHandler(&buf, nil))
			log.InfoContext(context.Background(), "hello")

			record := decodeRecord(t, &buf)
			if !assert.NotContains(t, record, "otel") {
				return
			}
		})
	})
}

func TestNoopHandler(t *testing.T) {
	h := NoopHandler()
	if !assert.False(t, h.Enabled(context.Background(), slog.LevelError)) {
		return
	}
	if !assert.Nil(t, h.WithAttrs(nil).WithGroup("g").Handle(context.Background(), slog.Record{})) {
		return
	}
}

// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/z5labs/settings/config"
	"github.com/z5labs/settings/pkg/slogx"

	"github.com/stretchr/testify/require"
)

func fixedPipeline[T any](name string, raw string) Pipeline[T] {
	return Pipeline[T]{
		Name:   name,
		Obtain: config.ReaderOf(raw),
	}
}

func TestSetInRegistry(t *testing.T) {
	t.Run("rebinding a name replaces the previous setting", func(t *testing.T) {
		r := NewRegistry()
		ctx := context.Background()

		require.NoError(t, SetInRegistry(ctx, r, "N", fixedPipeline[int]("N", "1")))
		require.NoError(t, SetInRegistry(ctx, r, "N", fixedPipeline[int]("N", "2")))

		v, err := Resolve[int](ctx, r, "N")
		require.NoError(t, err)
		require.Equal(t, 2, v)
		require.Equal(t, []string{"N"}, r.Names())
	})

	t.Run("a failing eager pipeline leaves the old binding in place", func(t *testing.T) {
		r := NewRegistry()
		ctx := context.Background()

		require.NoError(t, SetInRegistry(ctx, r, "N", fixedPipeline[int]("N", "1")))

		p := fixedPipeline[int]("N", "x")
		p.Convert = strconv.Atoi
		require.Error(t, SetInRegistry(ctx, r, "N", p))

		v, err := Resolve[int](ctx, r, "N")
		require.NoError(t, err)
		require.Equal(t, 1, v)
	})

	t.Run("logs bindings without leaking their values", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRegistry(LogHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		err := SetInRegistry(context.Background(), r, "API_KEY", fixedPipeline[string]("API_KEY", "hunter2"))
		require.NoError(t, err)

		require.Contains(t, buf.String(), "bound setting")
		require.Contains(t, buf.String(), "setting=API_KEY")
		require.Contains(t, buf.String(), slogx.Masked)
		require.NotContains(t, buf.String(), "hunter2")
	})

	t.Run("will return ErrNoNamespace for a nil registry", func(t *testing.T) {
		err := SetInRegistry(context.Background(), nil, "N", fixedPipeline[int]("N", "1"))
		require.ErrorIs(t, err, ErrNoNamespace)
	})
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	require.NoError(t, SetInRegistry(ctx, r, "N", fixedPipeline[int]("N", "1")))

	t.Run("returns the bound setting", func(t *testing.T) {
		s, err := Lookup[int](r, "N")
		require.NoError(t, err)

		v, err := Get(ctx, s)
		require.NoError(t, err)
		require.Equal(t, 1, v)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the name is not bound", func(t *testing.T) {
			_, err := Lookup[int](r, "M")

			var uerr UnboundError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "M", uerr.Name)
		})

		t.Run("if the name is bound with a different type", func(t *testing.T) {
			_, err := Lookup[string](r, "N")

			var terr BindingTypeError
			require.ErrorAs(t, err, &terr)
			require.Equal(t, "int", terr.Got)
			require.Equal(t, "string", terr.Want)
		})

		t.Run("if the registry is nil", func(t *testing.T) {
			_, err := Lookup[int](nil, "N")
			require.ErrorIs(t, err, ErrNoNamespace)
		})
	})
}

func TestResolve(t *testing.T) {
	t.Run("reports unset values as config.ErrValueNotSet", func(t *testing.T) {
		r := NewRegistry()
		p := Pipeline[string]{Name: "S", Obtain: unsetString()}
		require.NoError(t, SetInRegistry(context.Background(), r, "S", p))

		_, err := Resolve[string](context.Background(), r, "S")
		require.ErrorIs(t, err, config.ErrValueNotSet)
	})
}

func TestRegistry_Unbind(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	require.NoError(t, SetInRegistry(ctx, r, "A", fixedPipeline[int]("A", "1")))
	require.NoError(t, SetInRegistry(ctx, r, "B", fixedPipeline[int]("B", "2")))

	r.Unbind("A")
	require.Equal(t, []string{"B"}, r.Names())

	r.Clear()
	require.Empty(t, r.Names())

	_, err := Lookup[int](r, "B")
	require.ErrorAs(t, err, &UnboundError{})
}

func TestRegistry_concurrentUse(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			name := "N" + strconv.Itoa(i)
			err := SetInRegistry(ctx, r, name, fixedPipeline[int](name, strconv.Itoa(i)))
			if err != nil {
				t.Error(err)
				return
			}
			_, err = Resolve[int](ctx, r, name)
			if err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, r.Names(), 8)
}

func TestRegistry_Format(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()
	require.NoError(t, SetInRegistry(ctx, r, "N", fixedPipeline[int]("N", "42")))
	require.NoError(t, SetInRegistry(ctx, r, "S", Pipeline[string]{Name: "S", Obtain: unsetString()}))

	t.Run("formats bindings of any type", func(t *testing.T) {
		s, err := r.Format(ctx, "N")
		require.NoError(t, err)
		require.Equal(t, "42", s)
	})

	t.Run("formats unset values as <nil>", func(t *testing.T) {
		s, err := r.Format(ctx, "S")
		require.NoError(t, err)
		require.Equal(t, "<nil>", s)
	})

	t.Run("will return an UnboundError for unknown names", func(t *testing.T) {
		_, err := r.Format(ctx, "M")
		require.ErrorAs(t, err, &UnboundError{})
	})
}

// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package secretstore

import (
	"context"
	"errors"
	"testing"

	"github.com/z5labs/settings/config"

	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyring_Get(t *testing.T) {
	t.Run("returns the stored secret", func(t *testing.T) {
		keyring.MockInit()
		ctx := context.Background()

		require.NoError(t, OS().Set(ctx, "Passwords", "app", "hunter2"))

		v, err := config.Read(ctx, Reader(OS(), "Passwords", "app"))
		require.NoError(t, err)
		require.Equal(t, "hunter2", v)
	})

	t.Run("reports a missing secret as unset", func(t *testing.T) {
		keyring.MockInit()

		val, err := OS().Get(context.Background(), "Passwords", "missing")
		require.NoError(t, err)
		_, ok := val.Value()
		require.False(t, ok)
	})

	t.Run("keeps an empty secret distinct from a missing one", func(t *testing.T) {
		keyring.MockInit()
		ctx := context.Background()

		require.NoError(t, OS().Set(ctx, "Passwords", "empty", ""))

		val, err := OS().Get(ctx, "Passwords", "empty")
		require.NoError(t, err)
		v, ok := val.Value()
		require.True(t, ok)
		require.Equal(t, "", v)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the backend fails", func(t *testing.T) {
			backendErr := errors.New("secret service unavailable")
			keyring.MockInitWithError(backendErr)
			t.Cleanup(keyring.MockInit)

			_, err := OS().Get(context.Background(), "Passwords", "app")

			var lerr LookupError
			require.ErrorAs(t, err, &lerr)
			require.ErrorIs(t, err, backendErr)
			require.Equal(t, "Passwords", lerr.Collection)
			require.Equal(t, "app", lerr.Name)
		})

		t.Run("if the context is already cancelled", func(t *testing.T) {
			keyring.MockInit()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := OS().Get(ctx, "Passwords", "app")
			require.ErrorIs(t, err, context.Canceled)
		})
	})
}

func TestKeyring_Delete(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	require.NoError(t, OS().Set(ctx, "Passwords", "app", "hunter2"))
	require.NoError(t, OS().Delete(ctx, "Passwords", "app"))
	require.NoError(t, OS().Delete(ctx, "Passwords", "app"))

	val, err := OS().Get(ctx, "Passwords", "app")
	require.NoError(t, err)
	_, ok := val.Value()
	require.False(t, ok)
}

func TestMemory(t *testing.T) {
	var m Memory
	ctx := context.Background()

	val, err := m.Get(ctx, "store", "key")
	require.NoError(t, err)
	_, ok := val.Value()
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, "store", "key", "old_secret"))
	v, err := config.Read(ctx, Reader(&m, "store", "key"))
	require.NoError(t, err)
	require.Equal(t, "old_secret", v)

	require.NoError(t, m.Set(ctx, "store", "key", "new_secret"))
	v, err = config.Read(ctx, Reader(&m, "store", "key"))
	require.NoError(t, err)
	require.Equal(t, "new_secret", v)

	require.NoError(t, m.Delete(ctx, "store", "key"))
	_, err = config.Read(ctx, Reader(&m, "store", "key"))
	require.ErrorIs(t, err, config.ErrValueNotSet)
}

// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package secretstore provides access to secrets kept in a credential store,
// such as the one provided by the operating system.
//
// Secrets are addressed by a collection (the keyring "service") and a name
// within that collection (the keyring "user").
package secretstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/z5labs/settings/config"

	"github.com/zalando/go-keyring"
)

// Store represents a credential store which secrets can be read from.
//
// A missing secret must be reported as an unset config.Value and not as an error.
// A secret which exists but is empty is reported as a set, empty value.
type Store interface {
	Get(ctx context.Context, collection, name string) (config.Value[string], error)
}

// Reader returns a config.Reader for the secret named name in the given collection.
func Reader(s Store, collection, name string) config.Reader[string] {
	return config.ReaderFunc[string](func(ctx context.Context) (config.Value[string], error) {
		return s.Get(ctx, collection, name)
	})
}

// LookupError occurs when the underlying store fails for a reason other than
// the secret not existing.
type LookupError struct {
	Collection string
	Name       string
	Cause      error
}

// Error implements the error interface.
func (e LookupError) Error() string {
	return fmt.Sprintf("failed to look up secret %s in %s: %s", e.Name, e.Collection, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e LookupError) Unwrap() error {
	return e.Cause
}

// Keyring is a Store backed by the operating system keyring, e.g. the
// Secret Service on Linux, Keychain on macOS or the Windows Credential Manager.
type Keyring struct{}

// OS returns the Store backed by the operating system keyring.
func OS() Keyring {
	return Keyring{}
}

// Get implements the Store interface.
func (Keyring) Get(ctx context.Context, collection, name string) (config.Value[string], error) {
	if err := ctx.Err(); err != nil {
		return config.Value[string]{}, err
	}
	secret, err := keyring.Get(collection, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return config.Value[string]{}, nil
	}
	if err != nil {
		return config.Value[string]{}, LookupError{
			Collection: collection,
			Name:       name,
			Cause:      err,
		}
	}
	return config.ValueOf(secret), nil
}

// Set stores secret under name in the given collection, replacing any previous value.
func (Keyring) Set(ctx context.Context, collection, name, secret string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return keyring.Set(collection, name, secret)
}

// Delete removes the secret. Deleting a secret which does not exist is not an error.
func (Keyring) Delete(ctx context.Context, collection, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := keyring.Delete(collection, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Memory is an in-memory Store which is safe for concurrent use.
// The zero value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	secrets map[memoryKey]string
}

type memoryKey struct {
	collection string
	name       string
}

// Get implements the Store interface.
func (m *Memory) Get(ctx context.Context, collection, name string) (config.Value[string], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	secret, ok := m.secrets[memoryKey{collection: collection, name: name}]
	if !ok {
		return config.Value[string]{}, nil
	}
	return config.ValueOf(secret), nil
}

// Set stores secret under name in the given collection.
func (m *Memory) Set(ctx context.Context, collection, name, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.secrets == nil {
		m.secrets = make(map[memoryKey]string)
	}
	m.secrets[memoryKey{collection: collection, name: name}] = secret
	return nil
}

// Delete removes the secret, if present.
func (m *Memory) Delete(ctx context.Context, collection, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.secrets, memoryKey{collection: collection, name: name})
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// DefaultService is the keyring service name used when Config.Service is empty.
const DefaultService = "nudge"

// KeyringKV stores values in the OS keyring (or its encrypted file fallback).
type KeyringKV struct {
	ring keyring.Keyring
}

// NewKeyringKV wraps an already opened keyring.
func NewKeyringKV(ring keyring.Keyring) *KeyringKV {
	return &KeyringKV{ring: ring}
}

// OpenKeyringKV opens the system keyring for service. fileDir is where the
// file backend keeps its items when no native keyring is available.
func OpenKeyringKV(service, fileDir string) (*KeyringKV, error) {
	if service == "" {
		service = DefaultService
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &KeyringKV{ring: ring}, nil
}

func (k *KeyringKV) Get(_ context.Context, key string) ([]byte, error) {
	item, err := k.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting keyring item %q: %w", key, err)
	}
	return item.Data, nil
}

func (k *KeyringKV) Set(_ context.Context, key string, value []byte) error {
	err := k.ring.Set(keyring.Item{
		Key:   key,
		Data:  value,
		Label: "nudge " + key,
	})
	if err != nil {
		return fmt.Errorf("setting keyring item %q: %w", key, err)
	}
	return nil
}

func (k *KeyringKV) Delete(_ context.Context, key string) error {
	err := k.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing keyring item %q: %w", key, err)
	}
	return nil
}

func (k *KeyringKV) Close() error { return nil }

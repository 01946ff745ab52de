// ABOUTME: KV is the small key-value surface all stores are built on
// ABOUTME: Backed by charm cloud KV in production and an in-memory map in tests

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound reports a missing key
var ErrNotFound = errors.New("key not found")

// KV is the storage surface the stores need
type KV interface {
	Set(key string, value []byte) error
	// Get returns ErrNotFound for a missing key
	Get(key string) ([]byte, error)
	Delete(key string) error
	// Keys returns all keys starting with prefix, in unspecified order
	Keys(prefix string) ([]string, error)
}

// setJSON marshals and stores a value under key
func setJSON(kv KV, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", key, err)
	}
	return kv.Set(key, data)
}

// getJSON retrieves and unmarshals the value under key
func getJSON(kv KV, key string, dest any) error {
	data, err := kv.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", key, err)
	}
	return nil
}

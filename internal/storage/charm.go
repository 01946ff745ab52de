// ABOUTME: Charm KV client wrapper for cloud-synced journal storage
// ABOUTME: SSH-key auth and cross-device sync come for free from charm

package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/charmbracelet/charm/kv"
)

// CharmConfig holds charm KV configuration
type CharmConfig struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultCharmConfig reads charm settings from the environment
func DefaultCharmConfig() CharmConfig {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	db := os.Getenv("CHARM_DB")
	if db == "" {
		db = "haven"
	}
	return CharmConfig{Host: host, DBName: db, AutoSync: true}
}

// CharmKV implements KV on top of charm's cloud-synced key-value store
type CharmKV struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.Mutex
}

// OpenCharm opens the charm KV database. Pulls remote data on open when
// AutoSync is set.
func OpenCharm(cfg CharmConfig) (*CharmKV, error) {
	// charm reads the host from the environment when opening
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("opening charm kv: %w", err)
	}

	c := &CharmKV{kv: db, autoSync: cfg.AutoSync}
	if cfg.AutoSync {
		_ = db.Sync()
	}
	return c, nil
}

// Close closes the underlying database
func (c *CharmKV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

func (c *CharmKV) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("setting key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmKV) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := c.kv.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting key %s: %w", key, err)
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func (c *CharmKV) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

func (c *CharmKV) Keys(prefix string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	var result []string
	for _, key := range keys {
		s := string(key)
		if strings.HasPrefix(s, prefix) {
			result = append(result, s)
		}
	}
	return result, nil
}

// Sync manually triggers a sync with the cloud
func (c *CharmKV) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// syncIfEnabled pushes writes to the cloud; callers hold the mutex
func (c *CharmKV) syncIfEnabled() {
	if c.autoSync {
		_ = c.kv.Sync()
	}
}

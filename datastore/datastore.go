// Package datastore implements a small JSON-file key/value store with
// periodic autosave. Writes are staged in memory and flushed atomically via
// a temp file rename; a checksum of the last saved payload avoids rewriting
// unchanged data.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds configuration options for the DataStore.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
}

// DefaultConfig returns a default configuration for the given file path.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
	}
}

// DataStore is a thread-safe in-memory map persisted to a JSON file.
type DataStore struct {
	mu           sync.RWMutex
	data         map[string]any
	config       *Config
	lastChecksum string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeMu sync.Mutex
	closed  bool
}

// New opens (or creates) a store at the config's file path and starts the
// autosave loop.
func New(config *Config) (*DataStore, error) {
	if config == nil || config.FilePath == "" {
		return nil, errors.New("datastore: file path is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds := &DataStore{
		data:   make(map[string]any),
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := ds.load(); err != nil {
		cancel()
		return nil, err
	}

	if config.AutoSaveInterval > 0 {
		ds.wg.Add(1)
		go ds.autoSaveLoop()
	}

	return ds, nil
}

// Get returns the value stored under key.
func (ds *DataStore) Get(key string) (any, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	v, ok := ds.data[key]
	return v, ok
}

// Set stores value under key.
func (ds *DataStore) Set(key string, value any) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.data[key] = value
}

// Delete removes key.
func (ds *DataStore) Delete(key string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.data, key)
}

// Keys returns all stored keys.
func (ds *DataStore) Keys() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	keys := make([]string, 0, len(ds.data))
	for k := range ds.data {
		keys = append(keys, k)
	}
	return keys
}

// Save flushes the current data to disk if it changed since the last save.
func (ds *DataStore) Save() error {
	ds.mu.RLock()
	payload, err := json.MarshalIndent(ds.data, "", "  ")
	ds.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("datastore: marshal error: %w", err)
	}

	sum := sha256.Sum256(payload)
	checksum := hex.EncodeToString(sum[:])

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if checksum == ds.lastChecksum {
		return nil
	}

	tmp := ds.config.FilePath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(ds.config.FilePath), 0o755); err != nil {
		return fmt.Errorf("datastore: mkdir error: %w", err)
	}
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("datastore: write error: %w", err)
	}
	if err := os.Rename(tmp, ds.config.FilePath); err != nil {
		return fmt.Errorf("datastore: rename error: %w", err)
	}
	ds.lastChecksum = checksum
	return nil
}

// Close stops the autosave loop and flushes once more.
func (ds *DataStore) Close() error {
	ds.closeMu.Lock()
	defer ds.closeMu.Unlock()
	if ds.closed {
		return nil
	}
	ds.closed = true

	ds.cancel()
	ds.wg.Wait()
	return ds.Save()
}

func (ds *DataStore) load() error {
	payload, err := os.ReadFile(ds.config.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("datastore: read error: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("datastore: parse error: %w", err)
	}

	sum := sha256.Sum256(payload)
	ds.mu.Lock()
	ds.data = data
	ds.lastChecksum = hex.EncodeToString(sum[:])
	ds.mu.Unlock()
	return nil
}

func (ds *DataStore) autoSaveLoop() {
	defer ds.wg.Done()
	ticker := time.NewTicker(ds.config.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ds.ctx.Done():
			return
		case <-ticker.C:
			if err := ds.Save(); err != nil {
				log.Println("[ERR] Datastore autosave failed:", err)
			}
		}
	}
}

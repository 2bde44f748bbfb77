package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hironha/nina/datastore"
)

const (
	commandHistoryLimit = 20
	trackHistoryLimit   = 12
)

// Storage records command and played-track history per guild. Engine state
// (queues, sessions) is never stored here; only what already happened.
//
// Appends are read-modify-write over the datastore, so a mutex serializes
// them; gateway handlers run on separate goroutines.
type Storage struct {
	mu sync.Mutex
	ds *datastore.DataStore
}

// CommandRecord is one command invocation.
type CommandRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

// TrackRecord is one played or enqueued track.
type TrackRecord struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	RequestedBy string    `json:"requested_by"`
	Datetime    time.Time `json:"datetime"`
}

// New opens a storage file at path.
func New(path string) (*Storage, error) {
	ds, err := datastore.New(datastore.DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes and closes the underlying datastore.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// AddCommandRecord appends a command invocation to the guild's history,
// keeping only the most recent entries.
func (s *Storage) AddCommandRecord(guildID string, rec CommandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendBounded(s.ds, "commands:"+guildID, rec, commandHistoryLimit)
}

// CommandHistory returns the guild's recorded command invocations, oldest
// first.
func (s *Storage) CommandHistory(guildID string) ([]CommandRecord, error) {
	return readList[CommandRecord](s.ds, "commands:"+guildID)
}

// AddTrackRecord appends a track to the guild's play history, keeping only
// the most recent entries.
func (s *Storage) AddTrackRecord(guildID string, rec TrackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendBounded(s.ds, "tracks:"+guildID, rec, trackHistoryLimit)
}

// TrackHistory returns the guild's recorded tracks, oldest first.
func (s *Storage) TrackHistory(guildID string) ([]TrackRecord, error) {
	return readList[TrackRecord](s.ds, "tracks:"+guildID)
}

func appendBounded[T any](ds *datastore.DataStore, key string, rec T, limit int) error {
	list, err := readList[T](ds, key)
	if err != nil {
		return err
	}
	list = append(list, rec)
	if len(list) > limit {
		list = list[len(list)-limit:]
	}
	ds.Set(key, list)
	return nil
}

func readList[T any](ds *datastore.DataStore, key string) ([]T, error) {
	raw, ok := ds.Get(key)
	if !ok {
		return nil, nil
	}

	// Entries read back from disk arrive as []any of maps; entries written
	// this process are already []T. Round-trip through JSON covers both.
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("storage: marshal %s: %w", key, err)
	}
	var list []T
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", key, err)
	}
	return list, nil
}

package persistence

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore is a JSON-file backed KV adapter for single-process deployments.
// The whole state is rewritten on every mutation; expiry has no native TTL
// support, so entries carry an absolute deadline checked on read.
type FileStore struct {
	mu   sync.Mutex
	path string
	data fileData
}

var _ KV = (*FileStore)(nil)

type fileData struct {
	Entries map[string]fileEntry `json:"entries"`
	Sets    map[string][]string  `json:"sets"`
}

type fileEntry struct {
	Value     string     `json:"value"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// NewFileStore loads (or initializes) the store at path.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		data: fileData{Entries: map[string]fileEntry{}, Sets: map[string][]string{}},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, err
			}
			return fs, fs.persistLocked()
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		return nil, err
	}
	if fs.data.Entries == nil {
		fs.data.Entries = map[string]fileEntry{}
	}
	if fs.data.Sets == nil {
		fs.data.Sets = map[string][]string{}
	}
	return fs, nil
}

func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.liveEntryLocked(key)
	if !ok {
		return "", ErrKeyNotFound
	}
	return entry.Value, nil
}

func (f *FileStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data.Entries[key] = newEntry(value, ttl)
	return f.persistLocked()
}

func (f *FileStore) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.liveEntryLocked(key); ok {
		return false, nil
	}
	f.data.Entries[key] = newEntry(value, ttl)
	return true, f.persistLocked()
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data.Entries, key)
	return f.persistLocked()
}

func (f *FileStore) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.liveEntryLocked(key)
	return ok, nil
}

func (f *FileStore) AddToSet(_ context.Context, set, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.data.Sets[set] {
		if existing == member {
			return nil
		}
	}
	f.data.Sets[set] = append(f.data.Sets[set], member)
	return f.persistLocked()
}

func (f *FileStore) RemoveFromSet(_ context.Context, set, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	members := f.data.Sets[set]
	for i, existing := range members {
		if existing == member {
			f.data.Sets[set] = append(members[:i:i], members[i+1:]...)
			return f.persistLocked()
		}
	}
	return nil
}

func (f *FileStore) SetMembers(_ context.Context, set string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	members := f.data.Sets[set]
	out := make([]string, len(members))
	copy(out, members)
	return out, nil
}

func (f *FileStore) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, err := os.Stat(f.path)
	return err
}

func (f *FileStore) Close() error {
	return nil
}

// liveEntryLocked returns the entry for key, treating expired entries as
// absent. Expired entries are dropped in memory only; the next mutation
// persists the cleanup.
func (f *FileStore) liveEntryLocked(key string) (fileEntry, bool) {
	entry, ok := f.data.Entries[key]
	if !ok {
		return fileEntry{}, false
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		delete(f.data.Entries, key)
		return fileEntry{}, false
	}
	return entry, true
}

func newEntry(value string, ttl time.Duration) fileEntry {
	entry := fileEntry{Value: value}
	if ttl > 0 {
		deadline := time.Now().Add(ttl)
		entry.ExpiresAt = &deadline
	}
	return entry
}

// persistLocked writes the full state through a temp file and rename so a
// crash mid-write never leaves a truncated store behind.
func (f *FileStore) persistLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Package session is the transient hand-off store between views: the
// questionnaire writes the prediction response, the results view reads it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ResultsKey is where a successful prediction response is kept.
const ResultsKey = "riskResults"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("session: key not found")

// Store holds raw JSON values by key.
type Store interface {
	Put(key string, value json.RawMessage) error
	Get(key string) (json.RawMessage, error)
	Take(key string) (json.RawMessage, error)
	Clear() error
}

type entry struct {
	Value   json.RawMessage `json:"value"`
	Written time.Time       `json:"written"`
}

type fileData struct {
	Entries map[string]entry `json:"entries"`
}

// File is a Store backed by a JSON file.
type File struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open returns a file store at path. The file is created on first Put.
func Open(path string) *File {
	return &File{path: path, now: time.Now}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Put stores value under key, replacing any previous value.
func (f *File) Put(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("session: value for %q is not valid JSON", key)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.load()
	if err != nil {
		return err
	}
	d.Entries[key] = entry{Value: append(json.RawMessage(nil), value...), Written: f.now().UTC()}
	return f.save(d)
}

// Get returns the value under key.
func (f *File) Get(key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.load()
	if err != nil {
		return nil, err
	}
	e, ok := d.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return e.Value, nil
}

// Take returns the value under key and removes it.
func (f *File) Take(key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.load()
	if err != nil {
		return nil, err
	}
	e, ok := d.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(d.Entries, key)
	if err := f.save(d); err != nil {
		return nil, err
	}
	return e.Value, nil
}

// Clear removes the backing file.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *File) load() (*fileData, error) {
	d := &fileData{Entries: make(map[string]entry)}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("session: parsing %s: %w", f.path, err)
	}
	if d.Entries == nil {
		d.Entries = make(map[string]entry)
	}
	return d, nil
}

func (f *File) save(d *fileData) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	entries map[string]json.RawMessage
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]json.RawMessage)}
}

func (m *Memory) Put(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("session: value for %q is not valid JSON", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *Memory) Get(key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Take(key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.entries, key)
	return v, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]json.RawMessage)
	return nil
}

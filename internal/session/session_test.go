package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func stores(t *testing.T) map[string]Store {
	dir := t.TempDir()
	f := Open(filepath.Join(dir, "nested", "session.json"))
	f.now = func() time.Time { return time.Date(2025, 2, 10, 14, 30, 0, 0, time.UTC) }
	return map[string]Store{
		"file":   f,
		"memory": NewMemory(),
	}
}

func TestStore_PutGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			payload := json.RawMessage(`{"success":true,"result":{"score":0.8}}`)
			if err := s.Put(ResultsKey, payload); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ResultsKey)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != string(payload) {
				t.Errorf("Get = %s, want %s", got, payload)
			}

			// Get does not consume.
			if _, err := s.Get(ResultsKey); err != nil {
				t.Errorf("second Get: %v", err)
			}
		})
	}
}

func TestStore_Take(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("k", json.RawMessage(`1`)); err != nil {
				t.Fatal(err)
			}
			got, err := s.Take("k")
			if err != nil {
				t.Fatalf("Take: %v", err)
			}
			if string(got) != "1" {
				t.Errorf("Take = %s", got)
			}
			if _, err := s.Take("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Take err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_Missing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_RejectsInvalidJSON(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("k", json.RawMessage(`{broken`)); err == nil {
				t.Error("expected error for invalid JSON")
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_ = s.Put("k", json.RawMessage(`"v"`))
			if err := s.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("after Clear err = %v, want ErrNotFound", err)
			}
			// Clearing twice is fine.
			if err := s.Clear(); err != nil {
				t.Errorf("second Clear: %v", err)
			}
		})
	}
}

func TestFile_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := Open(path).Put(ResultsKey, json.RawMessage(`{"success":true}`)); err != nil {
		t.Fatal(err)
	}

	got, err := Open(path).Get(ResultsKey)
	if err != nil {
		t.Fatalf("Get from new handle: %v", err)
	}
	if string(got) != `{"success":true}` {
		t.Errorf("Get = %s", got)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path).Get(ResultsKey); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want parse error", err)
	}
}

// Package capstore persists capture records on disk so failures survive the
// capturing process and can be rendered into regression tests later.
package capstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reprise"
)

// ErrCaptureNotFound is returned when a capture record doesn't exist.
var ErrCaptureNotFound = errors.New("capture not found")

// Store manages capture record persistence.
type Store struct {
	Dir string // Base directory for capture records
}

// NewStore creates a store with the given directory.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// DefaultDir returns the default capture directory (~/.reprise/captures).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reprise/captures"
	}
	return filepath.Join(home, ".reprise", "captures")
}

// ResolveDir returns the capture directory from env var or default.
func ResolveDir(environ []string) string {
	for _, env := range environ {
		if strings.HasPrefix(env, "REPRISE_CAPTURE_DIR=") {
			return strings.TrimPrefix(env, "REPRISE_CAPTURE_DIR=")
		}
	}
	return DefaultDir()
}

// Save stores a record, returns the file path.
func (s *Store) Save(rec reprise.Record) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}

	path := s.Path(rec.ID)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}

// Load retrieves a record by ID.
func (s *Store) Load(id string) (reprise.Record, error) {
	path := s.Path(id)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reprise.Record{}, ErrCaptureNotFound
		}
		return reprise.Record{}, err
	}

	var rec reprise.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return reprise.Record{}, err
	}

	return rec, nil
}

// Summary is a lightweight view for listing captures.
type Summary struct {
	ID       string    `json:"id"`
	FullPath string    `json:"fullPath"`
	Error    string    `json:"error"`
	Time     time.Time `json:"time"`
}

// List returns all stored captures as summaries.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Summary{}, nil
		}
		return nil, err
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue // Skip unreadable files
		}

		var rec reprise.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue // Skip invalid JSON
		}

		summaries = append(summaries, Summary{
			ID:       rec.ID,
			FullPath: rec.FullPath,
			Error:    rec.Error,
			Time:     rec.Time,
		})
	}

	return summaries, nil
}

// Delete removes a record by ID.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.Path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrCaptureNotFound
		}
		return err
	}

	return nil
}

// Prune removes records older than the given duration.
// Returns the number of records deleted.
func (s *Store) Prune(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-olderThan)
	deleted := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var rec reprise.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}

		if rec.Time.Before(cutoff) {
			if err := os.Remove(path); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}

// Exists checks if a record exists.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Path returns the file path for a record ID. IDs produced by reprise are
// already filesystem-safe; ':' is replaced anyway for externally supplied
// ones.
func (s *Store) Path(id string) string {
	filename := strings.ReplaceAll(id, ":", "_") + ".json"
	return filepath.Join(s.Dir, filename)
}

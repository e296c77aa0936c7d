// Package cas implements content addressable output storage and the task result store.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ResultStore using a flat JSON file for results and
// one file per output blob, named by its xxhash digest.
type Store struct {
	path    string
	blobDir string
	mu      sync.RWMutex
	cache   map[string]domain.TaskResult
}

// NewStore creates a new ResultStore backed by the file at path, with blobs under blobDir.
func NewStore(path, blobDir string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		blobDir: filepath.Clean(blobDir),
		cache:   make(map[string]domain.TaskResult),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Digest returns the content address of data.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read result store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal result store")
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal result store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for result store")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write result store")
	}

	return nil
}

func (s *Store) blobPath(digest string) (string, error) {
	if len(digest) != 16 || strings.ContainsAny(digest, `/\.`) {
		return "", zerr.With(zerr.New("invalid output digest"), "digest", digest)
	}
	return filepath.Join(s.blobDir, digest[:2], digest), nil
}

func (s *Store) putBlob(data []byte) (string, error) {
	digest := Digest(data)
	path, err := s.blobPath(digest)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return digest, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create blob directory")
	}
	//nolint:gosec // Path is derived from the digest
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write output blob"), "digest", digest)
	}
	return digest, nil
}

// Put stores the output blob, then the result pointing at it.
func (s *Store) Put(result domain.TaskResult, output []byte) error {
	digest, err := s.putBlob(output)
	if err != nil {
		return zerr.With(err, "task_name", result.TaskName)
	}
	result.OutputDigest = digest
	result.OutputSize = len(output)

	s.mu.Lock()
	s.cache[result.TaskName] = result
	s.mu.Unlock()

	return s.save()
}

// Get retrieves the latest result for a given task name.
func (s *Store) Get(taskName string) (*domain.TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.cache[taskName]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

// Output returns the blob stored under digest.
func (s *Store) Output(digest string) ([]byte, error) {
	path, err := s.blobPath(digest)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // Path is derived from the digest
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read output blob"), "digest", digest)
	}
	if Digest(data) != digest {
		return nil, zerr.With(zerr.New("output blob is corrupt"), "digest", digest)
	}
	return data, nil
}

// List returns every stored result ordered by task name.
func (s *Store) List() ([]domain.TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.TaskResult, 0, len(s.cache))
	for _, r := range s.cache {
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b domain.TaskResult) int {
		return strings.Compare(a.TaskName, b.TaskName)
	})
	return results, nil
}

/**
 * @description
 * This file implements the Repository interface on top of a single JSON
 * file. The file maps user id -> {bankAccounts, transactions} and is
 * rewritten wholesale on every mutation.
 *
 * @notes
 * - Writes go through a temp file in the same directory followed by a
 *   rename, so a crash mid-write cannot leave a truncated record.
 * - A single mutex serializes every load-mutate-save cycle per repository
 *   instance. The system is single-process, so this is the only writer.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SagarAhir/razorpay-claim-money-poc/internal/domain"
)

// FileRepository is a JSON-file-backed implementation of Repository.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a repository persisting to the given file path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// EnsureInitialized creates the users file with an empty record for userID
// if the file does not exist yet.
func (r *FileRepository) EnsureInitialized(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat users file %s: %v: %w", r.path, err, domain.ErrStorageUnavailable)
	}

	users := domain.UserStore{userID: domain.NewUserRecord()}
	return r.write(users)
}

// Load reads and parses the full users record.
func (r *FileRepository) Load(ctx context.Context) (domain.UserStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Save replaces the full users record.
func (r *FileRepository) Save(ctx context.Context, users domain.UserStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(users)
}

// Update applies fn to the given user's record under the store lock and
// persists the result. The load, the mutation, and the save form one
// critical section, so concurrent updates cannot overwrite each other.
func (r *FileRepository) Update(ctx context.Context, userID string, fn func(*domain.UserRecord) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.read()
	if err != nil {
		return err
	}

	record, ok := users[userID]
	if !ok {
		record = domain.NewUserRecord()
		users[userID] = record
	}

	if err := fn(record); err != nil {
		return err
	}

	return r.write(users)
}

// read loads the users file. Callers must hold the lock.
func (r *FileRepository) read() (domain.UserStore, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read users file %s: %v: %w", r.path, err, domain.ErrStorageUnavailable)
	}

	var users domain.UserStore
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse users file %s: %v: %w", r.path, err, domain.ErrStorageUnavailable)
	}
	if users == nil {
		users = domain.UserStore{}
	}
	return users, nil
}

// write replaces the users file atomically. Callers must hold the lock.
func (r *FileRepository) write(users domain.UserStore) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users record: %v: %w", err, domain.ErrStorageUnavailable)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "users-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp users file in %s: %v: %w", dir, err, domain.ErrStorageUnavailable)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp users file %s: %v: %w", tmpName, err, domain.ErrStorageUnavailable)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp users file %s: %v: %w", tmpName, err, domain.ErrStorageUnavailable)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace users file %s: %v: %w", r.path, err, domain.ErrStorageUnavailable)
	}
	return nil
}

// Package media manages vehicle photo storage. Photos live under a per-dealer
// directory keyed by vehicle ID; deleting a vehicle releases its whole
// directory in one call.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store releases stored media for a vehicle. Release is idempotent: a vehicle
// with no stored photos is not an error.
type Store interface {
	Release(ctx context.Context, dealerID, vehicleID uuid.UUID) error
}

// LocalStore keeps vehicle photos on the local filesystem under
// root/<dealer>/<vehicle>/.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) vehicleDir(dealerID, vehicleID uuid.UUID) string {
	return filepath.Join(s.root, dealerID.String(), vehicleID.String())
}

func (s *LocalStore) Release(_ context.Context, dealerID, vehicleID uuid.UUID) error {
	dir := s.vehicleDir(dealerID, vehicleID)

	err := os.RemoveAll(dir)
	if err != nil {
		return fmt.Errorf("media.LocalStore.Release: %w", err)
	}

	return nil
}

// Save writes a photo for the vehicle, creating the directory tree as needed.
// The name must be a bare filename; path separators are rejected.
func (s *LocalStore) Save(_ context.Context, dealerID, vehicleID uuid.UUID, name string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("media.LocalStore.Save: invalid name %q", name)
	}

	dir := s.vehicleDir(dealerID, vehicleID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("media.LocalStore.Save: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("media.LocalStore.Save: %w", err)
	}

	return nil
}

// NopStore is used when no media root is configured.
type NopStore struct{}

func (NopStore) Release(context.Context, uuid.UUID, uuid.UUID) error { return nil }

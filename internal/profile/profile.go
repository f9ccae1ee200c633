// Package profile persists the store profile printed on bills.
package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/receipts/internal/models"
)

// Store reads and writes the profile as a YAML file.
// A missing file is an empty profile.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the saved profile.
func (s *Store) Get() (models.StoreProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profile models.StoreProfile
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return profile, nil
	}
	if err != nil {
		return profile, fmt.Errorf("failed to read profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}

// Update saves profile, replacing the file atomically.
func (s *Store) Update(profile models.StoreProfile) error {
	profile.StoreName = strings.TrimSpace(profile.StoreName)
	profile.GSTNumber = strings.ToUpper(strings.TrimSpace(profile.GSTNumber))

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}

	slog.Info("Store profile updated", "store_name", profile.StoreName)
	return nil
}

// Package state persists the active profile name in a single-line file that
// shell hooks read to export AWS_PROFILE.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const fileName = "current-profile"

// DefaultPath returns ~/.aws/current-profile.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, ".aws", fileName), nil
}

// Store reads and writes the state file.
type Store struct {
	fs   afero.Fs
	path string
}

// New returns a Store for path on the OS filesystem.
func New(path string) *Store {
	return NewWithFs(afero.NewOsFs(), path)
}

func NewWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Set replaces the file content with profile, without a trailing newline.
// The write goes through a temp file and a rename so a reader never sees a
// partial name.
func (s *Store) Set(profile string) error {
	if strings.ContainsAny(profile, "\r\n") || strings.TrimSpace(profile) == "" {
		return fmt.Errorf("invalid profile name %q", profile)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+fileName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(profile); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := s.fs.Chmod(tmpName, 0600); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to set state file permissions: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Current returns the stored profile name, or "" when none is set.
func (s *Store) Current() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the state file and reports whether a profile was set.
func (s *Store) Clear() (bool, error) {
	current, err := s.Current()
	if err != nil {
		return false, err
	}

	if err := s.fs.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return current != "", nil
}

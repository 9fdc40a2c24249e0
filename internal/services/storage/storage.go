package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"filippo.io/age"
)

const (
	// ageHeader is the prefix of age-encrypted files
	ageHeader = "age-encryption.org"

	// markerFile indicates the statements folder is encrypted
	markerFile = ".encrypted"

	// verifyFile is used to validate the passphrase
	verifyFile = ".encryption-verify"

	verifyMagic = `{"magic":"expenses-statements-verify","version":1}`

	minPassphraseLen = 8
)

var (
	// ErrLocked is returned when an encrypted statement is read before Unlock
	ErrLocked = errors.New("statement is encrypted but storage is locked")

	// ErrWrongPassphrase is returned when the passphrase does not open the verify file
	ErrWrongPassphrase = errors.New("incorrect passphrase")
)

// Storage gives read access to a statements folder whose CSV files may be
// age-encrypted at rest
type Storage struct {
	dir       string
	encrypted bool
	identity  *age.ScryptIdentity
	mu        sync.RWMutex
}

// New creates a Storage for the given statements folder
func New(dir string) (*Storage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("statements folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("statements folder %s is not a directory", dir)
	}

	s := &Storage{dir: dir}
	if _, err := os.Stat(filepath.Join(dir, markerFile)); err == nil {
		s.encrypted = true
	}
	return s, nil
}

// Dir returns the statements folder
func (s *Storage) Dir() string {
	return s.dir
}

// IsEncrypted returns true if the folder has been encrypted
func (s *Storage) IsEncrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

// IsUnlocked returns true if files can be read
func (s *Storage) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.encrypted || s.identity != nil
}

// Unlock checks the passphrase and keeps the identity for later reads
func (s *Storage) Unlock(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return nil
	}

	identity, err := s.verify(passphrase)
	if err != nil {
		return err
	}
	s.identity = identity
	return nil
}

// Lock forgets the identity
func (s *Storage) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}

// verify opens the verification file with the passphrase. Callers hold mu.
func (s *Storage) verify(passphrase string) (*age.ScryptIdentity, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	sealed, err := os.ReadFile(filepath.Join(s.dir, verifyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read verification file: %w", err)
	}

	plain, err := open(sealed, identity)
	if err != nil || string(plain) != verifyMagic {
		return nil, ErrWrongPassphrase
	}
	return identity, nil
}

// ReadFile reads a statement, decrypting it when needed
func (s *Storage) ReadFile(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if !isAgeEncrypted(data) {
		return data, nil
	}
	if s.identity == nil {
		return nil, ErrLocked
	}
	return open(data, s.identity)
}

// ListStatements returns the statement files of the folder sorted by name.
// Only the ".csv" and ".CSV" extensions are considered.
func (s *Storage) ListStatements() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", s.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".CSV") {
			files = append(files, filepath.Join(s.dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// atomicWrite writes data to a temp file and renames it over path
func atomicWrite(path string, data []byte) error {
	info, err := os.Stat(path)
	perm := os.FileMode(0600)
	if err == nil {
		perm = info.Mode().Perm()
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// isAgeEncrypted checks if data starts with the age header
func isAgeEncrypted(data []byte) bool {
	return len(data) > len(ageHeader) && string(data[:len(ageHeader)]) == ageHeader
}

package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// EncryptStatements encrypts every statement in the folder with the passphrase
func (s *Storage) EncryptStatements(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return fmt.Errorf("statements are already encrypted")
	}
	if len(passphrase) < minPassphraseLen {
		return fmt.Errorf("passphrase must be at least %d characters", minPassphraseLen)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	verifyPath := filepath.Join(s.dir, verifyFile)
	sealedMagic, err := seal([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt verification file: %w", err)
	}
	if err := os.WriteFile(verifyPath, sealedMagic, 0600); err != nil {
		return fmt.Errorf("failed to write verification file: %w", err)
	}

	files, err := s.listUnlocked()
	if err != nil {
		os.Remove(verifyPath)
		return err
	}

	done, err := rewrite(files, func(data []byte) ([]byte, bool, error) {
		if isAgeEncrypted(data) {
			return nil, false, nil
		}
		out, err := seal(data, recipient)
		return out, true, err
	})
	if err != nil {
		// best effort rollback of what was already sealed
		rewrite(done, func(data []byte) ([]byte, bool, error) {
			out, err := open(data, identity)
			return out, err == nil, nil
		})
		os.Remove(verifyPath)
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, markerFile), []byte("encrypted"), 0600); err != nil {
		return fmt.Errorf("failed to create marker file: %w", err)
	}

	s.encrypted = true
	s.identity = identity
	return nil
}

// DecryptStatements restores the plain statements (requires the passphrase)
func (s *Storage) DecryptStatements(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return fmt.Errorf("statements are not encrypted")
	}

	identity, err := s.verify(passphrase)
	if err != nil {
		return err
	}

	files, err := s.listUnlocked()
	if err != nil {
		return err
	}

	if _, err := rewrite(files, func(data []byte) ([]byte, bool, error) {
		if !isAgeEncrypted(data) {
			return nil, false, nil
		}
		out, err := open(data, identity)
		return out, true, err
	}); err != nil {
		return err
	}

	os.Remove(filepath.Join(s.dir, markerFile))
	os.Remove(filepath.Join(s.dir, verifyFile))

	s.encrypted = false
	s.identity = nil
	return nil
}

// listUnlocked is ListStatements for callers already holding mu
func (s *Storage) listUnlocked() ([]string, error) {
	return (&Storage{dir: s.dir}).ListStatements()
}

// rewrite applies transform to each file in place. It returns the files that
// were rewritten before the first failure.
func rewrite(paths []string, transform func([]byte) ([]byte, bool, error)) ([]string, error) {
	var done []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return done, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}

		out, changed, err := transform(data)
		if err != nil {
			return done, fmt.Errorf("failed to transform %s: %w", filepath.Base(path), err)
		}
		if !changed {
			continue
		}

		if err := atomicWrite(path, out); err != nil {
			return done, fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
		done = append(done, path)
	}
	return done, nil
}

// seal encrypts data for the recipient
func seal(data []byte, recipient age.Recipient) ([]byte, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// open decrypts age data with the identity
func open(data []byte, identity age.Identity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

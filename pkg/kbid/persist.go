// SPDX-License-Identifier: BSD-3-Clause

package kbid

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/vialcore/vialcore/pkg/file"
)

// KeyboardID is the fixed 8-byte identifier a Vial host uses to locate the
// matching compile-time keymap definition (spec §4.7, §6).
type KeyboardID [8]byte

// DeriveKeyboardID folds a persistent UUID down to the 8-byte identifier
// Vial's GET_KEYBOARD_ID expects. The fold is deterministic: the same
// persisted UUID always derives the same KeyboardID across reboots.
func DeriveKeyboardID(persistentUUID string) (KeyboardID, error) {
	u, err := uuid.Parse(persistentUUID)
	if err != nil {
		return KeyboardID{}, fmt.Errorf("%w: %w", ErrInvalidUUID, err)
	}

	var id KeyboardID
	raw := u[:]
	for i := range raw {
		id[i%8] ^= raw[i]
	}
	return id, nil
}

// GetOrCreatePersistentID retrieves an existing UUID from a file under path,
// or creates and atomically persists a new one if the file doesn't exist.
func GetOrCreatePersistentID(name, path string) (string, error) {
	fullPath := filepath.Join(path, name)

	var idstr string
	if _, err := os.Stat(fullPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrFileStat, err)
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return "", fmt.Errorf("%w: %w", ErrDirectoryCreation, err)
		}

		id := uuid.New()

		if err := file.AtomicCreateFile(fullPath, []byte(id.String()), 0o600); err == nil {
			idstr = id.String()
		} else if errors.Is(err, file.ErrFileAlreadyExists) || os.IsExist(err) {
			b, err := os.ReadFile(fullPath)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrFileRead, err)
			}

			id, err := uuid.ParseBytes(bytes.TrimSpace(b))
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrInvalidUUID, err)
			}

			idstr = id.String()
		} else {
			return "", fmt.Errorf("%w: %w", ErrFileCreation, err)
		}
	} else {
		b, err := os.ReadFile(fullPath)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrFileRead, err)
		}

		id, err := uuid.ParseBytes(bytes.TrimSpace(b))
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidUUID, err)
		}

		idstr = id.String()
	}

	return idstr, nil
}

// NewMacroSlotID generates a fresh random (UUID) ephemeral identifier for a
// macro slot.
func NewMacroSlotID() string {
	return uuid.NewString()
}

// SPDX-License-Identifier: BSD-3-Clause

// Package file provides atomic file writes via temp-file-plus-rename, so a
// crash or power loss mid-write can never leave a half-written file behind.
//
// Two call sites in this repo depend on that guarantee: pkg/kbid writes the
// keyboard's persistent identity file with AtomicCreateFile, which fails
// with ErrFileAlreadyExists if a concurrent writer already created it (first
// writer wins, losers just read back what's there); pkg/flashsim writes its
// manifest.log rotation hint with AtomicUpdateFile, which is safe to
// interrupt at any point because the original file is untouched until the
// rename.
//
//	err := file.AtomicCreateFile(idPath, []byte(uuid.String()), 0o600)
//	if err != nil && !errors.Is(err, file.ErrFileAlreadyExists) {
//		return err
//	}
package file

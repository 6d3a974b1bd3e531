// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import "errors"

var (
	// ErrNameEmpty indicates that the supervisor name cannot be empty.
	ErrNameEmpty = errors.New("supervisor name cannot be empty")
	// ErrAddProcess indicates that adding a process to the supervision tree failed.
	ErrAddProcess = errors.New("failed to add process to supervision tree")
	// ErrAddExtraService indicates that adding an extra service failed.
	ErrAddExtraService = errors.New("failed to add extra service to supervision tree")
	// ErrPanicked indicates that the supervisor panicked during execution.
	ErrPanicked = errors.New("supervisor panicked")
)

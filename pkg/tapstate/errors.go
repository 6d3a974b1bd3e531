// SPDX-License-Identifier: BSD-3-Clause

package tapstate

import "errors"

var (
	// ErrInvalidTrigger indicates a Fire call with a trigger not valid from
	// the machine's current state.
	ErrInvalidTrigger = errors.New("tapstate: trigger not valid in current state")
	// ErrAlreadyResolved indicates a Fire call on a machine that already
	// reached ResolvedTap or ResolvedHold.
	ErrAlreadyResolved = errors.New("tapstate: machine already resolved")
)

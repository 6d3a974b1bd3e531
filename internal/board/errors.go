// SPDX-License-Identifier: BSD-3-Clause

package board

import "errors"

// ErrUnknownBoard is returned by Run for a Name it doesn't recognize.
var ErrUnknownBoard = errors.New("unknown board")

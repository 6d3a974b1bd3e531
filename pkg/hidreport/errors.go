// SPDX-License-Identifier: BSD-3-Clause

package hidreport

import "errors"

// ErrBadLength indicates a report buffer was not the expected fixed length.
var ErrBadLength = errors.New("hid report has wrong length")

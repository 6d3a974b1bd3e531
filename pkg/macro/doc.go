// SPDX-License-Identifier: BSD-3-Clause

// Package macro implements the bounded macro queue and runner of spec §4.4:
// a macro is a sequence of Tap/Press/Release/Delay/Text items, pumped at
// their declared delays by a single concurrent runner. At most one macro
// runs at a time; scheduling a new one replaces whatever is running.
package macro

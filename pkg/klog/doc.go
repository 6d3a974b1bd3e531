// SPDX-License-Identifier: BSD-3-Clause

// Package klog provides the structured logger used by every service in the
// supervision tree: a zerolog console writer fanned out through slog-multi,
// plus adapters so the embedded NATS server and the oversight supervisor
// log through the same slog.Logger instead of their own stdlib loggers.
package klog

// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockstore

import "errors"

// Sentinel errors returned by the block file store, matching the DiskFull /
// DiskCorrupt / NotFound error kinds spec.md §4.2 and §7 assign to this
// component.
var (
	// ErrDiskFull is returned when free space falls below the amount
	// required for the pending write plus a safety margin.
	ErrDiskFull = errors.New("blockstore: disk full")

	// ErrCorrupt is returned when a read's magic or length prefix does not
	// match what Append wrote.
	ErrCorrupt = errors.New("blockstore: corrupt block record")

	// ErrNotFound is returned when a requested file id or offset falls
	// outside any file the store has written.
	ErrNotFound = errors.New("blockstore: file or offset not found")
)

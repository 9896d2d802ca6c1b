// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package indexstore

import "errors"

// ErrIndexCorrupt is returned when a stored DiskBlockIndex record fails to
// decode, the IndexCorrupt error kind in spec.md §7.
var ErrIndexCorrupt = errors.New("indexstore: corrupt record")

// ErrNotFound is returned by the singleton/lookup getters when the
// requested key has never been written.
var ErrNotFound = errors.New("indexstore: not found")

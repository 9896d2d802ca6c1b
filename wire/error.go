// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "fmt"

// errTooMany formats the standard "too many X" decode guard error used by
// every length-prefixed array in this package.
func errTooMany(field string, got, max uint64) error {
	return fmt.Errorf("too many %s for decode: got %d, max %d", field, got, max)
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modules

import "hash"

// Hasher produces the hash functions the engine derives its correlation keys from.
// Each call to New must return a fresh, independent hash.Hash.
type Hasher interface {
	New() hash.Hash
}

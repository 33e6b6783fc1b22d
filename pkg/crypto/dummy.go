/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import "hash"

// Identity is a Hasher whose "digest" is the hashed data itself.
// It is intended for testing, where readable keys make failures easier to diagnose.
var Identity = HashImpl(func() hash.Hash { return &identityHash{} })

type identityHash struct {
	value []byte
}

func (ih *identityHash) Write(b []byte) (int, error) {
	ih.value = append(ih.value, b...)
	return len(b), nil
}

func (ih *identityHash) Sum(b []byte) []byte {
	return append(b, ih.value...)
}

func (ih *identityHash) Reset() {
	ih.value = nil
}

func (ih *identityHash) Size() int {
	return len(ih.value)
}

func (ih *identityHash) BlockSize() int {
	return 1
}

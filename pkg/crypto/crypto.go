/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package crypto provides the Hasher implementations engines derive their correlation keys from.
// It supports MD5 (the default), SHA-256 and the non-cryptographic xxHash.
package crypto

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/clratm/oracle/pkg/modules"
)

// HashImpl adapts a hash constructor to the modules.Hasher interface.
type HashImpl func() hash.Hash

// New returns a fresh hash.Hash.
func (hi HashImpl) New() hash.Hash {
	return hi()
}

var (
	// MD5 is the default hasher. Keys are 32 hex characters long.
	MD5 = HashImpl(md5.New)

	// SHA256 produces 64 hex character keys.
	SHA256 = HashImpl(sha256.New)

	// XXHash is the fastest option, producing 16 hex character keys.
	// Its collision resistance is lower than that of the others.
	XXHash = HashImpl(func() hash.Hash { return xxhash.New() })
)

var byName = map[string]modules.Hasher{
	"md5":    MD5,
	"sha256": SHA256,
	"xxhash": XXHash,
}

// ByName returns the hasher registered under name ("md5", "sha256" or "xxhash").
func ByName(name string) (modules.Hasher, error) {
	h, ok := byName[name]
	if !ok {
		return nil, errors.Errorf("unknown hasher %q", name)
	}
	return h, nil
}

// Names lists the names accepted by ByName, in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Digest hashes the concatenation of data with a fresh hash from hasher and returns the
// hex-encoded sum.
func Digest(hasher modules.Hasher, data ...[]byte) string {
	h := hasher.New()
	for _, d := range data {
		h.Write(d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

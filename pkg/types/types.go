/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package types

import (
	"encoding/binary"
	"fmt"
)

// ================================================================================

// Site identifies the code that invokes a protocol operation: the declaring type
// (or package) and the declaring function. Instrumented code passes the same Site
// to every call that belongs to one call path.
type Site struct {
	Class  string
	Method string
}

// NewSite is a shorthand for constructing a Site.
func NewSite(class, method string) Site {
	return Site{Class: class, Method: method}
}

// Bytes returns the byte representation of the site used in signatures.
// Class and method are separated by a zero byte so that ("ab", "c") and ("a", "bc")
// never sign identically.
func (s Site) Bytes() []byte {
	b := make([]byte, 0, len(s.Class)+len(s.Method)+1)
	b = append(b, s.Class...)
	b = append(b, 0)
	return append(b, s.Method...)
}

func (s Site) String() string {
	return fmt.Sprintf("%s.%s", s.Class, s.Method)
}

// ================================================================================

// ThreadID represents the identity of a flow of execution (a goroutine or a logical
// worker lane) presenting values to the oracle.
type ThreadID uint64

// Bytes returns the 8-byte big-endian encoding of the thread ID.
func (tid ThreadID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(tid))
	return b
}

// Pb converts a ThreadID to its underlying native type.
func (tid ThreadID) Pb() uint64 {
	return uint64(tid)
}

// ================================================================================

// SeqNr represents the position of an observed input among all inputs observed
// on the same thread and site.
type SeqNr uint64

// Bytes returns the 8-byte big-endian encoding of the sequence number.
func (sn SeqNr) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(sn))
	return b
}

// Pb converts a SeqNr to its underlying native type.
func (sn SeqNr) Pb() uint64 {
	return uint64(sn)
}

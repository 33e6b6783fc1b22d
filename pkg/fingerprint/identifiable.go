/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fingerprint converts arbitrary Go values into canonical byte identities.
//
// A value presented to the oracle is classified exactly once into one of a closed set
// of variants (see Kind). Every later operation, computing the fingerprint bytes or the
// human-readable display string, is an exhaustive switch over those variants.
//
// The precedence of the classification rules is fixed:
//   1. scalars (booleans, integers, floats, complex numbers, strings),
//   2. non-empty slices and arrays, where the element type decides the rule:
//      scalar elements, then identity-bearing elements, then nested sequences or
//      interface elements that each fingerprint recursively,
//   3. empty slices and arrays are never identifiable,
//   4. values implementing Identifiable,
//   5. values with their own textual form (error, fmt.Stringer, encoding.TextMarshaler),
//   6. everything else is opaque and cannot be fingerprinted.
package fingerprint

import (
	"fmt"

	"github.com/pkg/errors"
)

// Identifiable is implemented by types that supply their own canonical identity.
// Types without a meaningful textual form (plain structs, pointers) must implement it
// to be used as expected or actual values.
type Identifiable interface {
	// ID returns a string that uniquely identifies the state of the object.
	// Two values with equal IDs are considered the same value.
	ID() string
}

// ErrUnidentifiable is returned (wrapped with details) whenever a value, or an element
// of a sequence, has no canonical identity.
var ErrUnidentifiable = errors.New("value is unidentifiable")

// IsUnidentifiable reports whether err was caused by an unidentifiable value.
func IsUnidentifiable(err error) bool {
	return errors.Is(err, ErrUnidentifiable)
}

func unidentifiable(typeName, reason string) error {
	return errors.WithMessagef(ErrUnidentifiable, "%s: %s", typeName, reason)
}

// callText invokes a user supplied text method, turning a panic into an error.
func callText(fn func() (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panicked: %v", r)
		}
	}()
	return fn()
}

func methodFailure(method string, err error) string {
	return fmt.Sprintf("%s failed: %v", method, err)
}

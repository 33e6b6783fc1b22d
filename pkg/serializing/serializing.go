/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package serializing produces the byte representations of reports that are persisted
// or exported.
package serializing

import (
	"encoding/json"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"github.com/pkg/errors"
)

// CanonicalJSON encodes v as JSON canonicalized per RFC 8785: object members sorted,
// no insignificant whitespace, numbers and strings in their shortest form.
// Equal values therefore always produce identical bytes.
func CanonicalJSON(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WithMessage(err, "could not marshal")
	}

	canonical, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return nil, errors.WithMessage(err, "could not canonicalize")
	}
	return canonical, nil
}

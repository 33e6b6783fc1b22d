/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fingerprint

import (
	"strings"

	"github.com/pkg/errors"
)

// Of classifies v and returns its fingerprint.
func Of(v interface{}) ([]byte, error) {
	return Classify(v).Fingerprint()
}

// Display classifies v and returns its display string.
// A nil v displays as the empty string.
func Display(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	return Classify(v).Display()
}

// Fingerprint returns the canonical byte identity of the value.
// The output is deterministic: equal identities always produce identical bytes.
func (v Value) Fingerprint() ([]byte, error) {
	return v.appendFingerprint(nil)
}

func (v Value) appendFingerprint(buf []byte) ([]byte, error) {
	switch v.Kind {
	case KindScalar, KindIdentified, KindTextual:
		return append(buf, v.Text...), nil
	case KindSequence:
		var err error
		for _, elem := range v.Elems {
			if buf, err = elem.appendFingerprint(buf); err != nil {
				return nil, err
			}
		}
		return buf, nil
	case KindOpaque:
		return nil, unidentifiable(v.Type, v.Reason)
	default:
		return nil, errors.WithMessagef(ErrUnidentifiable, "%s: unknown kind %s", v.Type, v.Kind)
	}
}

// Display returns a human-readable rendering of the value, for reporting only.
// Leading and trailing line breaks are stripped.
func (v Value) Display() (string, error) {
	s, err := v.display()
	if err != nil {
		return "", err
	}
	return strings.Trim(s, "\r\n"), nil
}

func (v Value) display() (string, error) {
	switch v.Kind {
	case KindScalar, KindIdentified, KindTextual:
		return v.Text, nil
	case KindSequence:
		return v.displaySequence()
	case KindOpaque:
		return "", unidentifiable(v.Type, v.Reason)
	default:
		return "", errors.WithMessagef(ErrUnidentifiable, "%s: unknown kind %s", v.Type, v.Kind)
	}
}

func (v Value) displaySequence() (string, error) {
	parts := make([]string, 0, len(v.Elems))
	for _, elem := range v.Elems {
		s, err := elem.display()
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	switch v.Rule {
	case ElemScalar:
		return "[" + strings.Join(parts, ", ") + "]", nil
	case ElemIdentified:
		return "[ " + strings.Join(parts, ", ") + " ]", nil
	case ElemRecursive:
		return strings.Join(parts, ""), nil
	default:
		return "", errors.WithMessagef(ErrUnidentifiable, "%s: sequence without element rule", v.Type)
	}
}

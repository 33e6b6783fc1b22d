/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package journal

import (
	"time"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/clratm/oracle/pkg/cases"
	"github.com/clratm/oracle/pkg/events"
	t "github.com/clratm/oracle/pkg/types"
)

// Field numbers of the journal entry message. Once written, they must never change.
const (
	fieldType     protowire.Number = 1
	fieldInstance protowire.Number = 2
	fieldClass    protowire.Number = 3
	fieldMethod   protowire.Number = 4
	fieldThread   protowire.Number = 5
	fieldSeqNr    protowire.Number = 6
	fieldKey      protowire.Number = 7
	fieldDisplay  protowire.Number = 8
	fieldStatus   protowire.Number = 9
	fieldTime     protowire.Number = 10
)

// Marshal encodes an event in protobuf wire format.
// Zero-valued fields are omitted, as a protobuf runtime would.
func Marshal(e *events.Event) []byte {
	var b []byte
	b = appendVarint(b, fieldType, uint64(e.Type))
	b = appendString(b, fieldInstance, e.Instance)
	b = appendString(b, fieldClass, e.Site.Class)
	b = appendString(b, fieldMethod, e.Site.Method)
	b = appendVarint(b, fieldThread, e.Thread.Pb())
	b = appendVarint(b, fieldSeqNr, e.SeqNr.Pb())
	b = appendString(b, fieldKey, e.Key)
	b = appendString(b, fieldDisplay, e.Display)
	b = appendVarint(b, fieldStatus, uint64(e.Status))
	if !e.Time.IsZero() {
		b = protowire.AppendTag(b, fieldTime, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(e.Time.UnixNano()))
	}
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// Unmarshal decodes an event encoded by Marshal. Unknown fields are skipped.
func Unmarshal(b []byte) (*events.Event, error) {
	e := &events.Event{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.WithMessage(protowire.ParseError(n), "could not parse tag")
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && isVarintField(num):
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.WithMessagef(protowire.ParseError(n), "could not parse field %d", num)
			}
			b = b[n:]
			setVarint(e, num, v)

		case typ == protowire.BytesType && isStringField(num):
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, errors.WithMessagef(protowire.ParseError(n), "could not parse field %d", num)
			}
			b = b[n:]
			setString(e, num, v)

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.WithMessagef(protowire.ParseError(n), "could not skip field %d", num)
			}
			b = b[n:]
		}
	}
	return e, nil
}

func isVarintField(num protowire.Number) bool {
	switch num {
	case fieldType, fieldThread, fieldSeqNr, fieldStatus, fieldTime:
		return true
	}
	return false
}

func isStringField(num protowire.Number) bool {
	switch num {
	case fieldInstance, fieldClass, fieldMethod, fieldKey, fieldDisplay:
		return true
	}
	return false
}

func setVarint(e *events.Event, num protowire.Number, v uint64) {
	switch num {
	case fieldType:
		e.Type = events.Type(v)
	case fieldThread:
		e.Thread = t.ThreadID(v)
	case fieldSeqNr:
		e.SeqNr = t.SeqNr(v)
	case fieldStatus:
		e.Status = cases.Status(v)
	case fieldTime:
		e.Time = time.Unix(0, protowire.DecodeZigZag(v)).UTC()
	}
}

func setString(e *events.Event, num protowire.Number, v string) {
	switch num {
	case fieldInstance:
		e.Instance = v
	case fieldClass:
		e.Site.Class = v
	case fieldMethod:
		e.Site.Method = v
	case fieldKey:
		e.Key = v
	case fieldDisplay:
		e.Display = v
	}
}

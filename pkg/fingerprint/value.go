/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fingerprint

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
)

// Kind identifies the variant a value was classified as.
type Kind int

const (
	// KindOpaque values have no canonical identity.
	KindOpaque Kind = iota

	// KindScalar values are identified by their canonical text encoding.
	KindScalar

	// KindSequence values are non-empty slices or arrays whose elements are identifiable.
	KindSequence

	// KindIdentified values implement Identifiable.
	KindIdentified

	// KindTextual values provide their own textual form.
	KindTextual
)

func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "Opaque"
	case KindScalar:
		return "Scalar"
	case KindSequence:
		return "Sequence"
	case KindIdentified:
		return "Identified"
	case KindTextual:
		return "Textual"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ElemRule tells how the elements of a sequence were identified.
type ElemRule int

const (
	ElemNone ElemRule = iota
	ElemScalar
	ElemIdentified
	ElemRecursive
)

// Value is a classified value.
type Value struct {
	Kind Kind

	// Type is the Go type name of the classified value, used in error messages.
	Type string

	// Text is the canonical text of a scalar, the identity of an identified value
	// or the textual form of a textual value.
	Text string

	// Rule and Elems describe a sequence.
	Rule  ElemRule
	Elems []Value

	// Reason explains why an opaque value cannot be identified.
	Reason string
}

const (
	// Bounds the number of pointer and interface indirections followed.
	maxIndirections = 16

	// Bounds how deeply sequences may nest, which also stops self-containing ones.
	maxNesting = 64
)

var (
	identifiableType  = reflect.TypeOf((*Identifiable)(nil)).Elem()
	errorType         = reflect.TypeOf((*error)(nil)).Elem()
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Classify resolves v into its variant.
func Classify(v interface{}) Value {
	return classify(reflect.ValueOf(v), 0)
}

func classify(rv reflect.Value, depth int) Value {
	if !rv.IsValid() {
		return opaque("nil", "nil value")
	}
	typeName := rv.Type().String()

	base := indirect(rv)
	if base.IsValid() {
		if isScalarKind(base.Kind()) {
			return Value{Kind: KindScalar, Type: typeName, Text: scalarText(base)}
		}
		if base.Kind() == reflect.Slice || base.Kind() == reflect.Array {
			return classifySequence(typeName, base, depth)
		}
	}

	if target, ok := methodTarget(rv, identifiableType); ok {
		id, err := identity(target)
		if err != nil {
			return opaque(typeName, methodFailure("ID()", err))
		}
		return Value{Kind: KindIdentified, Type: typeName, Text: id}
	}

	if text, ok, err := textualForm(rv); ok {
		if err != nil {
			return opaque(typeName, err.Error())
		}
		return Value{Kind: KindTextual, Type: typeName, Text: text}
	}

	if !base.IsValid() {
		return opaque(typeName, "nil pointer")
	}
	return opaque(typeName, "implement fingerprint.Identifiable to identify this type")
}

func classifySequence(typeName string, rv reflect.Value, depth int) Value {
	if rv.Len() == 0 {
		return opaque(typeName, "cannot identify an empty sequence")
	}
	if depth >= maxNesting {
		return opaque(typeName, "sequence nested too deeply")
	}

	// Elements with pointer-receiver methods need an addressable array.
	if rv.Kind() == reflect.Array && !rv.CanAddr() {
		addressable := reflect.New(rv.Type()).Elem()
		addressable.Set(rv)
		rv = addressable
	}

	elemType := rv.Type().Elem()
	seq := Value{Kind: KindSequence, Type: typeName, Elems: make([]Value, 0, rv.Len())}

	switch {
	case isScalarKind(derefType(elemType).Kind()):
		seq.Rule = ElemScalar
		for i := 0; i < rv.Len(); i++ {
			elem := indirect(rv.Index(i))
			if !elem.IsValid() {
				return opaque(typeName, fmt.Sprintf("element %d is nil", i))
			}
			seq.Elems = append(seq.Elems, Value{Kind: KindScalar, Type: elem.Type().String(), Text: scalarText(elem)})
		}

	case implements(elemType, identifiableType):
		seq.Rule = ElemIdentified
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			target, ok := methodTarget(elem, identifiableType)
			if !ok {
				return opaque(typeName, fmt.Sprintf("element %d cannot supply ID()", i))
			}
			id, err := identity(target)
			if err != nil {
				return opaque(typeName, fmt.Sprintf("element %d: %s", i, methodFailure("ID()", err)))
			}
			seq.Elems = append(seq.Elems, Value{Kind: KindIdentified, Type: elem.Type().String(), Text: id})
		}

	case isNestable(derefType(elemType).Kind()):
		seq.Rule = ElemRecursive
		for i := 0; i < rv.Len(); i++ {
			elem := classify(rv.Index(i), depth+1)
			if elem.Kind == KindOpaque {
				return opaque(typeName, fmt.Sprintf("element %d (%s): %s", i, elem.Type, elem.Reason))
			}
			seq.Elems = append(seq.Elems, elem)
		}

	default:
		return opaque(typeName, fmt.Sprintf("elements of type %s are unidentifiable", elemType))
	}

	return seq
}

func opaque(typeName, reason string) Value {
	return Value{Kind: KindOpaque, Type: typeName, Reason: reason}
}

// indirect follows pointers and interfaces. It returns the zero Value on nil.
func indirect(rv reflect.Value) reflect.Value {
	for i := 0; i < maxIndirections; i++ {
		switch rv.Kind() {
		case reflect.Ptr, reflect.Interface:
			if rv.IsNil() {
				return reflect.Value{}
			}
			rv = rv.Elem()
		default:
			return rv
		}
	}
	return reflect.Value{}
}

func derefType(t reflect.Type) reflect.Type {
	for i := 0; i < maxIndirections && t.Kind() == reflect.Ptr; i++ {
		t = t.Elem()
	}
	return t
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}
	return false
}

func isNestable(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Interface
}

func scalarText(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	default:
		return rv.String()
	}
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || (t.Kind() != reflect.Interface && reflect.PtrTo(t).Implements(iface))
}

// methodTarget finds a receiver for the methods of iface, walking through pointers
// and interfaces and taking the address of addressable values.
func methodTarget(rv reflect.Value, iface reflect.Type) (reflect.Value, bool) {
	for i := 0; i < maxIndirections && rv.IsValid(); i++ {
		if rv.Type().Implements(iface) && rv.CanInterface() {
			if rv.Kind() == reflect.Interface && rv.IsNil() {
				return reflect.Value{}, false
			}
			return rv, true
		}
		if rv.CanAddr() && reflect.PtrTo(rv.Type()).Implements(iface) && rv.Addr().CanInterface() {
			return rv.Addr(), true
		}
		if (rv.Kind() != reflect.Ptr && rv.Kind() != reflect.Interface) || rv.IsNil() {
			break
		}
		rv = rv.Elem()
	}
	return reflect.Value{}, false
}

func identity(target reflect.Value) (string, error) {
	return callText(func() (string, error) {
		return target.Interface().(Identifiable).ID(), nil
	})
}

// textualForm returns the text of values that render themselves.
func textualForm(rv reflect.Value) (string, bool, error) {
	if target, ok := methodTarget(rv, errorType); ok {
		text, err := callText(func() (string, error) {
			return target.Interface().(error).Error(), nil
		})
		if err != nil {
			return "", true, errors.New(methodFailure("Error()", err))
		}
		return text, true, nil
	}

	if target, ok := methodTarget(rv, stringerType); ok {
		text, err := callText(func() (string, error) {
			return target.Interface().(fmt.Stringer).String(), nil
		})
		if err != nil {
			return "", true, errors.New(methodFailure("String()", err))
		}
		return text, true, nil
	}

	if target, ok := methodTarget(rv, textMarshalerType); ok {
		text, err := callText(func() (string, error) {
			b, err := target.Interface().(encoding.TextMarshaler).MarshalText()
			return string(b), err
		})
		if err != nil {
			return "", true, errors.New(methodFailure("MarshalText()", err))
		}
		return text, true, nil
	}

	return "", false, nil
}

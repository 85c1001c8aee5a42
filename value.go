// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

// ValueKind classifies an AttributeValue. It mirrors the classification
// git_attr_value() performs over the three sentinel pointers plus a real
// string, minus the pointer trick: Go gets a genuine sum type instead.
type ValueKind uint8

const (
	// KindUnspecified means no assignment exists for the attribute at the
	// queried path. Distinct from KindUnset.
	KindUnspecified ValueKind = iota
	// KindTrue means the attribute is set (bare "name").
	KindTrue
	// KindFalse means the attribute is explicitly false (bare "-name").
	KindFalse
	// KindUnset means the attribute is explicitly removed ("!name"),
	// overriding any lower-precedence assignment.
	KindUnset
	// KindString means the attribute carries an opaque string value
	// ("name=value").
	KindString
)

// AttributeValue is the result of resolving one attribute at one path:
// TRUE, FALSE, UNSET, a non-empty STRING, or UNSPECIFIED.
type AttributeValue struct {
	kind ValueKind
	str  string
}

// Unspecified is the value of an attribute with no matching assignment.
var Unspecified = AttributeValue{kind: KindUnspecified}

// True is the value of a bare "name" assignment.
var True = AttributeValue{kind: KindTrue}

// False is the value of a "-name" assignment.
var False = AttributeValue{kind: KindFalse}

// Unset is the value of a "!name" assignment.
var Unset = AttributeValue{kind: KindUnset}

// StringValue builds a "name=value" assignment value.
func StringValue(s string) AttributeValue {
	return AttributeValue{kind: KindString, str: s}
}

// Kind reports the value's classification.
func (v AttributeValue) Kind() ValueKind { return v.kind }

// Equal reports whether two values are identical, letting go-cmp
// compare AttributeValue by value instead of reflecting into its
// unexported fields.
func (v AttributeValue) Equal(other AttributeValue) bool { return v == other }

// IsSpecified reports whether any rule assigned this attribute a value at all.
func (v AttributeValue) IsSpecified() bool { return v.kind != KindUnspecified }

// String returns the opaque value for KindString, or a fixed label for
// the other kinds ("true", "false", "unset", "unspecified"). It returns
// the empty string only for StringValue(""), a value the parser never
// produces.
func (v AttributeValue) String() string {
	switch v.kind {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindUnset:
		return "unset"
	case KindString:
		return v.str
	default:
		return "unspecified"
	}
}

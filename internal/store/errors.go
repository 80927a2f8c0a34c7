// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import "fmt"

// Kind classifies a store-level failure so the dispatcher can map it to the
// right wire reply without inspecting message text.
type Kind int

const (
	KindWrongType Kind = iota
	KindEmptyKey
	KindIndexOutOfRange
	KindIncompatibleTypes
	KindBadTimestamp
	KindBadRequest
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindWrongType:
		return "WrongType"
	case KindEmptyKey:
		return "EmptyKey"
	case KindIndexOutOfRange:
		return "IndexOutOfRange"
	case KindIncompatibleTypes:
		return "IncompatibleTypes"
	case KindBadTimestamp:
		return "BadTimestamp"
	case KindBadRequest:
		return "BadRequest"
	default:
		return "Internal"
	}
}

// Error is the typed result the store returns instead of a bare error,
// letting the dispatcher pick a reply shape by Kind rather than string match.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func wrongType(key, want string) *Error {
	return errf(KindWrongType, "key %q is not a %s", key, want)
}

func emptyKey(key string) *Error {
	return errf(KindEmptyKey, "key %q is empty", key)
}

func indexOutOfRange(i int) *Error {
	return errf(KindIndexOutOfRange, "index %d out of range", i)
}

func incompatibleTypes(key string) *Error {
	return errf(KindIncompatibleTypes, "incompatible data types for key %q", key)
}

func badTimestamp(raw string) *Error {
	return errf(KindBadTimestamp, "cannot parse timestamp %q", raw)
}

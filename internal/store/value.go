// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store implements the typed in-memory key space: the four Value
// variants (KV, HASH, QUEUE, SET), lazy expiry, and the independent schedule
// heap. It follows the teacher's pkg/metricstore habit of splitting one
// concern per file rather than one giant store.go.
package store

import "github.com/kvaultd/kvaultd/internal/wire"

// ValueKind is the tag of a stored Value. A key's ValueKind never changes in
// place; reassignment always replaces the whole Value.
type ValueKind int

const (
	KindKV ValueKind = iota
	KindHash
	KindQueue
	KindSet
)

func (k ValueKind) String() string {
	switch k {
	case KindKV:
		return "kv"
	case KindHash:
		return "hash"
	case KindQueue:
		return "queue"
	case KindSet:
		return "set"
	default:
		return "unknown"
	}
}

// field is one HASH entry. Hash payloads keep insertion order in a slice
// rather than a Go map, since map iteration order is not stable and the
// spec requires HASH iteration/snapshot order to match insertion.
type field struct {
	Name  string
	Value wire.Frame
}

// Value is the tagged payload stored under one key. Exactly one of Scalar,
// Hash, Queue, Set is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Scalar wire.Frame   // KindKV
	Hash   []field      // KindHash, insertion order preserved
	Queue  []wire.Frame // KindQueue, index 0 is the head
	Set    []wire.Frame // KindSet, de-duplicated by canonical wire encoding
}

func newHash() Value  { return Value{Kind: KindHash} }
func newQueue() Value { return Value{Kind: KindQueue} }
func newSet() Value   { return Value{Kind: KindSet} }

func scalarValue(f wire.Frame) Value { return Value{Kind: KindKV, Scalar: f} }

// NewScalarValue builds a KV Value, exported for callers outside the
// package (the snapshot codec) that need to reconstruct a Value from a
// decoded frame.
func NewScalarValue(f wire.Frame) Value { return scalarValue(f) }

// NewHashValue builds a HASH Value from ordered field/value pairs,
// preserving the given order (later duplicate names overwrite earlier ones,
// matching hashSet's upsert semantics).
func NewHashValue(pairs []wire.Pair) Value {
	v := newHash()
	for _, p := range pairs {
		v.hashSet(frameText(p.Key), p.Value)
	}
	return v
}

// NewQueueValue builds a QUEUE Value from elems in head-to-tail order.
func NewQueueValue(elems []wire.Frame) Value {
	return Value{Kind: KindQueue, Queue: append([]wire.Frame(nil), elems...)}
}

// NewSetValue builds a SET Value, de-duplicating members by canonical wire
// encoding.
func NewSetValue(elems []wire.Frame) Value {
	v := newSet()
	for _, e := range elems {
		v.setAdd(e)
	}
	return v
}

// HashPairs returns v's HASH fields as ordered wire pairs, for callers
// outside the package (the snapshot codec) that need to serialize a Value
// without depending on the unexported field type.
func (v Value) HashPairs() []wire.Pair {
	pairs := make([]wire.Pair, len(v.Hash))
	for i, f := range v.Hash {
		pairs[i] = wire.Pair{Key: wire.Text(f.Name), Value: f.Value}
	}
	return pairs
}

func (v *Value) hashIndex(name string) int {
	for i := range v.Hash {
		if v.Hash[i].Name == name {
			return i
		}
	}
	return -1
}

// hashSet upserts a field, reporting whether it was newly created.
func (v *Value) hashSet(name string, val wire.Frame) bool {
	if i := v.hashIndex(name); i >= 0 {
		v.Hash[i].Value = val
		return false
	}
	v.Hash = append(v.Hash, field{Name: name, Value: val})
	return true
}

func (v *Value) hashDel(name string) bool {
	i := v.hashIndex(name)
	if i < 0 {
		return false
	}
	v.Hash = append(v.Hash[:i], v.Hash[i+1:]...)
	return true
}

func wireKey(f wire.Frame) string { return string(wire.EncodeBytes(f)) }

// setIndex returns the position of a member matching f's canonical encoding.
func (v *Value) setIndex(f wire.Frame) int {
	target := wireKey(f)
	for i, m := range v.Set {
		if wireKey(m) == target {
			return i
		}
	}
	return -1
}

// setAdd adds a member if absent, reporting whether it was newly added.
func (v *Value) setAdd(f wire.Frame) bool {
	if v.setIndex(f) >= 0 {
		return false
	}
	v.Set = append(v.Set, f)
	return true
}

func (v *Value) setRemove(f wire.Frame) bool {
	i := v.setIndex(f)
	if i < 0 {
		return false
	}
	v.Set = append(v.Set[:i], v.Set[i+1:]...)
	return true
}

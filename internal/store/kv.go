// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"container/heap"

	"github.com/kvaultd/kvaultd/internal/wire"
)

// Set replaces the value at key and clears any expiry on it.
func (s *Store) Set(key string, v wire.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = valueFromFrame(v)
	s.clearExpiry(key)
}

// valueFromFrame infers a Value's Kind from the shape of a decoded frame:
// array/dict/set become QUEUE/HASH/SET, everything else stays a KV scalar.
func valueFromFrame(f wire.Frame) Value {
	switch f.Tag {
	case wire.TagArray:
		return Value{Kind: KindQueue, Queue: append([]wire.Frame(nil), f.Elems...)}
	case wire.TagDict:
		h := newHash()
		for _, p := range f.Pairs {
			h.hashSet(frameText(p.Key), p.Value)
		}
		return h
	case wire.TagSet:
		st := newSet()
		for _, e := range f.Elems {
			st.setAdd(e)
		}
		return st
	default:
		return scalarValue(f)
	}
}

func frameText(f wire.Frame) string {
	switch f.Tag {
	case wire.TagSimple, wire.TagError:
		return f.Text
	case wire.TagBulk, wire.TagUnicode:
		return string(f.Bytes)
	default:
		return string(wire.EncodeBytes(f))
	}
}

// SetNX sets key only if it is absent or expired, reporting whether it set.
func (s *Store) SetNX(key string, v wire.Frame) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	if _, ok := s.kv[key]; ok {
		return false
	}
	s.kv[key] = valueFromFrame(v)
	s.clearExpiry(key)
	return true
}

// Get returns the value at key, or a null frame if absent/expired.
func (s *Store) Get(key string) wire.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	v, ok := s.kv[key]
	if !ok {
		return wire.Null()
	}
	return valueToFrame(v)
}

func valueToFrame(v Value) wire.Frame {
	switch v.Kind {
	case KindQueue:
		return wire.Array(v.Queue...)
	case KindHash:
		pairs := make([]wire.Pair, len(v.Hash))
		for i, f := range v.Hash {
			pairs[i] = wire.Pair{Key: wire.Text(f.Name), Value: f.Value}
		}
		return wire.Dict(pairs...)
	case KindSet:
		return wire.SetFrame(v.Set...)
	default:
		return v.Scalar
	}
}

// GetSet replaces key's value and returns the prior one (null if absent).
func (s *Store) GetSet(key string, v wire.Frame) wire.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	prev, ok := s.kv[key]
	s.kv[key] = valueFromFrame(v)
	s.clearExpiry(key)
	if !ok {
		return wire.Null()
	}
	return valueToFrame(prev)
}

// Delete removes key, reporting whether it existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	if _, ok := s.kv[key]; !ok {
		return false
	}
	delete(s.kv, key)
	delete(s.expiryMap, key)
	return true
}

// Pop removes and returns the value at key, or null if absent/expired.
func (s *Store) Pop(key string) wire.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	v, ok := s.kv[key]
	if !ok {
		return wire.Null()
	}
	delete(s.kv, key)
	delete(s.expiryMap, key)
	return valueToFrame(v)
}

// MDelete deletes each key, returning the count actually removed.
func (s *Store) MDelete(keys []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, k := range keys {
		s.expireIfDue(k)
		if _, ok := s.kv[k]; ok {
			delete(s.kv, k)
			delete(s.expiryMap, k)
			n++
		}
	}
	return n
}

// MGet returns one frame per key, null for absent/expired entries.
func (s *Store) MGet(keys []string) []wire.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wire.Frame, len(keys))
	for i, k := range keys {
		s.expireIfDue(k)
		if v, ok := s.kv[k]; ok {
			out[i] = valueToFrame(v)
		} else {
			out[i] = wire.Null()
		}
	}
	return out
}

// MPop behaves like MGet but removes each key found.
func (s *Store) MPop(keys []string) []wire.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wire.Frame, len(keys))
	for i, k := range keys {
		s.expireIfDue(k)
		if v, ok := s.kv[k]; ok {
			out[i] = valueToFrame(v)
			delete(s.kv, k)
			delete(s.expiryMap, k)
		} else {
			out[i] = wire.Null()
		}
	}
	return out
}

// MSet sets every key, clearing expiries, and returns the count written.
func (s *Store) MSet(pairs []wire.Pair) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		k := frameText(p.Key)
		s.kv[k] = valueFromFrame(p.Value)
		s.clearExpiry(k)
	}
	return len(pairs)
}

// MSetEX performs MSet then applies ttlSeconds expiry to every key.
func (s *Store) MSetEX(pairs []wire.Pair, ttlSeconds float64) int {
	s.mu.Lock()
	n := len(pairs)
	deadline := now() + ttlSeconds
	for _, p := range pairs {
		k := frameText(p.Key)
		s.kv[k] = valueFromFrame(p.Value)
		s.expiryMap[k] = deadline
		heap.Push(&s.expiry, expiryEntry{deadline: deadline, key: k})
	}
	s.mu.Unlock()
	return n
}

// Append concatenates v onto key's existing scalar, or extends a QUEUE.
// Incompatible scalar kinds report IncompatibleTypes, matching the single
// failure mode the source collapses every concatenation error into.
func (s *Store) Append(key string, v wire.Frame) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	cur, ok := s.kv[key]
	if !ok {
		s.kv[key] = valueFromFrame(v)
		return valueToFrame(s.kv[key]), nil
	}
	if cur.Kind == KindQueue {
		if v.Tag == wire.TagArray {
			cur.Queue = append(cur.Queue, v.Elems...)
		} else {
			cur.Queue = append(cur.Queue, v)
		}
		s.kv[key] = cur
		return valueToFrame(cur), nil
	}
	merged, err := concatScalars(cur.Scalar, v)
	if err != nil {
		return wire.Frame{}, incompatibleTypes(key)
	}
	s.kv[key] = scalarValue(merged)
	return merged, nil
}

func concatScalars(a, b wire.Frame) (wire.Frame, error) {
	switch a.Tag {
	case wire.TagBulk:
		if b.Tag != wire.TagBulk {
			return wire.Frame{}, errf(KindIncompatibleTypes, "cannot append to bulk")
		}
		return wire.Bulk(append(append([]byte(nil), a.Bytes...), b.Bytes...)), nil
	case wire.TagUnicode:
		if b.Tag != wire.TagUnicode {
			return wire.Frame{}, errf(KindIncompatibleTypes, "cannot append to text")
		}
		return wire.Text(string(a.Bytes) + string(b.Bytes)), nil
	case wire.TagSimple:
		if b.Tag != wire.TagSimple {
			return wire.Frame{}, errf(KindIncompatibleTypes, "cannot append to simple text")
		}
		return wire.Simple(a.Text + b.Text), nil
	case wire.TagNumber:
		if b.Tag != wire.TagNumber {
			return wire.Frame{}, errf(KindIncompatibleTypes, "cannot append to number")
		}
		if a.IsFloat || b.IsFloat {
			return wire.Float(numberAsFloat(a) + numberAsFloat(b)), nil
		}
		return wire.Int(a.IntVal + b.IntVal), nil
	default:
		return wire.Frame{}, errf(KindIncompatibleTypes, "value has no append semantics")
	}
}

func numberAsFloat(f wire.Frame) float64 {
	if f.IsFloat {
		return f.FloatVal
	}
	return float64(f.IntVal)
}

// IncrBy adds delta to the numeric value at key (0 if absent), storing and
// returning the result. The subtype is (float, int): a stored or incoming
// float keeps the result a float, otherwise the result stays an int. A
// non-numeric existing value fails WrongType.
func (s *Store) IncrBy(key string, delta wire.Frame) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireIfDue(key)
	v, ok := s.kv[key]
	cur := wire.Int(0)
	if ok {
		if v.Kind != KindKV || v.Scalar.Tag != wire.TagNumber {
			return wire.Frame{}, wrongType(key, "number")
		}
		cur = v.Scalar
	}
	next := addNumbers(cur, delta)
	s.kv[key] = scalarValue(next)
	return next, nil
}

func addNumbers(a, b wire.Frame) wire.Frame {
	if a.IsFloat || b.IsFloat {
		return wire.Float(numberAsFloat(a) + numberAsFloat(b))
	}
	return wire.Int(a.IntVal + b.IntVal)
}

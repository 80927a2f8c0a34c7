// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import "github.com/kvaultd/kvaultd/internal/wire"

// LPush pushes values onto the head of key's queue (auto-creating it),
// returning the new length.
func (s *Store) LPush(key string, values []wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindQueue, true)
	if err != nil {
		return 0, err
	}
	for _, val := range values {
		v.Queue = append([]wire.Frame{val}, v.Queue...)
	}
	s.kv[key] = v
	return len(v.Queue), nil
}

// RPush pushes values onto the tail, returning the new length.
func (s *Store) RPush(key string, values []wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindQueue, true)
	if err != nil {
		return 0, err
	}
	v.Queue = append(v.Queue, values...)
	s.kv[key] = v
	return len(v.Queue), nil
}

// LPop removes and returns the head. An empty (or absent) queue fails
// EmptyKey, per the binding resolution of the source's inconsistent
// raise-vs-null behavior.
func (s *Store) LPop(key string) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return wire.Frame{}, err
	}
	if !ok || len(v.Queue) == 0 {
		return wire.Frame{}, emptyKey(key)
	}
	head := v.Queue[0]
	v.Queue = v.Queue[1:]
	s.kv[key] = v
	return head, nil
}

func (s *Store) RPop(key string) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return wire.Frame{}, err
	}
	if !ok || len(v.Queue) == 0 {
		return wire.Frame{}, emptyKey(key)
	}
	n := len(v.Queue)
	tail := v.Queue[n-1]
	v.Queue = v.Queue[:n-1]
	s.kv[key] = v
	return tail, nil
}

func (s *Store) LLen(key string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return len(v.Queue), nil
}

func resolveIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

// LIndex returns the i-th element (negative counts from the tail).
// Out-of-range fails IndexOutOfRange.
func (s *Store) LIndex(key string, i int) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return wire.Frame{}, err
	}
	if !ok {
		return wire.Frame{}, indexOutOfRange(i)
	}
	idx := resolveIndex(i, len(v.Queue))
	if idx < 0 || idx >= len(v.Queue) {
		return wire.Frame{}, indexOutOfRange(i)
	}
	return v.Queue[idx], nil
}

// LSet replaces the element at i, returning 1 on success, 0 out-of-range.
func (s *Store) LSet(key string, i int, val wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	idx := resolveIndex(i, len(v.Queue))
	if idx < 0 || idx >= len(v.Queue) {
		return 0, nil
	}
	v.Queue[idx] = val
	s.kv[key] = v
	return 1, nil
}

// LRange returns the [start, end) slice, end defaulting to length when
// endSet is false. Negative indices count from the tail; out-of-range
// bounds clamp silently rather than erroring.
func (s *Store) LRange(key string, start int, end int, endSet bool) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	n := len(v.Queue)
	if !endSet {
		end = n
	}
	lo := clamp(resolveIndex(start, n), 0, n)
	hi := clamp(resolveIndex(end, n), 0, n)
	if lo >= hi {
		return []wire.Frame{}, nil
	}
	out := make([]wire.Frame, hi-lo)
	copy(out, v.Queue[lo:hi])
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LTrim replaces the payload with its [start, stop) slice, returning the new
// length.
func (s *Store) LTrim(key string, start, stop int) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n := len(v.Queue)
	lo := clamp(resolveIndex(start, n), 0, n)
	hi := clamp(resolveIndex(stop, n), 0, n)
	if lo >= hi {
		v.Queue = []wire.Frame{}
	} else {
		v.Queue = append([]wire.Frame(nil), v.Queue[lo:hi]...)
	}
	s.kv[key] = v
	return len(v.Queue), nil
}

// LRem removes the first occurrence of val, returning 1 if found, 0
// otherwise.
func (s *Store) LRem(key string, val wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	target := wireKey(val)
	for i, el := range v.Queue {
		if wireKey(el) == target {
			v.Queue = append(v.Queue[:i], v.Queue[i+1:]...)
			s.kv[key] = v
			return 1, nil
		}
	}
	return 0, nil
}

// RPopLPush pops the tail of src and pushes it onto the head of dest,
// returning 1 on success, 0 if src is empty or absent.
func (s *Store) RPopLPush(src, dest string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok, err := s.guard(src, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok || len(sv.Queue) == 0 {
		return 0, nil
	}
	n := len(sv.Queue)
	val := sv.Queue[n-1]
	sv.Queue = sv.Queue[:n-1]
	s.kv[src] = sv

	dv, _, err := s.guard(dest, KindQueue, true)
	if err != nil {
		return 0, err
	}
	dv.Queue = append([]wire.Frame{val}, dv.Queue...)
	s.kv[dest] = dv
	return 1, nil
}

// LFlush clears the queue payload, returning the prior length.
func (s *Store) LFlush(key string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindQueue, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n := len(v.Queue)
	v.Queue = nil
	s.kv[key] = v
	return n, nil
}

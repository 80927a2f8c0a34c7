// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import "github.com/kvaultd/kvaultd/internal/wire"

// SAdd adds members to key's set (auto-creating it), returning the new
// cardinality.
func (s *Store) SAdd(key string, members []wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindSet, true)
	if err != nil {
		return 0, err
	}
	for _, m := range members {
		v.setAdd(m)
	}
	s.kv[key] = v
	return len(v.Set), nil
}

func (s *Store) SCard(key string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return len(v.Set), nil
}

func (s *Store) SIsMember(key string, m wire.Frame) (bool, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return false, err
	}
	return ok && v.setIndex(m) >= 0, nil
}

func (s *Store) SMembers(key string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return append([]wire.Frame(nil), v.Set...), nil
}

// SPop removes and returns up to n arbitrary members.
func (s *Store) SPop(key string, n int) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return nil, err
	}
	if !ok || len(v.Set) == 0 {
		return nil, nil
	}
	if n > len(v.Set) {
		n = len(v.Set)
	}
	popped := append([]wire.Frame(nil), v.Set[:n]...)
	v.Set = v.Set[n:]
	s.kv[key] = v
	return popped, nil
}

// SRem removes the listed members, returning the count actually removed.
func (s *Store) SRem(key string, members []wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	removed := 0
	for _, m := range members {
		if v.setRemove(m) {
			removed++
		}
	}
	s.kv[key] = v
	return removed, nil
}

// setOperand loads keys[i] as a SET, failing WrongType if present with a
// different tag (absent keys are treated as the empty set).
func (s *Store) setOperand(key string) ([]wire.Frame, *Error) {
	v, ok, err := s.guard(key, KindSet, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return v.Set, nil
}

func containsFrame(set []wire.Frame, f wire.Frame) bool {
	target := wireKey(f)
	for _, e := range set {
		if wireKey(e) == target {
			return true
		}
	}
	return false
}

// SDiff computes keys[0] - keys[1] - ... left to right. Every operand,
// including the first, must pass the SET guard.
func (s *Store) SDiff(keys []string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCombine(keys, diffCombine)
}

// SInter computes the intersection of every key's set.
func (s *Store) SInter(keys []string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCombine(keys, interCombine)
}

// SUnion computes the union of every key's set.
func (s *Store) SUnion(keys []string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCombine(keys, unionCombine)
}

func (s *Store) setCombine(keys []string, combine func(acc, next []wire.Frame) []wire.Frame) ([]wire.Frame, *Error) {
	if len(keys) == 0 {
		return nil, nil
	}
	acc, err := s.setOperand(keys[0])
	if err != nil {
		return nil, err
	}
	acc = append([]wire.Frame(nil), acc...)
	for _, k := range keys[1:] {
		next, err := s.setOperand(k)
		if err != nil {
			return nil, err
		}
		acc = combine(acc, next)
	}
	return acc, nil
}

// diffCombine keeps the members of acc that are not in next.
func diffCombine(acc, next []wire.Frame) []wire.Frame {
	out := acc[:0:0]
	for _, e := range acc {
		if !containsFrame(next, e) {
			out = append(out, e)
		}
	}
	return out
}

func interCombine(acc, next []wire.Frame) []wire.Frame {
	out := acc[:0:0]
	for _, e := range acc {
		if containsFrame(next, e) {
			out = append(out, e)
		}
	}
	return out
}

func unionCombine(acc, next []wire.Frame) []wire.Frame {
	out := append([]wire.Frame(nil), acc...)
	for _, e := range next {
		if !containsFrame(out, e) {
			out = append(out, e)
		}
	}
	return out
}

// SDiffStore, SInterStore, SUnionStore store the combined result into dest
// (auto-created as SET, replacing any existing value) and return its
// cardinality.
func (s *Store) SDiffStore(dest string, keys []string) (int, *Error) {
	return s.setStoreOp(dest, keys, diffCombine)
}

func (s *Store) SInterStore(dest string, keys []string) (int, *Error) {
	return s.setStoreOp(dest, keys, interCombine)
}

func (s *Store) SUnionStore(dest string, keys []string) (int, *Error) {
	return s.setStoreOp(dest, keys, unionCombine)
}

func (s *Store) setStoreOp(dest string, keys []string, combine func(acc, next []wire.Frame) []wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.setCombine(keys, combine)
	if err != nil {
		return 0, err
	}
	v := newSet()
	for _, f := range result {
		v.setAdd(f)
	}
	s.kv[dest] = v
	s.clearExpiry(dest)
	return len(v.Set), nil
}

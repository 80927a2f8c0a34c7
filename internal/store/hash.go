// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import "github.com/kvaultd/kvaultd/internal/wire"

// HSet sets field on key's hash (auto-creating the hash), returning 1.
func (s *Store) HSet(key, field string, val wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindHash, true)
	if err != nil {
		return 0, err
	}
	v.hashSet(field, val)
	s.kv[key] = v
	return 1, nil
}

// HSetNX sets field only if absent, returning 1 if set, 0 otherwise.
func (s *Store) HSetNX(key, field string, val wire.Frame) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindHash, true)
	if err != nil {
		return 0, err
	}
	if v.hashIndex(field) >= 0 {
		return 0, nil
	}
	v.hashSet(field, val)
	s.kv[key] = v
	return 1, nil
}

// HMSet bulk-sets fields, returning the number written.
func (s *Store) HMSet(key string, pairs []wire.Pair) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindHash, true)
	if err != nil {
		return 0, err
	}
	for _, p := range pairs {
		v.hashSet(frameText(p.Key), p.Value)
	}
	s.kv[key] = v
	return len(pairs), nil
}

// HGet returns the field's value or null if the key or field is absent.
func (s *Store) HGet(key, field string) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return wire.Frame{}, err
	}
	if !ok {
		return wire.Null(), nil
	}
	if i := v.hashIndex(field); i >= 0 {
		return v.Hash[i].Value, nil
	}
	return wire.Null(), nil
}

// HMGet returns one frame per requested field, null where absent.
func (s *Store) HMGet(key string, fields []string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return nil, err
	}
	out := make([]wire.Frame, len(fields))
	for i, f := range fields {
		if !ok {
			out[i] = wire.Null()
			continue
		}
		if j := v.hashIndex(f); j >= 0 {
			out[i] = v.Hash[j].Value
		} else {
			out[i] = wire.Null()
		}
	}
	return out, nil
}

// HGetAll returns every field/value pair in insertion order.
func (s *Store) HGetAll(key string) ([]wire.Pair, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out := make([]wire.Pair, len(v.Hash))
	for i, f := range v.Hash {
		out[i] = wire.Pair{Key: wire.Text(f.Name), Value: f.Value}
	}
	return out, nil
}

func (s *Store) HKeys(key string) ([]string, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out := make([]string, len(v.Hash))
	for i, f := range v.Hash {
		out[i] = f.Name
	}
	return out, nil
}

func (s *Store) HVals(key string) ([]wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	out := make([]wire.Frame, len(v.Hash))
	for i, f := range v.Hash {
		out[i] = f.Value
	}
	return out, nil
}

func (s *Store) HLen(key string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return len(v.Hash), nil
}

func (s *Store) HExists(key, field string) (bool, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return false, err
	}
	return ok && v.hashIndex(field) >= 0, nil
}

// HDel removes field, returning 1 if it existed, 0 otherwise.
func (s *Store) HDel(key, field string) (int, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.guard(key, KindHash, false)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	if v.hashDel(field) {
		s.kv[key] = v
		return 1, nil
	}
	return 0, nil
}

// HIncrBy treats a missing field as 0, adds delta, stores and returns the
// result. The subtype is (float, int): a stored float field keeps the
// result a float. A non-numeric existing field fails WrongType.
func (s *Store) HIncrBy(key, field string, delta int64) (wire.Frame, *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _, err := s.guard(key, KindHash, true)
	if err != nil {
		return wire.Frame{}, err
	}
	cur := wire.Int(0)
	if i := v.hashIndex(field); i >= 0 {
		existing := v.Hash[i].Value
		if existing.Tag != wire.TagNumber {
			return wire.Frame{}, wrongType(key, "number field")
		}
		cur = existing
	}
	next := addNumbers(cur, wire.Int(delta))
	v.hashSet(field, next)
	s.kv[key] = v
	return next, nil
}

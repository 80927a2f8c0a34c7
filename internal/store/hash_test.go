// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func TestHashSetGet(t *testing.T) {
	s := New()
	n, err := s.HSet("h1", "k1", wire.Text("v1"))
	if err != nil || n != 1 {
		t.Fatalf("got %d %v", n, err)
	}
	got, err := s.HGet("h1", "k1")
	if err != nil || string(got.Bytes) != "v1" {
		t.Fatalf("got %+v %v", got, err)
	}
}

func TestHSetNX(t *testing.T) {
	s := New()
	first, _ := s.HSetNX("h", "f", wire.Int(1))
	second, _ := s.HSetNX("h", "f", wire.Int(2))
	if first != 1 || second != 0 {
		t.Fatalf("got %d %d", first, second)
	}
	got, _ := s.HGet("h", "f")
	if got.IntVal != 1 {
		t.Fatalf("expected original value retained, got %+v", got)
	}
}

func TestHGetAllPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.HSet("h", "b", wire.Int(2))
	s.HSet("h", "a", wire.Int(1))
	pairs, err := s.HGetAll("h")
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 || string(pairs[0].Key.Bytes) != "b" || string(pairs[1].Key.Bytes) != "a" {
		t.Fatalf("got %+v", pairs)
	}
}

func TestHMGetMissingFieldsAreNull(t *testing.T) {
	s := New()
	s.HSet("h", "a", wire.Int(1))
	got, err := s.HMGet("h", []string{"a", "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].IntVal != 1 || !got[1].IsNull() {
		t.Fatalf("got %+v", got)
	}
}

func TestHDel(t *testing.T) {
	s := New()
	s.HSet("h", "a", wire.Int(1))
	n, _ := s.HDel("h", "a")
	if n != 1 {
		t.Fatalf("got %d", n)
	}
	n2, _ := s.HDel("h", "a")
	if n2 != 0 {
		t.Fatalf("got %d", n2)
	}
}

func TestHIncrByMissingFieldStartsAtZero(t *testing.T) {
	s := New()
	v, err := s.HIncrBy("h", "n", 5)
	if err != nil || v.IntVal != 5 {
		t.Fatalf("got %+v %v", v, err)
	}
	v, err = s.HIncrBy("h", "n", -2)
	if err != nil || v.IntVal != 3 {
		t.Fatalf("got %+v %v", v, err)
	}
}

func TestHIncrByAcceptsFloatField(t *testing.T) {
	s := New()
	s.HSet("h", "n", wire.Float(1.5))
	v, err := s.HIncrBy("h", "n", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsFloat || v.FloatVal != 2.5 {
		t.Fatalf("got %+v", v)
	}
}

func TestHIncrByNonNumericFails(t *testing.T) {
	s := New()
	s.HSet("h", "n", wire.Text("not a number"))
	_, err := s.HIncrBy("h", "n", 1)
	if err == nil || err.Kind != KindWrongType {
		t.Fatalf("expected WrongType, got %v", err)
	}
}

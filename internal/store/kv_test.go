// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func TestSetGetDelete(t *testing.T) {
	s := New()
	s.Set("k1", wire.Text("v1"))
	if got := s.Get("k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	if !s.Delete("k1") {
		t.Fatal("expected delete to report existed")
	}
	if s.Delete("k1") {
		t.Fatal("expected second delete to report absent")
	}
	if got := s.Get("k1"); !got.IsNull() {
		t.Fatalf("expected null after delete, got %+v", got)
	}
}

func TestSetClearsExpiry(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	s.Expire("k1", -1)
	s.Set("k1", wire.Int(2))
	if got := s.Get("k1"); got.IntVal != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestExpireNegativeTTLIsImmediate(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	s.Expire("k1", -1)
	if got := s.Get("k1"); !got.IsNull() {
		t.Fatalf("expected expired key to read null, got %+v", got)
	}
}

func TestPopRemovesAndReturns(t *testing.T) {
	s := New()
	s.Set("k1", wire.Text("v1"))
	if got := s.Pop("k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	if got := s.Get("k1"); !got.IsNull() {
		t.Fatalf("expected key removed after pop, got %+v", got)
	}
	if got := s.Pop("missing"); !got.IsNull() {
		t.Fatalf("expected null popping absent key, got %+v", got)
	}
}

func TestIncrDecr(t *testing.T) {
	s := New()
	v, err := s.IncrBy("i", wire.Int(1))
	if err != nil || v.IntVal != 1 {
		t.Fatalf("got %+v %v", v, err)
	}
	v, err = s.IncrBy("i", wire.Int(-1))
	if err != nil || v.IntVal != 0 {
		t.Fatalf("got %+v %v", v, err)
	}
	v, err = s.IncrBy("i2", wire.Int(3))
	if err != nil || v.IntVal != 3 {
		t.Fatalf("got %+v %v", v, err)
	}
	v, err = s.IncrBy("i2", wire.Int(2))
	if err != nil || v.IntVal != 5 {
		t.Fatalf("got %+v %v", v, err)
	}
}

func TestIncrAcceptsFloatValue(t *testing.T) {
	s := New()
	s.Set("f", wire.Float(1.5))
	v, err := s.IncrBy("f", wire.Int(1))
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsFloat || v.FloatVal != 2.5 {
		t.Fatalf("got %+v", v)
	}
}

func TestIncrByFloatDelta(t *testing.T) {
	s := New()
	v, err := s.IncrBy("i3", wire.Float(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsFloat || v.FloatVal != 0.5 {
		t.Fatalf("got %+v", v)
	}
}

func TestMSetMGetExpire(t *testing.T) {
	s := New()
	n := s.MSet([]wire.Pair{
		{Key: wire.Text("k1"), Value: wire.Text("v1")},
		{Key: wire.Text("k2"), Value: wire.Text("v2")},
		{Key: wire.Text("k3"), Value: wire.Text("v3")},
	})
	if n != 3 {
		t.Fatalf("got %d", n)
	}
	s.Expire("k2", -1)
	s.Expire("k3", 3)
	got := s.MGet([]string{"k1", "k2", "k3"})
	if string(got[0].Bytes) != "v1" || !got[1].IsNull() || string(got[2].Bytes) != "v3" {
		t.Fatalf("got %+v", got)
	}
}

func TestAppendScalars(t *testing.T) {
	s := New()
	s.Set("s", wire.Text("hello "))
	got, err := s.Append("s", wire.Text("world"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Bytes) != "hello world" {
		t.Fatalf("got %+v", got)
	}
}

func TestAppendIncompatibleTypes(t *testing.T) {
	s := New()
	s.Set("s", wire.Text("hello"))
	_, err := s.Append("s", wire.Int(1))
	if err == nil || err.Kind != KindIncompatibleTypes {
		t.Fatalf("expected IncompatibleTypes, got %v", err)
	}
}

func TestAppendQueueExtends(t *testing.T) {
	s := New()
	s.Set("q", wire.Array(wire.Text("alpha"), wire.Text("beta"), wire.Text("gamma")))
	got, err := s.Append("q", wire.Array(wire.Text("pi"), wire.Bulk([]byte("omega"))))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Elems) != 5 {
		t.Fatalf("got %+v", got)
	}
}

func TestFlushAllResetsExpiry(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	s.Expire("k1", 100)
	prior := s.FlushAll()
	if prior != 1 {
		t.Fatalf("got %d", prior)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after flush")
	}
	if len(s.expiryMap) != 0 || s.expiry.Len() != 0 {
		t.Fatalf("expected expiry state cleared by flush")
	}
}

func TestWrongTypeGuard(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	_, err := s.HGet("k1", "f")
	if err == nil || err.Kind != KindWrongType {
		t.Fatalf("expected WrongType, got %v", err)
	}
}

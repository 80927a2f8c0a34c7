// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap")

	s := store.New()
	s.Set("k1", wire.Text("v1"))
	s.HSet("h1", "k1", wire.Text("v1"))
	s.SAdd("s1", []wire.Frame{wire.Text("v1"), wire.Text("v2")})
	s.ScheduleAdd("2030-01-01 00:00:00", wire.Text("payload"))

	mgr := NewManager(s, FileTarget{}, FormatWire)
	if err := mgr.Save(path); err != nil {
		t.Fatal(err)
	}

	s.FlushAll()
	if got := s.Get("k1"); !got.IsNull() {
		t.Fatalf("expected flush to clear k1, got %+v", got)
	}

	found, err := mgr.Restore(path)
	if err != nil || !found {
		t.Fatalf("restore: found=%v err=%v", found, err)
	}
	if got := s.Get("k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	if got, _ := s.HGet("h1", "k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	if card, _ := s.SCard("s1"); card != 2 {
		t.Fatalf("got %d", card)
	}
	if s.ScheduleLength() != 1 {
		t.Fatalf("expected schedule restored")
	}
}

func TestRestoreMissingFileReturnsFalse(t *testing.T) {
	s := store.New()
	mgr := NewManager(s, FileTarget{}, FormatWire)
	found, err := mgr.Restore(filepath.Join(t.TempDir(), "missing"))
	if err != nil || found {
		t.Fatalf("found=%v err=%v", found, err)
	}
}

func TestMergeKeepsExistingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap")

	src := store.New()
	src.Set("k1", wire.Text("v1"))
	src.HSet("h1", "k1", wire.Text("v1"))
	src.SAdd("s1", []wire.Frame{wire.Text("v1"), wire.Text("v2")})
	mgr := NewManager(src, FileTarget{}, FormatWire)
	if err := mgr.Save(path); err != nil {
		t.Fatal(err)
	}

	live := store.New()
	live.Set("k1", wire.Text("x1"))
	live.Set("k2", wire.Text("x2"))
	liveMgr := NewManager(live, FileTarget{}, FormatWire)
	found, err := liveMgr.Merge(path)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if got := live.Get("k1"); string(got.Bytes) != "x1" {
		t.Fatalf("expected existing k1 to win, got %+v", got)
	}
	if got := live.Get("k2"); string(got.Bytes) != "x2" {
		t.Fatalf("got %+v", got)
	}
	if got, _ := live.HGet("h1", "k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	if card, _ := live.SCard("s1"); card != 2 {
		t.Fatalf("got %d", card)
	}
}

func TestAvroRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.avro")

	s := store.New()
	s.Set("k1", wire.Text("v1"))
	s.RPush("q1", []wire.Frame{wire.Int(1), wire.Int(2)})
	s.ScheduleAdd("2030-06-01 12:30:00.250", wire.Int(7))

	mgr := NewManager(s, FileTarget{}, FormatAvro)
	if err := mgr.Save(path); err != nil {
		t.Fatal(err)
	}

	restored := store.New()
	restoredMgr := NewManager(restored, FileTarget{}, FormatAvro)
	found, err := restoredMgr.Restore(path)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if got := restored.Get("k1"); string(got.Bytes) != "v1" {
		t.Fatalf("got %+v", got)
	}
	got, _ := restored.LRange("q1", 0, 0, false)
	if len(got) != 2 || got[0].IntVal != 1 || got[1].IntVal != 2 {
		t.Fatalf("got %+v", got)
	}
	if restored.ScheduleLength() != 1 {
		t.Fatal("expected schedule entry restored")
	}
}

func TestFileTargetWriteCreatesDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "f")
	if err := (FileTarget{}).WriteFile(path, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

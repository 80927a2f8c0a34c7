// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func TestScheduleAddReadOrdering(t *testing.T) {
	s := New()
	if err := s.ScheduleAdd("2024-01-01 00:00:02", wire.Text("second")); err != nil {
		t.Fatal(err)
	}
	if err := s.ScheduleAdd("2024-01-01 00:00:01", wire.Text("first")); err != nil {
		t.Fatal(err)
	}
	out, err := s.ScheduleRead("2024-01-01 00:00:02")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %+v", out)
	}
	if string(out[0].Bytes) != "first" || string(out[1].Bytes) != "second" {
		t.Fatalf("expected ascending timestamp order, got %+v", out)
	}
}

func TestScheduleReadLeavesFutureEntries(t *testing.T) {
	s := New()
	s.ScheduleAdd("2030-01-01 00:00:00", wire.Text("future"))
	out, err := s.ScheduleRead("2020-01-01 00:00:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %+v", out)
	}
	if s.ScheduleLength() != 1 {
		t.Fatalf("expected untouched entry to remain")
	}
}

func TestScheduleBadTimestamp(t *testing.T) {
	s := New()
	err := s.ScheduleAdd("not-a-timestamp", wire.Text("x"))
	if err == nil || err.Kind != KindBadTimestamp {
		t.Fatalf("expected BadTimestamp, got %v", err)
	}
}

func TestScheduleFractionalSeconds(t *testing.T) {
	s := New()
	if err := s.ScheduleAdd("2024-01-01 00:00:00.500", wire.Text("x")); err != nil {
		t.Fatal(err)
	}
	if s.ScheduleLength() != 1 {
		t.Fatal("expected entry to be scheduled")
	}
}

func TestScheduleFlush(t *testing.T) {
	s := New()
	s.ScheduleAdd("2024-01-01 00:00:00", wire.Text("x"))
	s.ScheduleAdd("2024-01-01 00:00:01", wire.Text("y"))
	n := s.ScheduleFlush()
	if n != 2 {
		t.Fatalf("got %d", n)
	}
	if s.ScheduleLength() != 0 {
		t.Fatal("expected empty schedule after flush")
	}
}

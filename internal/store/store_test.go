// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"testing"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func TestSweepIgnoresStaleHeapEntries(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	s.Expire("k1", -10) // pushes a stale-looking but currently-authoritative entry
	s.Expire("k1", -5)  // overwrites expiryMap; the first heap entry is now stale
	n := s.Sweep()
	if n != 1 {
		t.Fatalf("expected exactly one real removal despite two heap entries, got %d", n)
	}
	if s.Len() != 0 {
		t.Fatalf("expected key removed")
	}
}

func TestStatsTracksCounters(t *testing.T) {
	s := New()
	s.RecordCommand(false)
	s.RecordCommand(true)
	s.ConnectionOpened()
	s.ConnectionOpened()
	s.ConnectionClosed()

	st := s.Stats()
	if st.CommandsProcessed != 2 || st.CommandErrors != 1 {
		t.Fatalf("got %+v", st)
	}
	if st.ActiveConnections != 1 || st.TotalConnections != 2 {
		t.Fatalf("got %+v", st)
	}
}

func TestFlushPreservesSchedule(t *testing.T) {
	s := New()
	s.Set("k1", wire.Int(1))
	s.ScheduleAdd("2030-01-01 00:00:00", wire.Text("x"))
	prior := s.Flush()
	if prior != 1 {
		t.Fatalf("got %d", prior)
	}
	if s.ScheduleLength() != 1 {
		t.Fatal("FLUSH must not touch the schedule")
	}
}

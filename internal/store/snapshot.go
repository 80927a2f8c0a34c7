// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"container/heap"

	"github.com/kvaultd/kvaultd/internal/wire"
)

// Snapshot is the Save/Restore/Merge unit: the whole kv space plus the
// schedule, with expiry state deliberately excluded (spec.md §4.8: expiry
// is not part of the snapshot).
type Snapshot struct {
	KV       map[string]Value
	Schedule []ScheduleItem
}

// ScheduleItem is one schedule-heap entry in ascending (timestamp, seq)
// order, as handed to and from the snapshot codec.
type ScheduleItem struct {
	Timestamp float64
	Payload   wire.Frame
}

// Export returns a deep copy of the live kv space and schedule, in
// ascending schedule order, suitable for serialization.
func (s *Store) Export() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	kv := make(map[string]Value, len(s.kv))
	for k, v := range s.kv {
		kv[k] = cloneValue(v)
	}

	sched := append(scheduleHeap(nil), s.schedule...)
	heap.Init(&sched)
	items := make([]ScheduleItem, 0, len(sched))
	for sched.Len() > 0 {
		e := heap.Pop(&sched).(scheduleEntry)
		items = append(items, ScheduleItem{Timestamp: e.ts, Payload: e.payload})
	}
	return Snapshot{KV: kv, Schedule: items}
}

func cloneValue(v Value) Value {
	switch v.Kind {
	case KindHash:
		h := newHash()
		h.Hash = append([]field(nil), v.Hash...)
		return h
	case KindQueue:
		return Value{Kind: KindQueue, Queue: append([]wire.Frame(nil), v.Queue...)}
	case KindSet:
		st := newSet()
		st.Set = append([]wire.Frame(nil), v.Set...)
		return st
	default:
		return v
	}
}

// Restore replaces kv and the schedule wholesale, resetting expiry state
// (spec.md §4.8: expiry is not persisted).
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kv = make(map[string]Value, len(snap.KV))
	for k, v := range snap.KV {
		s.kv[k] = cloneValue(v)
	}
	s.expiryMap = make(map[string]float64)
	s.expiry = nil
	heap.Init(&s.expiry)

	s.replaceScheduleLocked(snap.Schedule)
}

// Merge overlays snap onto the live store: for each key in snap.KV, insert
// only if not already present (existing entries win); the schedule is
// replaced wholesale regardless. Expiry state is untouched for surviving
// keys and never set for newly inserted ones.
func (s *Store) Merge(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range snap.KV {
		if _, exists := s.kv[k]; !exists {
			s.kv[k] = cloneValue(v)
		}
	}
	s.replaceScheduleLocked(snap.Schedule)
}

func (s *Store) replaceScheduleLocked(items []ScheduleItem) {
	s.schedule = nil
	heap.Init(&s.schedule)
	for _, it := range items {
		scheduleSeq++
		heap.Push(&s.schedule, scheduleEntry{ts: it.Timestamp, seq: scheduleSeq, payload: it.Payload})
	}
}

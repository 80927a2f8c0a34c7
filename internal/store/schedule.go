// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"container/heap"
	"strings"
	"time"

	"github.com/kvaultd/kvaultd/internal/wire"
)

// scheduleEntry is one pending delivery: a payload due at ts. seq breaks
// ties between equal timestamps in insertion order, since Go's heap does not
// guarantee stable ordering among equal keys.
type scheduleEntry struct {
	ts      float64
	seq     int64
	payload wire.Frame
}

type scheduleHeap []scheduleEntry

func (h scheduleHeap) Len() int { return len(h) }
func (h scheduleHeap) Less(i, j int) bool {
	if h[i].ts != h[j].ts {
		return h[i].ts < h[j].ts
	}
	return h[i].seq < h[j].seq
}
func (h scheduleHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *scheduleHeap) Push(x any)   { *h = append(*h, x.(scheduleEntry)) }
func (h *scheduleHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

const scheduleTimeLayout = "2006-01-02 15:04:05"

// parseScheduleTimestamp parses "Y-m-d H:M:S" with an optional fractional
// seconds suffix, matching the source's strptime-based parser.
func parseScheduleTimestamp(raw string) (float64, *Error) {
	layout := scheduleTimeLayout
	s := raw
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		layout = scheduleTimeLayout + "." + strings.Repeat("0", len(frac))
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return 0, badTimestamp(raw)
	}
	return float64(t.UnixNano()) / 1e9, nil
}

var scheduleSeq int64

// ScheduleAdd parses ts and pushes payload onto the schedule heap.
func (s *Store) ScheduleAdd(ts string, payload wire.Frame) *Error {
	t, err := parseScheduleTimestamp(ts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	scheduleSeq++
	heap.Push(&s.schedule, scheduleEntry{ts: t, seq: scheduleSeq, payload: payload})
	return nil
}

// ScheduleRead pops and returns every entry due at or before ts, in heap
// order (ties broken by insertion order).
func (s *Store) ScheduleRead(ts string) ([]wire.Frame, *Error) {
	t, err := parseScheduleTimestamp(ts)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []wire.Frame
	for s.schedule.Len() > 0 && s.schedule[0].ts <= t {
		e := heap.Pop(&s.schedule).(scheduleEntry)
		out = append(out, e.payload)
	}
	return out, nil
}

func (s *Store) ScheduleLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.Len()
}

func (s *Store) ScheduleFlush() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.schedule.Len()
	s.schedule = nil
	heap.Init(&s.schedule)
	return n
}

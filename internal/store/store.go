// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"container/heap"
	"sync"
	"time"
)

// expiryEntry is one (deadline, key) pair on the expiry heap. The heap may
// hold stale entries; expiryMap is the source of truth for whether a key is
// still expiring and at what deadline.
type expiryEntry struct {
	deadline float64
	key      string
}

type expiryHeap []expiryEntry

func (h expiryHeap) Len() int            { return len(h) }
func (h expiryHeap) Less(i, j int) bool  { return h[i].deadline < h[j].deadline }
func (h expiryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x any)         { *h = append(*h, x.(expiryEntry)) }
func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Store is the single shared key space. Every exported method acquires mu
// for its whole duration, matching the spec's single-active-mutator model:
// no command is ever interleaved with another.
type Store struct {
	mu sync.Mutex

	kv        map[string]Value
	expiryMap map[string]float64
	expiry    expiryHeap

	schedule scheduleHeap

	commandsProcessed int64
	commandErrors     int64
	activeConns       int64
	totalConns        int64
}

// New returns an empty Store.
func New() *Store {
	s := &Store{
		kv:        make(map[string]Value),
		expiryMap: make(map[string]float64),
	}
	heap.Init(&s.expiry)
	heap.Init(&s.schedule)
	return s
}

// now is a seam so tests can avoid wall-clock flakiness if needed; spec
// requires floating-point unix seconds.
var now = func() float64 { return float64(time.Now().UnixNano()) / 1e9 }

// guard implements the common type-guard rule (spec.md §4.2): lazily expire
// the key, then check its tag. If absent and autoCreate is true, a fresh
// Value of kind is installed. Returns the live Value, whether the key exists
// after the call (true for an auto-created Value), and any guard error.
func (s *Store) guard(key string, kind ValueKind, autoCreate bool) (Value, bool, *Error) {
	s.expireIfDue(key)

	v, ok := s.kv[key]
	if !ok {
		if autoCreate {
			v = emptyOf(kind)
			s.kv[key] = v
			return v, true, nil
		}
		return Value{}, false, nil
	}
	if v.Kind != kind {
		return Value{}, false, wrongType(key, kind.String())
	}
	return v, true, nil
}

func emptyOf(kind ValueKind) Value {
	switch kind {
	case KindHash:
		return newHash()
	case KindQueue:
		return newQueue()
	case KindSet:
		return newSet()
	default:
		return Value{Kind: KindKV}
	}
}

// expireIfDue removes key from kv/expiryMap if its deadline has passed.
func (s *Store) expireIfDue(key string) {
	deadline, expiring := s.expiryMap[key]
	if !expiring {
		return
	}
	if deadline < now() {
		delete(s.kv, key)
		delete(s.expiryMap, key)
	}
}

// sweepExpired pops the expiry heap while its top timestamp is due, deleting
// keys whose expiryMap entry still matches the popped timestamp. Stale
// entries (a later EXPIRE overwrote the deadline, or the key is gone) are
// discarded without effect. Returns the number of keys actually deleted.
func (s *Store) sweepExpired() int {
	t := now()
	removed := 0
	for s.expiry.Len() > 0 && s.expiry[0].deadline <= t {
		e := heap.Pop(&s.expiry).(expiryEntry)
		if cur, ok := s.expiryMap[e.key]; ok && cur == e.deadline {
			delete(s.kv, e.key)
			delete(s.expiryMap, e.key)
			removed++
		}
	}
	return removed
}

// Sweep runs an explicit expiry-heap sweep, returning the number of keys
// removed. The background scheduler calls this periodically; lazy
// expiration on guard already keeps touched keys correct in the meantime.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepExpired()
}

// Expire records ttl seconds from now as key's absolute deadline. A negative
// ttl yields an immediate expiry observable on the next guard.
func (s *Store) Expire(key string, ttlSeconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := now() + ttlSeconds
	s.expiryMap[key] = deadline
	heap.Push(&s.expiry, expiryEntry{deadline: deadline, key: key})
}

func (s *Store) clearExpiry(key string) {
	delete(s.expiryMap, key)
}

// Len returns the number of live keys (expiry not swept eagerly here, so an
// expired-but-untouched key may still count until its next guard/sweep).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.kv)
}

// Flush clears kv, expiry_map, and expiry_heap (the KV FLUSH command),
// returning the prior key count. The schedule is untouched.
func (s *Store) Flush() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.kv)
	s.kv = make(map[string]Value)
	s.expiryMap = make(map[string]float64)
	s.expiry = nil
	heap.Init(&s.expiry)
	return n
}

// FlushAll clears kv, expiry_map, expiry_heap, and the schedule (the
// top-level FLUSHALL command), returning the prior key count.
func (s *Store) FlushAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.kv)
	s.kv = make(map[string]Value)
	s.expiryMap = make(map[string]float64)
	s.expiry = nil
	heap.Init(&s.expiry)
	s.schedule = nil
	heap.Init(&s.schedule)
	return n
}

// Stats is a snapshot of the counters INFO reports.
type Stats struct {
	CommandsProcessed int64
	CommandErrors     int64
	ActiveConnections int64
	TotalConnections  int64
	Keys              int
	Timestamp         float64
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		CommandsProcessed: s.commandsProcessed,
		CommandErrors:     s.commandErrors,
		ActiveConnections: s.activeConns,
		TotalConnections:  s.totalConns,
		Keys:              len(s.kv),
		Timestamp:         now(),
	}
}

func (s *Store) RecordCommand(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commandsProcessed++
	if failed {
		s.commandErrors++
	}
}

func (s *Store) ConnectionOpened() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeConns++
	s.totalConns++
}

func (s *Store) ConnectionClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeConns--
}

// Lock/Unlock expose the store mutex outside the package. The snapshot
// package does not use them: Export, Restore and Merge each take the lock
// themselves.
func (s *Store) Lock()   { s.mu.Lock() }
func (s *Store) Unlock() { s.mu.Unlock() }

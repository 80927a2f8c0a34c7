// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

func newTestContext() *Context {
	return &Context{Store: store.New()}
}

func call(t *testing.T, r *Registry, ctx *Context, parts ...string) (wire.Frame, Signal) {
	t.Helper()
	elems := make([]wire.Frame, len(parts))
	for i, p := range parts {
		elems[i] = wire.Text(p)
	}
	return r.Dispatch(ctx, wire.Array(elems...))
}

func TestDispatchBadRequestOnNonCommandFrame(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	reply, sig := r.Dispatch(ctx, wire.Int(5))
	require.Equal(t, wire.TagError, reply.Tag)
	require.Equal(t, SignalNone, sig)
}

func TestDispatchUnknownCommand(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	reply, _ := call(t, r, ctx, "NOPE")
	require.Equal(t, wire.TagError, reply.Tag)
}

func TestDispatchSimpleTextIsSpaceSplit(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	reply, _ := r.Dispatch(ctx, wire.Simple("SET a 1"))
	require.Equal(t, wire.TagSimple, reply.Tag)
	require.Equal(t, "OK", reply.Text)

	get, _ := call(t, r, ctx, "GET", "a")
	require.Equal(t, "1", string(get.Bytes))
}

func TestDispatchPanicRecoveredAsInternal(t *testing.T) {
	r := NewRegistry()
	r.AddCommand("BOOM", func(*Context, []wire.Frame) (wire.Frame, Signal, error) {
		panic("kaboom")
	})
	ctx := newTestContext()
	reply, sig := call(t, r, ctx, "BOOM")
	require.Equal(t, wire.TagError, reply.Tag)
	require.Equal(t, SignalNone, sig)
}

func TestDispatchQuitAndShutdownSignals(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	_, sig := call(t, r, ctx, "QUIT")
	require.Equal(t, SignalQuit, sig)

	_, sig = call(t, r, ctx, "SHUTDOWN")
	require.Equal(t, SignalShutdown, sig)
}

func TestDispatchRecordsCounters(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	call(t, r, ctx, "SET", "a", "1")
	call(t, r, ctx, "NOPE")
	stats := ctx.Store.Stats()
	require.EqualValues(t, 2, stats.CommandsProcessed)
	require.EqualValues(t, 1, stats.CommandErrors)
}

func TestDispatchEmptyCommandArray(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	reply, _ := r.Dispatch(ctx, wire.Array())
	require.Equal(t, wire.TagError, reply.Tag)
}

func TestDispatchWrongTypeSurfacesAsError(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()
	call(t, r, ctx, "SET", "k", "abc")
	reply, _ := call(t, r, ctx, "INCR", "k")
	require.Equal(t, wire.TagError, reply.Tag)
}

// End-to-end walk covering the kind of session a client would run: set,
// read, hash, queue, set ops, and a final flush.
func TestDispatchEndToEndSession(t *testing.T) {
	r := NewRegistry()
	ctx := newTestContext()

	call(t, r, ctx, "SET", "greeting", "hello")
	get, _ := call(t, r, ctx, "GET", "greeting")
	require.Equal(t, "hello", string(get.Bytes))

	call(t, r, ctx, "HSET", "person", "name", "ada")
	hget, _ := call(t, r, ctx, "HGET", "person", "name")
	require.Equal(t, "ada", string(hget.Bytes))

	call(t, r, ctx, "RPUSH", "queue", "a")
	call(t, r, ctx, "RPUSH", "queue", "b")
	llen, _ := call(t, r, ctx, "LLEN", "queue")
	require.EqualValues(t, 2, llen.IntVal)

	call(t, r, ctx, "SADD", "set1", "x")
	call(t, r, ctx, "SADD", "set1", "x")
	scard, _ := call(t, r, ctx, "SCARD", "set1")
	require.EqualValues(t, 1, scard.IntVal, "expected dedup")

	flushed, _ := call(t, r, ctx, "FLUSHALL")
	require.EqualValues(t, 4, flushed.IntVal, "expected 4 keys flushed")

	info, _ := call(t, r, ctx, "INFO")
	require.Equal(t, wire.TagDict, info.Tag)
}

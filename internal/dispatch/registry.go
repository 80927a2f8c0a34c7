// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dispatch implements the command registry and request dispatch
// described by spec.md §4.9: a static name->handler map built at
// construction, with add_command as the one supported extension point.
package dispatch

import (
	"strings"

	"github.com/kvaultd/kvaultd/internal/snapshot"
	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

// Signal is a dispatcher return code for the two commands with
// control-flow meaning beyond a normal reply.
type Signal int

const (
	SignalNone Signal = iota
	SignalQuit
	SignalShutdown
)

// Context bundles everything a command handler needs: the shared store,
// the snapshot manager (nil-safe — SAVE/RESTORE/MERGE report Internal if
// unset), and the counters every request updates.
type Context struct {
	Store    *store.Store
	Snapshot *snapshot.Manager
}

// Handler implements one command. args excludes the command name itself.
type Handler func(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error)

// Registry is the static command table, matching spec.md §9's
// re-architecture note: replace dynamic dispatch-table construction with a
// registry indexed by command name mapping to strongly typed handlers.
type Registry struct {
	commands map[string]Handler
}

// NewRegistry builds the registry with every built-in command bound.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]Handler)}
	registerKVCommands(r)
	registerQueueCommands(r)
	registerHashCommands(r)
	registerSetCommands(r)
	registerScheduleCommands(r)
	registerMiscCommands(r)
	return r
}

// AddCommand registers name (case-insensitively) to handler, overwriting any
// existing binding. This is the spec's permitted extension point.
func (r *Registry) AddCommand(name string, handler Handler) {
	r.commands[strings.ToUpper(name)] = handler
}

func (r *Registry) lookup(name string) (Handler, bool) {
	h, ok := r.commands[strings.ToUpper(name)]
	return h, ok
}

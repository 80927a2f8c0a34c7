// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func registerMiscCommands(r *Registry) {
	r.AddCommand("FLUSHALL", cmdFlushAll)
	r.AddCommand("INFO", cmdInfo)
	r.AddCommand("QUIT", cmdQuit)
	r.AddCommand("SHUTDOWN", cmdShutdown)
	r.AddCommand("SAVE", cmdSave)
	r.AddCommand("RESTORE", cmdRestore)
	r.AddCommand("MERGE", cmdMerge)
}

func cmdFlushAll(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(int64(ctx.Store.FlushAll())), SignalNone, nil
}

func cmdInfo(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	stats := ctx.Store.Stats()
	pairs := []wire.Pair{
		{Key: wire.Text("commands_processed"), Value: wire.Int(stats.CommandsProcessed)},
		{Key: wire.Text("command_errors"), Value: wire.Int(stats.CommandErrors)},
		{Key: wire.Text("active_connections"), Value: wire.Int(stats.ActiveConnections)},
		{Key: wire.Text("connections"), Value: wire.Int(stats.TotalConnections)},
		{Key: wire.Text("keys"), Value: wire.Int(int64(stats.Keys))},
		{Key: wire.Text("timestamp"), Value: wire.Float(stats.Timestamp)},
	}
	return wire.Dict(pairs...), SignalNone, nil
}

func cmdQuit(_ *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(1), SignalQuit, nil
}

func cmdShutdown(_ *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(1), SignalShutdown, nil
}

func snapshotPath(args []wire.Frame, usage string) (string, error) {
	if len(args) < 1 {
		return "", badRequest("%s requires a path", usage)
	}
	path, ok := argText(args[0])
	if !ok {
		return "", badRequest("%s: path must be a string", usage)
	}
	return path, nil
}

func cmdSave(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	path, err := snapshotPath(args, "SAVE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	if ctx.Snapshot == nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: snapshotting is not configured")
	}
	if err := ctx.Snapshot.Save(path); err != nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: %v", err)
	}
	return wire.Simple("OK"), SignalNone, nil
}

func cmdRestore(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	path, err := snapshotPath(args, "RESTORE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	if ctx.Snapshot == nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: snapshotting is not configured")
	}
	found, rerr := ctx.Snapshot.Restore(path)
	if rerr != nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: %v", rerr)
	}
	return wire.Bool(found), SignalNone, nil
}

func cmdMerge(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	path, err := snapshotPath(args, "MERGE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	if ctx.Snapshot == nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: snapshotting is not configured")
	}
	found, merr := ctx.Snapshot.Merge(path)
	if merr != nil {
		return wire.Frame{}, SignalNone, fmt.Errorf("internal: %v", merr)
	}
	return wire.Bool(found), SignalNone, nil
}

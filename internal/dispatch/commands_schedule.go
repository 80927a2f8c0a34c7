// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import "github.com/kvaultd/kvaultd/internal/wire"

func registerScheduleCommands(r *Registry) {
	r.AddCommand("ADD", cmdScheduleAdd)
	r.AddCommand("READ", cmdScheduleRead)
	r.AddCommand("LENGTH_SCHEDULE", cmdScheduleLength)
	r.AddCommand("FLUSH_SCHEDULE", cmdScheduleFlush)
}

func cmdScheduleAdd(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, "ADD"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	ts, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("ADD: timestamp must be a string")
	}
	if serr := ctx.Store.ScheduleAdd(ts, args[1]); serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(1), SignalNone, nil
}

// cmdScheduleRead requires an explicit timestamp: unlike GET or HGET, there
// is no sensible "now" default at this layer, so a missing argument is a
// bad request rather than an implicit current-time read.
func cmdScheduleRead(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	ts, err := requireKey(args, "READ")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	due, serr := ctx.Store.ScheduleRead(ts)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(due...), SignalNone, nil
}

func cmdScheduleLength(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(int64(ctx.Store.ScheduleLength())), SignalNone, nil
}

func cmdScheduleFlush(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(int64(ctx.Store.ScheduleFlush())), SignalNone, nil
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import "github.com/kvaultd/kvaultd/internal/wire"

func registerQueueCommands(r *Registry) {
	r.AddCommand("LPUSH", cmdLPush)
	r.AddCommand("RPUSH", cmdRPush)
	r.AddCommand("LPOP", cmdLPop)
	r.AddCommand("RPOP", cmdRPop)
	r.AddCommand("LLEN", cmdLLen)
	r.AddCommand("LINDEX", cmdLIndex)
	r.AddCommand("LSET", cmdLSet)
	r.AddCommand("LRANGE", cmdLRange)
	r.AddCommand("LTRIM", cmdLTrim)
	r.AddCommand("LREM", cmdLRem)
	r.AddCommand("RPOPLPUSH", cmdRPopLPush)
	r.AddCommand("LFLUSH", cmdLFlush)
}

func cmdLPush(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "LPUSH")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.LPush(key, vals)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdRPush(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "RPUSH")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.RPush(key, vals)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdLPop(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "LPOP")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	f, serr := ctx.Store.LPop(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return f, SignalNone, nil
}

func cmdRPop(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "RPOP")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	f, serr := ctx.Store.RPop(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return f, SignalNone, nil
}

func cmdLLen(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "LLEN")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.LLen(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdLIndex(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, "LINDEX"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LINDEX: key must be a string")
	}
	i, ok := argInt(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LINDEX: index must be an integer")
	}
	f, serr := ctx.Store.LIndex(key, int(i))
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return f, SignalNone, nil
}

func cmdLSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "LSET"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LSET: key must be a string")
	}
	i, ok := argInt(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LSET: index must be an integer")
	}
	n, serr := ctx.Store.LSet(key, int(i), args[2])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdLRange(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if len(args) < 2 {
		return wire.Frame{}, SignalNone, badRequest("LRANGE requires a key and a start index")
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LRANGE: key must be a string")
	}
	start, ok := argInt(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LRANGE: start must be an integer")
	}
	var end int64
	endSet := len(args) >= 3
	if endSet {
		end, ok = argInt(args[2])
		if !ok {
			return wire.Frame{}, SignalNone, badRequest("LRANGE: end must be an integer")
		}
	}
	elems, serr := ctx.Store.LRange(key, int(start), int(end), endSet)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(elems...), SignalNone, nil
}

func cmdLTrim(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "LTRIM"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LTRIM: key must be a string")
	}
	start, ok := argInt(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LTRIM: start must be an integer")
	}
	stop, ok := argInt(args[2])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("LTRIM: stop must be an integer")
	}
	n, serr := ctx.Store.LTrim(key, int(start), int(stop))
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdLRem(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "LREM")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.LRem(key, vals[0])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdRPopLPush(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, "RPOPLPUSH"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	src, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("RPOPLPUSH: src must be a string")
	}
	dest, ok := argText(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("RPOPLPUSH: dest must be a string")
	}
	n, serr := ctx.Store.RPopLPush(src, dest)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdLFlush(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "LFLUSH")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.LFlush(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

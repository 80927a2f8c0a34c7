// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/kvaultd/kvaultd/internal/wire"
)

func registerKVCommands(r *Registry) {
	r.AddCommand("SET", cmdSet)
	r.AddCommand("SETNX", cmdSetNX)
	r.AddCommand("SETEX", cmdSetEX)
	r.AddCommand("GET", cmdGet)
	r.AddCommand("GETSET", cmdGetSet)
	r.AddCommand("POP", cmdPop)
	r.AddCommand("DELETE", cmdDelete)
	r.AddCommand("MDELETE", cmdMDelete)
	r.AddCommand("MGET", cmdMGet)
	r.AddCommand("MPOP", cmdMPop)
	r.AddCommand("MSET", cmdMSet)
	r.AddCommand("MSETEX", cmdMSetEX)
	r.AddCommand("APPEND", cmdAppend)
	r.AddCommand("INCR", cmdIncr)
	r.AddCommand("DECR", cmdDecr)
	r.AddCommand("INCRBY", cmdIncrBy)
	r.AddCommand("DECRBY", cmdDecrBy)
	r.AddCommand("LEN", cmdLen)
	r.AddCommand("FLUSH", cmdFlush)
	r.AddCommand("EXPIRE", cmdExpire)
	r.AddCommand("EXISTS", cmdExists)
}

func cmdSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "SET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	ctx.Store.Set(key, vals[0])
	return wire.Simple("OK"), SignalNone, nil
}

func cmdSetNX(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "SETNX")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Bool(ctx.Store.SetNX(key, vals[0])), SignalNone, nil
}

func cmdSetEX(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "SETEX"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("SETEX: key must be a string")
	}
	ttl, ok := argFloat(args[2])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("SETEX: ttl must be numeric")
	}
	ctx.Store.Set(key, args[1])
	ctx.Store.Expire(key, ttl)
	return wire.Simple("OK"), SignalNone, nil
}

func cmdGet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "GET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return ctx.Store.Get(key), SignalNone, nil
}

func cmdGetSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "GETSET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return ctx.Store.GetSet(key, vals[0]), SignalNone, nil
}

// cmdPop removes and returns a single key's value, null if absent/expired.
// Distinct from MPOP (many keys) and DELETE (boolean result, no value).
func cmdPop(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "POP")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return ctx.Store.Pop(key), SignalNone, nil
}

func cmdDelete(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "DELETE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Bool(ctx.Store.Delete(key)), SignalNone, nil
}

func cmdMDelete(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "MDELETE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Int(int64(ctx.Store.MDelete(keys))), SignalNone, nil
}

func cmdMGet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "MGET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Array(ctx.Store.MGet(keys)...), SignalNone, nil
}

func cmdMPop(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "MPOP")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Array(ctx.Store.MPop(keys)...), SignalNone, nil
}

// pairArgsAsDict interprets args as a single dict frame (MSET {k:v,...})
// or as a flat k,v,k,v... sequence, matching how either a bulk client
// library or the line-oriented test path would send it.
func pairArgsAsDict(args []wire.Frame, usage string) ([]wire.Pair, error) {
	if len(args) == 1 && args[0].Tag == wire.TagDict {
		return args[0].Pairs, nil
	}
	if len(args)%2 != 0 {
		return nil, badRequest("%s requires a dict or an even number of key/value arguments", usage)
	}
	pairs := make([]wire.Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		pairs = append(pairs, wire.Pair{Key: args[i], Value: args[i+1]})
	}
	return pairs, nil
}

func cmdMSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	pairs, err := pairArgsAsDict(args, "MSET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Int(int64(ctx.Store.MSet(pairs))), SignalNone, nil
}

func cmdMSetEX(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if len(args) < 2 {
		return wire.Frame{}, SignalNone, badRequest("MSETEX requires a dict and a ttl")
	}
	ttl, ok := argFloat(args[len(args)-1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("MSETEX: ttl must be numeric")
	}
	pairs, err := pairArgsAsDict(args[:len(args)-1], "MSETEX")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Int(int64(ctx.Store.MSetEX(pairs, ttl))), SignalNone, nil
}

func cmdAppend(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "APPEND")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	result, serr := ctx.Store.Append(key, vals[0])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return result, SignalNone, nil
}

func cmdIncr(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	return incrByN(ctx, args, "INCR", 1)
}

func cmdDecr(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	return incrByN(ctx, args, "DECR", -1)
}

func incrByN(ctx *Context, args []wire.Frame, usage string, delta int64) (wire.Frame, Signal, error) {
	key, err := requireKey(args, usage)
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	v, serr := ctx.Store.IncrBy(key, wire.Int(delta))
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return v, SignalNone, nil
}

func cmdIncrBy(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	return incrByArg(ctx, args, "INCRBY", 1)
}

func cmdDecrBy(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	return incrByArg(ctx, args, "DECRBY", -1)
}

func incrByArg(ctx *Context, args []wire.Frame, usage string, sign int64) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, usage); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("%s: key must be a string", usage)
	}
	amount := args[1]
	if amount.Tag != wire.TagNumber {
		return wire.Frame{}, SignalNone, badRequest("%s: amount must be numeric", usage)
	}
	if sign < 0 {
		amount = negateNumber(amount)
	}
	v, serr := ctx.Store.IncrBy(key, amount)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return v, SignalNone, nil
}

func negateNumber(f wire.Frame) wire.Frame {
	if f.IsFloat {
		return wire.Float(-f.FloatVal)
	}
	return wire.Int(-f.IntVal)
}

func cmdLen(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(int64(ctx.Store.Len())), SignalNone, nil
}

func cmdFlush(ctx *Context, _ []wire.Frame) (wire.Frame, Signal, error) {
	return wire.Int(int64(ctx.Store.Flush())), SignalNone, nil
}

func cmdExpire(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, "EXPIRE"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("EXPIRE: key must be a string")
	}
	ttl, ok := argFloat(args[1])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("EXPIRE: ttl must be numeric")
	}
	ctx.Store.Expire(key, ttl)
	return wire.Int(1), SignalNone, nil
}

func cmdExists(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "EXISTS")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	return wire.Bool(!ctx.Store.Get(key).IsNull()), SignalNone, nil
}

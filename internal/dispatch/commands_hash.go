// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import "github.com/kvaultd/kvaultd/internal/wire"

func registerHashCommands(r *Registry) {
	r.AddCommand("HSET", cmdHSet)
	r.AddCommand("HSETNX", cmdHSetNX)
	r.AddCommand("HMSET", cmdHMSet)
	r.AddCommand("HGET", cmdHGet)
	r.AddCommand("HMGET", cmdHMGet)
	r.AddCommand("HGETALL", cmdHGetAll)
	r.AddCommand("HKEYS", cmdHKeys)
	r.AddCommand("HVALS", cmdHVals)
	r.AddCommand("HLEN", cmdHLen)
	r.AddCommand("HEXISTS", cmdHExists)
	r.AddCommand("HDEL", cmdHDel)
	r.AddCommand("HINCRBY", cmdHIncrBy)
}

func hashKeyAndField(args []wire.Frame, usage string) (string, string, error) {
	if len(args) < 2 {
		return "", "", badRequest("%s requires a key and a field", usage)
	}
	key, ok := argText(args[0])
	if !ok {
		return "", "", badRequest("%s: key must be a string", usage)
	}
	field, ok := argText(args[1])
	if !ok {
		return "", "", badRequest("%s: field must be a string", usage)
	}
	return key, field, nil
}

func cmdHSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "HSET"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, field, err := hashKeyAndField(args, "HSET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.HSet(key, field, args[2])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdHSetNX(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "HSETNX"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, field, err := hashKeyAndField(args, "HSETNX")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.HSetNX(key, field, args[2])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdHMSet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if len(args) < 1 {
		return wire.Frame{}, SignalNone, badRequest("HMSET requires a key and a dict")
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("HMSET: key must be a string")
	}
	pairs, err := pairArgsAsDict(args[1:], "HMSET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.HMSet(key, pairs)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdHGet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, field, err := hashKeyAndField(args, "HGET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	f, serr := ctx.Store.HGet(key, field)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return f, SignalNone, nil
}

func cmdHMGet(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if len(args) < 2 {
		return wire.Frame{}, SignalNone, badRequest("HMGET requires a key and at least one field")
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("HMGET: key must be a string")
	}
	fields, err := requireKeys(args[1:], "HMGET")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	vals, serr := ctx.Store.HMGet(key, fields)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(vals...), SignalNone, nil
}

func cmdHGetAll(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "HGETALL")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	pairs, serr := ctx.Store.HGetAll(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Dict(pairs...), SignalNone, nil
}

func cmdHKeys(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "HKEYS")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	keys, serr := ctx.Store.HKeys(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	elems := make([]wire.Frame, len(keys))
	for i, k := range keys {
		elems[i] = wire.Text(k)
	}
	return wire.Array(elems...), SignalNone, nil
}

func cmdHVals(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "HVALS")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	vals, serr := ctx.Store.HVals(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(vals...), SignalNone, nil
}

func cmdHLen(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "HLEN")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.HLen(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdHExists(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, field, err := hashKeyAndField(args, "HEXISTS")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	ok, serr := ctx.Store.HExists(key, field)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Bool(ok), SignalNone, nil
}

func cmdHDel(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, field, err := hashKeyAndField(args, "HDEL")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.HDel(key, field)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdHIncrBy(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 3, "HINCRBY"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, field, err := hashKeyAndField(args, "HINCRBY")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	delta, ok := argInt(args[2])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("HINCRBY: amount must be an integer")
	}
	v, serr := ctx.Store.HIncrBy(key, field, delta)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return v, SignalNone, nil
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import "github.com/kvaultd/kvaultd/internal/wire"

func registerSetCommands(r *Registry) {
	r.AddCommand("SADD", cmdSAdd)
	r.AddCommand("SCARD", cmdSCard)
	r.AddCommand("SISMEMBER", cmdSIsMember)
	r.AddCommand("SMEMBERS", cmdSMembers)
	r.AddCommand("SPOP", cmdSPop)
	r.AddCommand("SREM", cmdSRem)
	r.AddCommand("SDIFF", cmdSDiff)
	r.AddCommand("SINTER", cmdSInter)
	r.AddCommand("SUNION", cmdSUnion)
	r.AddCommand("SDIFFSTORE", cmdSDiffStore)
	r.AddCommand("SINTERSTORE", cmdSInterStore)
	r.AddCommand("SUNIONSTORE", cmdSUnionStore)
}

func cmdSAdd(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "SADD")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SAdd(key, vals)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdSCard(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "SCARD")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SCard(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdSIsMember(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if err := requireArgs(args, 2, "SISMEMBER"); err != nil {
		return wire.Frame{}, SignalNone, err
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("SISMEMBER: key must be a string")
	}
	ok2, serr := ctx.Store.SIsMember(key, args[1])
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Bool(ok2), SignalNone, nil
}

func cmdSMembers(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, err := requireKey(args, "SMEMBERS")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	members, serr := ctx.Store.SMembers(key)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(members...), SignalNone, nil
}

func cmdSPop(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	if len(args) < 1 {
		return wire.Frame{}, SignalNone, badRequest("SPOP requires a key")
	}
	key, ok := argText(args[0])
	if !ok {
		return wire.Frame{}, SignalNone, badRequest("SPOP: key must be a string")
	}
	n := int64(1)
	if len(args) >= 2 {
		var okN bool
		n, okN = argInt(args[1])
		if !okN {
			return wire.Frame{}, SignalNone, badRequest("SPOP: count must be an integer")
		}
	}
	popped, serr := ctx.Store.SPop(key, int(n))
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(popped...), SignalNone, nil
}

func cmdSRem(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	key, vals, err := requireKeyAndValues(args, "SREM")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SRem(key, vals)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdSDiff(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "SDIFF")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	out, serr := ctx.Store.SDiff(keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(out...), SignalNone, nil
}

func cmdSInter(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "SINTER")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	out, serr := ctx.Store.SInter(keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(out...), SignalNone, nil
}

func cmdSUnion(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	keys, err := requireKeys(args, "SUNION")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	out, serr := ctx.Store.SUnion(keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Array(out...), SignalNone, nil
}

func setStoreArgs(args []wire.Frame, usage string) (string, []string, error) {
	if len(args) < 2 {
		return "", nil, badRequest("%s requires a destination and at least one source key", usage)
	}
	dest, ok := argText(args[0])
	if !ok {
		return "", nil, badRequest("%s: destination must be a string", usage)
	}
	keys, err := requireKeys(args[1:], usage)
	if err != nil {
		return "", nil, err
	}
	return dest, keys, nil
}

func cmdSDiffStore(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	dest, keys, err := setStoreArgs(args, "SDIFFSTORE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SDiffStore(dest, keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdSInterStore(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	dest, keys, err := setStoreArgs(args, "SINTERSTORE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SInterStore(dest, keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

func cmdSUnionStore(ctx *Context, args []wire.Frame) (wire.Frame, Signal, error) {
	dest, keys, err := setStoreArgs(args, "SUNIONSTORE")
	if err != nil {
		return wire.Frame{}, SignalNone, err
	}
	n, serr := ctx.Store.SUnionStore(dest, keys)
	if serr != nil {
		return wire.Frame{}, SignalNone, serr
	}
	return wire.Int(int64(n)), SignalNone, nil
}

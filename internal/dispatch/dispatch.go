// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

// Dispatch decodes one top-level frame into a command invocation and runs
// it, per spec.md §4.9:
//
//   - an array whose first element is a command name is the normal path;
//   - a simple-text frame is split on whitespace into an ad-hoc command
//     array, a convenience for line-oriented testing;
//   - the decoder's unknown-tag recovery token is UnknownCommand;
//   - anything else is BadRequest.
//
// It never panics: a handler panic is recovered and reported as Internal,
// matching spec.md §7's catch-all error category.
func (r *Registry) Dispatch(ctx *Context, frame wire.Frame) (reply wire.Frame, sig Signal) {
	defer func() {
		if rec := recover(); rec != nil {
			reply = wire.Errf("internal error: %v", rec)
			sig = SignalNone
		}
		ctx.Store.RecordCommand(reply.Tag == wire.TagError)
	}()

	if frame.Tag == wire.TagUnknown {
		return wire.Errf("unknown command %q", string(frame.Bytes)), SignalNone
	}
	args, ok := commandArray(frame)
	if !ok {
		return wire.Err("bad request: expected a command array"), SignalNone
	}
	if len(args) == 0 {
		return wire.Err("bad request: empty command"), SignalNone
	}

	name := frameCommandName(args[0])
	if name == "" {
		return wire.Err("bad request: command name must be a string"), SignalNone
	}

	handler, ok := r.lookup(name)
	if !ok {
		return wire.Errf("unknown command %q", name), SignalNone
	}

	reply, sig, err := handler(ctx, args[1:])
	if err != nil {
		return wire.Err(errorMessage(err)), SignalNone
	}
	return reply, sig
}

// commandArray extracts the raw argument frames from a top-level frame.
func commandArray(frame wire.Frame) ([]wire.Frame, bool) {
	switch frame.Tag {
	case wire.TagArray:
		return frame.Elems, true
	case wire.TagSimple:
		fields := strings.Fields(frame.Text)
		out := make([]wire.Frame, len(fields))
		for i, f := range fields {
			out[i] = wire.Text(f)
		}
		return out, true
	default:
		return nil, false
	}
}

func frameCommandName(f wire.Frame) string {
	switch f.Tag {
	case wire.TagBulk, wire.TagUnicode:
		return strings.ToUpper(string(f.Bytes))
	case wire.TagSimple:
		return strings.ToUpper(f.Text)
	default:
		return ""
	}
}

func errorMessage(err error) string {
	if se, ok := err.(*store.Error); ok {
		return fmt.Sprintf("%s: %s", se.Kind, se.Message)
	}
	return err.Error()
}

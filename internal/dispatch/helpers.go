// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"fmt"
	"strconv"

	"github.com/kvaultd/kvaultd/internal/wire"
)

func badRequest(format string, args ...any) error {
	return fmt.Errorf("bad request: "+format, args...)
}

// argText extracts a command argument as a Go string: bulk/unicode bytes,
// or a simple frame's text, or the error message text for "-" frames.
func argText(f wire.Frame) (string, bool) {
	switch f.Tag {
	case wire.TagBulk, wire.TagUnicode:
		return string(f.Bytes), true
	case wire.TagSimple, wire.TagError:
		return f.Text, true
	default:
		return "", false
	}
}

func argInt(f wire.Frame) (int64, bool) {
	if f.Tag == wire.TagNumber && !f.IsFloat {
		return f.IntVal, true
	}
	if s, ok := argText(f); ok {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func argFloat(f wire.Frame) (float64, bool) {
	switch {
	case f.Tag == wire.TagNumber && f.IsFloat:
		return f.FloatVal, true
	case f.Tag == wire.TagNumber:
		return float64(f.IntVal), true
	}
	if s, ok := argText(f); ok {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func requireArgs(args []wire.Frame, n int, usage string) error {
	if len(args) < n {
		return badRequest("%s requires %d argument(s)", usage, n)
	}
	return nil
}

func requireKeyAndValues(args []wire.Frame, usage string) (string, []wire.Frame, error) {
	if len(args) < 2 {
		return "", nil, badRequest("%s requires a key and at least one value", usage)
	}
	key, ok := argText(args[0])
	if !ok {
		return "", nil, badRequest("%s: key must be a string", usage)
	}
	return key, args[1:], nil
}

func requireKey(args []wire.Frame, usage string) (string, error) {
	if len(args) < 1 {
		return "", badRequest("%s requires a key", usage)
	}
	key, ok := argText(args[0])
	if !ok {
		return "", badRequest("%s: key must be a string", usage)
	}
	return key, nil
}

func requireKeys(args []wire.Frame, usage string) ([]string, error) {
	if len(args) < 1 {
		return nil, badRequest("%s requires at least one key", usage)
	}
	out := make([]string, len(args))
	for i, a := range args {
		s, ok := argText(a)
		if !ok {
			return nil, badRequest("%s: key must be a string", usage)
		}
		out[i] = s
	}
	return out, nil
}

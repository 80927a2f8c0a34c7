// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"

	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

// toFrame turns a store.Snapshot into the single top-level dict frame that
// gets serialized: {"kv": {key: value-frame, ...}, "schedule": [[ts,
// payload], ...]}. Using the same wire.Frame machinery as the client
// protocol gives an automatic round trip of every Value tag for free.
func toFrame(snap store.Snapshot) wire.Frame {
	kvPairs := make([]wire.Pair, 0, len(snap.KV))
	for k, v := range snap.KV {
		kvPairs = append(kvPairs, wire.Pair{Key: wire.Text(k), Value: valueToFrame(v)})
	}
	schedElems := make([]wire.Frame, len(snap.Schedule))
	for i, item := range snap.Schedule {
		schedElems[i] = wire.Array(wire.Float(item.Timestamp), item.Payload)
	}
	return wire.Dict(
		wire.Pair{Key: wire.Simple("kv"), Value: wire.Dict(kvPairs...)},
		wire.Pair{Key: wire.Simple("schedule"), Value: wire.Array(schedElems...)},
	)
}

func valueToFrame(v store.Value) wire.Frame {
	switch v.Kind {
	case store.KindQueue:
		return wire.Array(v.Queue...)
	case store.KindHash:
		return wire.Dict(v.HashPairs()...)
	case store.KindSet:
		return wire.SetFrame(v.Set...)
	default:
		return v.Scalar
	}
}

// fromFrame is toFrame's inverse.
func fromFrame(f wire.Frame) (store.Snapshot, error) {
	if f.Tag != wire.TagDict {
		return store.Snapshot{}, fmt.Errorf("snapshot: top-level frame is not a dict")
	}
	var kvFrame, schedFrame *wire.Frame
	for i := range f.Pairs {
		switch f.Pairs[i].Key.Text {
		case "kv":
			kvFrame = &f.Pairs[i].Value
		case "schedule":
			schedFrame = &f.Pairs[i].Value
		}
	}
	if kvFrame == nil || schedFrame == nil {
		return store.Snapshot{}, fmt.Errorf("snapshot: missing kv or schedule section")
	}

	kv := make(map[string]store.Value, len(kvFrame.Pairs))
	for _, p := range kvFrame.Pairs {
		kv[frameKeyText(p.Key)] = frameToValue(p.Value)
	}

	schedule := make([]store.ScheduleItem, len(schedFrame.Elems))
	for i, el := range schedFrame.Elems {
		if len(el.Elems) != 2 {
			return store.Snapshot{}, fmt.Errorf("snapshot: malformed schedule entry %d", i)
		}
		schedule[i] = store.ScheduleItem{
			Timestamp: numberAsFloat(el.Elems[0]),
			Payload:   el.Elems[1],
		}
	}

	return store.Snapshot{KV: kv, Schedule: schedule}, nil
}

func frameToValue(f wire.Frame) store.Value {
	switch f.Tag {
	case wire.TagArray:
		return store.NewQueueValue(f.Elems)
	case wire.TagDict:
		return store.NewHashValue(f.Pairs)
	case wire.TagSet:
		return store.NewSetValue(f.Elems)
	default:
		return store.NewScalarValue(f)
	}
}

func frameKeyText(f wire.Frame) string {
	switch f.Tag {
	case wire.TagSimple, wire.TagError:
		return f.Text
	case wire.TagBulk, wire.TagUnicode:
		return string(f.Bytes)
	default:
		return string(wire.EncodeBytes(f))
	}
}

func numberAsFloat(f wire.Frame) float64 {
	if f.IsFloat {
		return f.FloatVal
	}
	return float64(f.IntVal)
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"fmt"

	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

// magicWire prefixes a snapshot file encoded with the default wire codec.
// RESTORE/MERGE sniff this header to pick a decoder regardless of the
// server's current Keys.Snapshot.Format, so a format change never strands
// an existing snapshot file.
var magicWire = []byte("KVW1")

func encodeWire(snap store.Snapshot) []byte {
	var buf bytes.Buffer
	buf.Write(magicWire)
	_ = wire.Encode(&buf, toFrame(snap))
	return buf.Bytes()
}

func decodeWire(data []byte) (store.Snapshot, error) {
	body := bytes.NewReader(data[len(magicWire):])
	f, err := wire.NewDecoder(body).Decode()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("snapshot: decode wire frame: %w", err)
	}
	return fromFrame(f)
}

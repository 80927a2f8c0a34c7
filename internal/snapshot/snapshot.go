// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"fmt"

	"github.com/kvaultd/kvaultd/internal/store"
)

// Format selects the on-disk snapshot encoding.
type Format string

const (
	FormatWire Format = "wire"
	FormatAvro Format = "avro"
)

// Manager owns the store and target a SAVE/RESTORE/MERGE command operates
// against, mirroring the teacher's Checkpointing() worker shape in
// pkg/metricstore/checkpoint.go.
type Manager struct {
	Store  *store.Store
	Target Target
	Format Format
}

func NewManager(s *store.Store, target Target, format Format) *Manager {
	if format == "" {
		format = FormatWire
	}
	return &Manager{Store: s, Target: target, Format: format}
}

// Save writes the store's current kv space and schedule to path in the
// manager's configured format.
func (m *Manager) Save(path string) error {
	snap := m.Store.Export()
	var data []byte
	switch m.Format {
	case FormatAvro:
		var err error
		data, err = encodeAvro(snap)
		if err != nil {
			return err
		}
	default:
		data = encodeWire(snap)
	}
	return m.Target.WriteFile(path, data)
}

// Restore replaces the store's kv space and schedule from path, returning
// true on success and false if the file does not exist. The format is
// auto-detected from the file's magic header, independent of the manager's
// configured write format.
func (m *Manager) Restore(path string) (bool, error) {
	snap, found, err := m.load(path)
	if err != nil || !found {
		return found, err
	}
	m.Store.Restore(snap)
	return true, nil
}

// Merge loads path and overlays it onto the live store: existing keys win,
// the schedule is replaced wholesale. Returns false if the file does not
// exist.
func (m *Manager) Merge(path string) (bool, error) {
	snap, found, err := m.load(path)
	if err != nil || !found {
		return found, err
	}
	m.Store.Merge(snap)
	return true, nil
}

func (m *Manager) load(path string) (store.Snapshot, bool, error) {
	exists, err := m.Target.Exists(path)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	if !exists {
		return store.Snapshot{}, false, nil
	}
	data, err := m.Target.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	snap, err := decode(data)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

func decode(data []byte) (store.Snapshot, error) {
	switch {
	case bytes.HasPrefix(data, magicWire):
		return decodeWire(data)
	case bytes.HasPrefix(data, magicAvro):
		return decodeAvro(data)
	default:
		return store.Snapshot{}, fmt.Errorf("snapshot: unrecognized file header")
	}
}

// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func resetKeys() {
	Keys = ProgramConfig{
		Addr:                  "127.0.0.1:31337",
		MaxClients:            1024,
		MetricsAddr:           "127.0.0.1:9331",
		ScheduleSweepInterval: "1s",
		LogLevel:              "info",
		Snapshot: SnapshotConfig{
			RootDir: "./var",
			Format:  "wire",
		},
	}
}

func TestInitMissingFileKeepsDefaults(t *testing.T) {
	resetKeys()
	err := Init(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:31337", Keys.Addr)
}

func TestInitDecodesAndValidates(t *testing.T) {
	resetKeys()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"addr": "0.0.0.0:7000",
		"max-clients": 64,
		"log-level": "debug",
		"snapshot": {"format": "avro"}
	}`), 0o644))

	require.NoError(t, Init(path))
	require.Equal(t, "0.0.0.0:7000", Keys.Addr)
	require.Equal(t, 64, Keys.MaxClients)
	require.Equal(t, "debug", Keys.LogLevel)
	require.Equal(t, "avro", Keys.Snapshot.Format)
}

func TestInitRejectsInvalidEnum(t *testing.T) {
	resetKeys()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log-level": "extremely-loud"}`), 0o644))

	err := Init(path)
	require.Error(t, err)
}

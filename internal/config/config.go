// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads and validates kvaultd's on-disk JSON configuration,
// mirroring the teacher's internal/config package: a package-level Keys
// value seeded with defaults, overwritten by Init from a config file that is
// schema-validated before being decoded.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SnapshotConfig configures the periodic checkpoint job and the encoding and
// target snapshots are written to.
type SnapshotConfig struct {
	// RootDir is used to resolve a bare filename passed to the periodic
	// checkpoint job; explicit SAVE/RESTORE/MERGE paths from clients are
	// used verbatim.
	RootDir string `json:"root-dir"`
	// Interval is a time.ParseDuration string; empty disables periodic
	// checkpointing.
	Interval string `json:"interval"`
	// Format selects the on-disk encoding: "wire" (default) or "avro".
	Format string `json:"format"`

	S3 S3Config `json:"s3"`
}

// S3Config configures the S3-compatible target used for s3:// snapshot
// paths, mirroring the teacher's pkg/archive S3 target fields.
type S3Config struct {
	Endpoint     string `json:"endpoint"`
	AccessKey    string `json:"access-key"`
	SecretKey    string `json:"secret-key"`
	Region       string `json:"region"`
	UsePathStyle bool   `json:"use-path-style"`
}

// ProgramConfig is the top-level shape of config.json.
type ProgramConfig struct {
	// Addr is the host:port the TCP wire server listens on.
	Addr string `json:"addr"`
	// MaxClients bounds concurrent connection workers.
	MaxClients int `json:"max-clients"`
	// MetricsAddr is the host:port the Prometheus/healthz HTTP endpoint
	// listens on. Empty disables the HTTP endpoint.
	MetricsAddr string `json:"metrics-addr"`
	// ScheduleSweepInterval is a time.ParseDuration string for the
	// background expiry-heap sweep job.
	ScheduleSweepInterval string `json:"schedule-sweep-interval"`
	// LogLevel is one of debug/info/warn/err/crit.
	LogLevel string `json:"log-level"`
	// LogDate adds date/time to log lines when true.
	LogDate bool `json:"log-date"`

	Snapshot SnapshotConfig `json:"snapshot"`
}

// Keys holds the active configuration, seeded with the same defaults the
// spec names in §6: host 127.0.0.1, port 31337, max_clients 1024.
var Keys = ProgramConfig{
	Addr:                  "127.0.0.1:31337",
	MaxClients:            1024,
	MetricsAddr:           "127.0.0.1:9331",
	ScheduleSweepInterval: "1s",
	LogLevel:              "info",
	LogDate:               false,
	Snapshot: SnapshotConfig{
		RootDir: "./var",
		Interval: "",
		Format:   "wire",
	},
}

// Init reads path, validates it against Schema, and decodes it over Keys'
// defaults. A missing file is not an error: the defaults above stand alone,
// mirroring the teacher's config.Init treatment of a missing config.json.
func Init(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := validate(raw); err != nil {
		return fmt.Errorf("config: validate %q: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		return fmt.Errorf("config: decode %q: %w", path, err)
	}
	return nil
}

// validate mirrors the teacher's pkg/archive/pkg/schema Validate helpers:
// compile the inline JSON-Schema string and check instance against it,
// returning the validation error (nothing is logged for an invalid instance).
func validate(instance []byte) error {
	sch, err := jsonschema.CompileString("kvaultd-config.json", Schema)
	if err != nil {
		cclog.Fatalf("config: invalid embedded schema: %#v", err)
	}

	var v any
	if err := json.Unmarshal(instance, &v); err != nil {
		return err
	}
	return sch.Validate(v)
}

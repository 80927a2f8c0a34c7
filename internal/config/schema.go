// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

// Schema is the inline JSON-Schema document config.json is validated
// against before being decoded, following the same embedded-string pattern
// as the teacher's pkg/archive configSchema.
const Schema = `
{
  "type": "object",
  "properties": {
    "addr": {
      "description": "host:port the TCP wire server listens on",
      "type": "string"
    },
    "max-clients": {
      "description": "Maximum number of concurrent connection workers",
      "type": "integer"
    },
    "metrics-addr": {
      "description": "host:port for the Prometheus/healthz HTTP endpoint, empty disables it",
      "type": "string"
    },
    "schedule-sweep-interval": {
      "description": "time.ParseDuration string for the background expiry sweep",
      "type": "string"
    },
    "log-level": {
      "description": "Logging verbosity",
      "type": "string",
      "enum": ["debug", "info", "warn", "err", "crit"]
    },
    "log-date": {
      "description": "Add date/time to log output",
      "type": "boolean"
    },
    "snapshot": {
      "description": "Periodic checkpoint configuration",
      "type": "object",
      "properties": {
        "root-dir": {
          "description": "Base directory for the periodic checkpoint file",
          "type": "string"
        },
        "interval": {
          "description": "time.ParseDuration string; empty disables periodic checkpointing",
          "type": "string"
        },
        "format": {
          "description": "On-disk snapshot encoding",
          "type": "string",
          "enum": ["wire", "avro"]
        },
        "s3": {
          "description": "S3-compatible target used for s3:// snapshot paths",
          "type": "object",
          "properties": {
            "endpoint": { "type": "string" },
            "access-key": { "type": "string" },
            "secret-key": { "type": "string" },
            "region": { "type": "string" },
            "use-path-style": { "type": "boolean" }
          }
        }
      }
    }
  }
}`

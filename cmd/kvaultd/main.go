// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// kvaultd is the process entry point (the "out-of-scope collaborator" named
// in spec.md §1): flag parsing, logging setup, and wiring the store,
// dispatcher, snapshot manager and connection server together. It carries
// no command semantics of its own.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/google/gops/agent"

	"github.com/kvaultd/kvaultd/internal/config"
	"github.com/kvaultd/kvaultd/internal/dispatch"
	"github.com/kvaultd/kvaultd/internal/server"
	"github.com/kvaultd/kvaultd/internal/snapshot"
	"github.com/kvaultd/kvaultd/internal/store"
)

var (
	version = "development"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cliInit()

	if flagVersion {
		fmt.Printf("kvaultd version %s, commit %s, built on %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := config.Init(flagConfigFile); err != nil {
		cclog.Fatalf("loading config failed: %s", err.Error())
	}
	if flagLogLevel != "" {
		config.Keys.LogLevel = flagLogLevel
	}
	if flagLogDateTime {
		config.Keys.LogDate = true
	}
	cclog.Init(config.Keys.LogLevel, config.Keys.LogDate)

	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			cclog.Errorf("gops agent failed to start: %s", err.Error())
		}
	}

	st := store.New()
	registry := dispatch.NewRegistry()

	target := snapshot.DynamicTarget{S3Config: snapshot.S3TargetConfig{
		Endpoint:     config.Keys.Snapshot.S3.Endpoint,
		AccessKey:    config.Keys.Snapshot.S3.AccessKey,
		SecretKey:    config.Keys.Snapshot.S3.SecretKey,
		Region:       config.Keys.Snapshot.S3.Region,
		UsePathStyle: config.Keys.Snapshot.S3.UsePathStyle,
	}}
	snapMgr := snapshot.NewManager(st, target, snapshot.Format(config.Keys.Snapshot.Format))

	sweepEvery, err := time.ParseDuration(config.Keys.ScheduleSweepInterval)
	if err != nil || sweepEvery <= 0 {
		sweepEvery = time.Second
	}
	checkpointEvery, _ := time.ParseDuration(config.Keys.Snapshot.Interval)

	srv := server.New(server.Config{
		Addr:                  config.Keys.Addr,
		MaxClients:            config.Keys.MaxClients,
		MetricsAddr:           config.Keys.MetricsAddr,
		ScheduleSweepInterval: sweepEvery,
		CheckpointInterval:    checkpointEvery,
		CheckpointPath:        filepath.Join(config.Keys.Snapshot.RootDir, "checkpoint.snap"),
	}, st, registry, snapMgr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cclog.Info("received shutdown signal, stopping kvaultd")
		srv.Shutdown()
	}()

	cclog.Infof("kvaultd %s starting", version)
	if err := srv.ListenAndServe(); err != nil {
		cclog.Fatalf("server exited: %s", err.Error())
	}
	cclog.Info("kvaultd stopped")
}

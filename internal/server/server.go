// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server implements the connection server described by spec.md
// §4.10/§5: a bounded-concurrency TCP listener that runs one worker per
// connection through Codec.read -> Dispatcher -> Codec.write, plus the
// ambient background jobs (expiry sweep, periodic snapshot checkpoint) and
// a small auxiliary HTTP surface for metrics/health, grounded on the
// teacher's internal/taskmanager scheduling and gorilla/mux routing habits.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/go-co-op/gocron/v2"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/semaphore"

	"github.com/kvaultd/kvaultd/internal/dispatch"
	"github.com/kvaultd/kvaultd/internal/snapshot"
	"github.com/kvaultd/kvaultd/internal/store"
)

// Config bundles the values Server needs from internal/config, kept
// decoupled from that package so server can be unit tested without JSON.
type Config struct {
	Addr                  string
	MaxClients            int
	MetricsAddr           string
	ScheduleSweepInterval time.Duration
	CheckpointInterval    time.Duration
	CheckpointPath        string
}

// Server owns the shared store, the command registry, and everything
// needed to accept and bound client connections.
type Server struct {
	cfg      Config
	store    *store.Store
	registry *dispatch.Registry
	snap     *snapshot.Manager
	sem      *semaphore.Weighted

	listener net.Listener
	sched    gocron.Scheduler
	httpSrv  *http.Server
	metrics  *metrics
	promReg  *prometheus.Registry

	shutdown chan struct{}
	ready    chan struct{}
}

// New wires a Server from its collaborators. snap may be nil, in which case
// SAVE/RESTORE/MERGE report an Internal error and no checkpoint job runs.
func New(cfg Config, s *store.Store, registry *dispatch.Registry, snap *snapshot.Manager) *Server {
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 1024
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		cfg:      cfg,
		store:    s,
		registry: registry,
		snap:     snap,
		sem:      semaphore.NewWeighted(int64(cfg.MaxClients)),
		metrics:  newMetrics(reg),
		promReg:  reg,
		shutdown: make(chan struct{}),
		ready:    make(chan struct{}),
	}
}

// Ready returns a channel closed once the TCP listener is bound and Addr is
// safe to call from another goroutine.
func (srv *Server) Ready() <-chan struct{} { return srv.ready }

// ListenAndServe binds the TCP listener, starts the background jobs and the
// auxiliary HTTP endpoint, and blocks accepting connections until Shutdown
// is called or the listener errors.
func (srv *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", srv.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", srv.cfg.Addr, err)
	}
	srv.listener = ln
	close(srv.ready)
	cclog.Infof("kvaultd listening on %s", srv.cfg.Addr)

	if err := srv.startBackgroundJobs(); err != nil {
		return err
	}
	srv.startHTTP()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-srv.shutdown:
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			cclog.Warnf("accept failed: %v", err)
			continue
		}
		go srv.serveConn(conn)
	}
}

// Addr returns the address the listener is bound to, useful when Config.Addr
// used port 0 and the caller needs the chosen port (tests, ephemeral runs).
func (srv *Server) Addr() net.Addr {
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

// Shutdown implements the SHUTDOWN command's effect (spec.md §4.9/§4.10):
// stop accepting connections, stop background jobs, and join the HTTP
// endpoint. Connection workers that are already running are neither closed
// nor waited for: each keeps serving its connection until the client
// disconnects, sends QUIT or SHUTDOWN, or a protocol error ends it.
func (srv *Server) Shutdown() {
	close(srv.shutdown)
	if srv.listener != nil {
		srv.listener.Close()
	}
	if srv.sched != nil {
		srv.sched.Shutdown()
	}
	if srv.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.httpSrv.Shutdown(ctx)
	}
}

// startBackgroundJobs registers the expiry sweep and, if configured, the
// periodic snapshot checkpoint, exactly as taskmanager.Start registers its
// workers on one gocron.Scheduler.
func (srv *Server) startBackgroundJobs() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("server: create scheduler: %w", err)
	}
	srv.sched = s

	sweepEvery := srv.cfg.ScheduleSweepInterval
	if sweepEvery <= 0 {
		sweepEvery = time.Second
	}
	if _, err := s.NewJob(
		gocron.DurationJob(sweepEvery),
		gocron.NewTask(func() {
			if n := srv.store.Sweep(); n > 0 {
				cclog.Debugf("expiry sweep removed %d keys", n)
			}
		}),
	); err != nil {
		return fmt.Errorf("server: register sweep job: %w", err)
	}

	if srv.snap != nil && srv.cfg.CheckpointInterval > 0 && srv.cfg.CheckpointPath != "" {
		if _, err := s.NewJob(
			gocron.DurationJob(srv.cfg.CheckpointInterval),
			gocron.NewTask(func() {
				if err := srv.snap.Save(srv.cfg.CheckpointPath); err != nil {
					cclog.Errorf("periodic checkpoint failed: %v", err)
				} else {
					cclog.Debugf("periodic checkpoint written to %s", srv.cfg.CheckpointPath)
				}
			}),
		); err != nil {
			return fmt.Errorf("server: register checkpoint job: %w", err)
		}
	}

	s.Start()
	return nil
}

// startHTTP exposes /metrics (Prometheus) and /healthz on a small auxiliary
// router, mirroring the teacher's use of mux.Router for a secondary HTTP
// surface alongside the primary protocol.
func (srv *Server) startHTTP() {
	if srv.cfg.MetricsAddr == "" {
		return
	}
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(srv.promReg, promhttp.HandlerOpts{}))
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv.httpSrv = &http.Server{Addr: srv.cfg.MetricsAddr, Handler: r}
	go func() {
		if err := srv.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			cclog.Errorf("metrics http server failed: %v", err)
		}
	}()
	cclog.Infof("metrics/healthz listening on %s", srv.cfg.MetricsAddr)
}

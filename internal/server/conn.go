// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"context"
	"errors"
	"io"
	"net"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"

	"github.com/kvaultd/kvaultd/internal/dispatch"
	"github.com/kvaultd/kvaultd/internal/wire"
)

// serveConn is the per-connection worker: acquire a pool slot, then loop
// Codec.read -> Dispatcher -> Codec.write until EOF, QUIT, an unrecoverable
// protocol error, or a SHUTDOWN sent on this connection; a Shutdown started
// elsewhere does not end it. Exactly one worker runs per
// connection and commands on that connection are processed strictly in
// arrival order (spec.md §5), since nothing else touches this net.Conn.
func (srv *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	if err := srv.sem.Acquire(context.Background(), 1); err != nil {
		return
	}
	defer srv.sem.Release(1)

	srv.store.ConnectionOpened()
	srv.metrics.totalConnections.Inc()
	defer srv.store.ConnectionClosed()

	dec := wire.NewDecoder(conn)
	ctx := &dispatch.Context{Store: srv.store, Snapshot: srv.snap}

	for {
		frame, err := dec.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var perr *wire.ProtocolError
			if errors.As(err, &perr) {
				wire.Encode(conn, wire.Errf("protocol error: %v", perr))
				cclog.Debugf("connection %s: protocol error: %v", conn.RemoteAddr(), perr)
				return
			}
			cclog.Warnf("connection %s: read failed: %v", conn.RemoteAddr(), err)
			return
		}

		reply, sig := srv.registry.Dispatch(ctx, frame)
		srv.metrics.commandsProcessed.Inc()
		if reply.Tag == wire.TagError {
			srv.metrics.commandErrors.Inc()
		}
		stats := srv.store.Stats()
		srv.metrics.sample(stats.ActiveConnections, stats.Keys)

		if err := wire.Encode(conn, reply); err != nil {
			cclog.Debugf("connection %s: write failed: %v", conn.RemoteAddr(), err)
			return
		}

		switch sig {
		case dispatch.SignalQuit:
			return
		case dispatch.SignalShutdown:
			go srv.Shutdown()
			return
		}
	}
}

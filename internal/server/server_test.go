// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kvaultd/kvaultd/internal/dispatch"
	"github.com/kvaultd/kvaultd/internal/store"
	"github.com/kvaultd/kvaultd/internal/wire"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	srv := New(Config{
		Addr:                  "127.0.0.1:0",
		MaxClients:            4,
		ScheduleSweepInterval: 50 * time.Millisecond,
	}, store.New(), dispatch.NewRegistry(), nil)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			t.Logf("ListenAndServe: %v", err)
		}
	}()
	select {
	case <-srv.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not become ready")
	}
	t.Cleanup(srv.Shutdown)
	return srv
}

func TestServerServesOneCommandRoundTrip(t *testing.T) {
	srv := startTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wire.Encode(conn, wire.Array(wire.Text("SET"), wire.Text("k"), wire.Text("v"))))
	reply, err := wire.NewDecoder(conn).Decode()
	require.NoError(t, err)
	require.Equal(t, wire.TagSimple, reply.Tag)
	require.Equal(t, "OK", reply.Text)

	require.NoError(t, wire.Encode(conn, wire.Array(wire.Text("GET"), wire.Text("k"))))
	reply, err = wire.NewDecoder(conn).Decode()
	require.NoError(t, err)
	require.Equal(t, "v", string(reply.Bytes))
}

func TestServerQuitClosesConnection(t *testing.T) {
	srv := startTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, wire.Encode(conn, wire.Array(wire.Text("QUIT"))))
	dec := wire.NewDecoder(conn)
	reply, err := dec.Decode()
	require.NoError(t, err)
	require.EqualValues(t, 1, reply.IntVal)

	_, err = dec.Decode()
	require.Error(t, err, "expected EOF after QUIT")
}

func TestServerBoundedConcurrency(t *testing.T) {
	srv := startTestServer(t)

	conns := make([]net.Conn, 0, 4)
	for i := 0; i < 4; i++ {
		c, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		conns = append(conns, c)
	}
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()

	for _, c := range conns {
		require.NoError(t, wire.Encode(c, wire.Array(wire.Text("INFO"))))
		reply, err := wire.NewDecoder(c).Decode()
		require.NoError(t, err)
		require.Equal(t, wire.TagDict, reply.Tag)
	}
}

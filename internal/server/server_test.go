package server

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coldb/internal/pool"
	"coldb/internal/wire"
)

func startTestServer(t *testing.T) (socketPath string, dataDir string, resources *pool.ResourcePool) {
	t.Helper()
	dir := t.TempDir()
	socketPath = filepath.Join(dir, "coldb.sock")
	dataDir = filepath.Join(dir, "data")
	resources = pool.NewResourcePool()

	srv, err := New(socketPath, dataDir, resources, zap.NewNop())
	require.NoError(t, err)

	go srv.Serve()
	t.Cleanup(func() { srv.Close() })

	require.Eventually(t, func() bool {
		conn, err := net.Dial("unix", socketPath)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	return socketPath, dataDir, resources
}

func sendCommand(t *testing.T, conn net.Conn, cmd string) wire.Frame {
	t.Helper()
	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: cmd}))
	reply, err := wire.ReadFrame(conn)
	require.NoError(t, err)
	return reply
}

func TestServerHandlesCreateInsertSelectFetch(t *testing.T) {
	socketPath, _, _ := startTestServer(t)
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(db,"d")`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(tbl,"d.t",d,2)`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(col,"d.t.a",d.t,sorted)`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(col,"d.t.b",d.t,unsorted)`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `relational_insert(d.t,3,30)`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `relational_insert(d.t,1,10)`).Status)

	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `pos=select(d.t.a,null,3)`).Status)
	assert.Equal(t, wire.StatusOK, sendCommand(t, conn, `vals=fetch(d.t.b,pos)`).Status)
}

func TestServerReportsUnrecognizedCommandAsError(t *testing.T) {
	socketPath, _, _ := startTestServer(t)
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	reply := sendCommand(t, conn, `garbage(1,2)`)
	assert.Equal(t, wire.StatusError, reply.Status)
	assert.NotEmpty(t, reply.Payload)
}

func TestServerShutdownStopsAcceptLoop(t *testing.T) {
	socketPath, _, _ := startTestServer(t)
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	reply := sendCommand(t, conn, `shutdown()`)
	assert.Equal(t, wire.ShutdownPayload, reply.Payload)

	require.Eventually(t, func() bool {
		_, err := net.Dial("unix", socketPath)
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestServerHandlesPrintThroughSocket(t *testing.T) {
	socketPath, _, _ := startTestServer(t)
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(db,"d")`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(tbl,"d.t",d,1)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(col,"d.t.a",d.t,unsorted)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `relational_insert(d.t,7)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `relational_insert(d.t,9)`).Status)

	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `all=select(d.t.a,null,null)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `vals=fetch(d.t.a,all)`).Status)

	reply := sendCommand(t, conn, `tuple(vals)`)
	require.Equal(t, wire.StatusOK, reply.Status)
	assert.Equal(t, "7\n9\n", reply.Payload)

	// A later command on the same connection still gets exactly one clean
	// frame back, proving the print output never leaked onto the wire
	// outside its own framed reply.
	next := sendCommand(t, conn, `relational_insert(d.t,11)`)
	assert.Equal(t, wire.StatusOK, next.Status)
	assert.Empty(t, next.Payload)
}

func TestServerLoadMiniProtocol(t *testing.T) {
	socketPath, _, _ := startTestServer(t)
	conn, err := net.Dial("unix", socketPath)
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(db,"d")`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(tbl,"d.t",d,2)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(col,"d.t.a",d.t,sorted)`).Status)
	require.Equal(t, wire.StatusOK, sendCommand(t, conn, `create(col,"d.t.b",d.t,unsorted)`).Status)

	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: `load("ignored.csv")`}))

	// No reply arrives until the whole stream (header + rows + EOF) has been
	// consumed — the server reads straight through the mini-protocol before
	// sending its one reply frame.
	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: "d.t.a,d.t.b"}))
	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: "3,30"}))
	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: "1,10"}))
	require.NoError(t, wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: wire.LoadEOF}))

	final, err := wire.ReadFrame(conn)
	require.NoError(t, err)
	assert.Equal(t, wire.StatusOK, final.Status)
}

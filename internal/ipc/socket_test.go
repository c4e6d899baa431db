package ipc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs a server plus a stand-in event loop answering commands.
func startServer(t *testing.T, answer func(Request) Response) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strata.sock")

	srv, err := NewServer(path)
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for {
			select {
			case cmd := <-srv.Commands():
				cmd.Reply <- answer(cmd.Req)
			case <-done:
				return
			}
		}
	}()
	return path
}

func TestServerRoundTrip(t *testing.T) {
	path := startServer(t, func(req Request) Response {
		if req.Command == CmdWorkspace && req.Target == 2 {
			return Response{OK: true}
		}
		return Errorf("unexpected request %+v", req)
	})

	client, err := Dial(path)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Do(Request{Command: CmdWorkspace, Target: 2})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Empty(t, resp.Error)
}

func TestServerStatusQuery(t *testing.T) {
	path := startServer(t, func(req Request) Response {
		require.Equal(t, CmdStatus, req.Command)
		return Response{OK: true, Status: &Status{Workspace: 1, Workspaces: 5, Windows: 3}}
	})

	client, err := Dial(path)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Do(Request{Command: CmdStatus})
	require.NoError(t, err)
	require.NotNil(t, resp.Status)
	assert.Equal(t, 1, resp.Status.Workspace)
	assert.Equal(t, 5, resp.Status.Workspaces)
	assert.Equal(t, 3, resp.Status.Windows)
}

func TestServerMultipleRequestsOneConnection(t *testing.T) {
	calls := 0
	path := startServer(t, func(Request) Response {
		calls++
		return Response{OK: true}
	})

	client, err := Dial(path)
	require.NoError(t, err)
	defer client.Close()

	for i := 0; i < 3; i++ {
		resp, err := client.Do(Request{Command: CmdStatus})
		require.NoError(t, err)
		assert.True(t, resp.OK)
	}
	assert.Equal(t, 3, calls)
}

func TestServerErrorResponse(t *testing.T) {
	path := startServer(t, func(req Request) Response {
		return Errorf("workspace out of range: %d", req.Target)
	})

	client, err := Dial(path)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Do(Request{Command: CmdWorkspace, Target: 42})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "out of range: 42")
}

func TestDialMissingSocket(t *testing.T) {
	_, err := Dial(filepath.Join(t.TempDir(), "nope.sock"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is strata running?")
}

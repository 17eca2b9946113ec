package sway

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gosway "github.com/joshuarubin/go-sway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/sway-displays/internal/model"
)

func testOutputs() []gosway.Output {
	return []gosway.Output{
		{
			Name:        "eDP-1",
			Make:        "BOE",
			Model:       "0x095F",
			Serial:      "",
			Active:      true,
			Rect:        gosway.Rect{X: 0, Y: 0, Width: 1504, Height: 1003},
			Transform:   "normal",
			Scale:       1.5,
			CurrentMode: gosway.OutputMode{Width: 2256, Height: 1504, Refresh: 59999},
		},
		{
			Name:   "DP-1",
			Make:   "Dell Inc.",
			Model:  "DELL U2720Q",
			Serial: "7XYZ123",
			Active: false,
			Scale:  -1.0,
		},
	}
}

// fakeIPC answers requests from canned replies.
type fakeIPC struct {
	mu       sync.Mutex
	outputs  []gosway.Output
	spaces   []gosway.Workspace
	replies  []gosway.RunCommandReply
	err      error
	block    bool
	received []string
}

func (f *fakeIPC) wait(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f *fakeIPC) GetOutputs(ctx context.Context) ([]gosway.Output, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.outputs, nil
}

func (f *fakeIPC) GetWorkspaces(ctx context.Context) ([]gosway.Workspace, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.spaces, nil
}

func (f *fakeIPC) RunCommand(ctx context.Context, command string) ([]gosway.RunCommandReply, error) {
	f.mu.Lock()
	f.received = append(f.received, command)
	f.mu.Unlock()

	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.replies, nil
}

func (f *fakeIPC) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

func TestClient_GetOutputs(t *testing.T) {
	c := NewClient(&fakeIPC{outputs: testOutputs()}, nil)

	outputs, err := c.GetOutputs(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	edp := outputs[0]
	assert.Equal(t, "eDP-1", edp.Name)
	assert.Equal(t, model.OutputID("BOE 0x095F "), edp.ID())
	assert.True(t, edp.Active)
	assert.Equal(t, model.Rect{Width: 1504, Height: 1003}, edp.Rect)
	assert.Equal(t, 1.5, edp.Scale)
	require.NotNil(t, edp.CurrentMode)
	assert.Equal(t, model.Mode{Width: 2256, Height: 1504, Refresh: 59999}, *edp.CurrentMode)

	// Disabled outputs have no current mode
	dp := outputs[1]
	assert.False(t, dp.Active)
	assert.Nil(t, dp.CurrentMode)
	assert.Empty(t, dp.Transform)
	assert.Equal(t, model.OutputID("Dell Inc. DELL U2720Q 7XYZ123"), dp.ID())
}

func TestClient_GetWorkspaces(t *testing.T) {
	c := NewClient(&fakeIPC{spaces: []gosway.Workspace{
		{Num: 1, Name: "1", Output: "eDP-1", Focused: true, Visible: true},
		{Num: -1, Name: "mail", Output: "eDP-1"},
	}}, nil)

	workspaces, err := c.GetWorkspaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Workspace{
		{Name: "1", Output: "eDP-1"},
		{Name: "mail", Output: "eDP-1"},
	}, workspaces)
}

func TestClient_RunCommand(t *testing.T) {
	fake := &fakeIPC{replies: []gosway.RunCommandReply{{Success: true}, {Success: true}}}
	c := NewClient(fake, nil)

	err := c.RunCommand(context.Background(), "output DP-1 enable;workspace 1 output DP-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"output DP-1 enable;workspace 1 output DP-1"}, fake.commands())
}

func TestClient_RunCommand_Rejected(t *testing.T) {
	c := NewClient(&fakeIPC{replies: []gosway.RunCommandReply{
		{Success: true},
		{Success: false, Error: "Unknown/invalid command 'bogus'"},
		{Success: false},
	}}, nil)

	err := c.RunCommand(context.Background(), "output DP-1 enable;bogus;output X")
	require.Error(t, err)

	var ipcErr *IPCError
	require.True(t, errors.As(err, &ipcErr))
	assert.Equal(t, OpRunCommand, ipcErr.Op)
	assert.Contains(t, err.Error(), "2 of 3 commands rejected")
	assert.Contains(t, err.Error(), "command 2: Unknown/invalid command 'bogus'")
	assert.Contains(t, err.Error(), "command 3: command failed")
}

func TestClient_TransportError(t *testing.T) {
	broken := errors.New("broken pipe")
	c := NewClient(&fakeIPC{err: broken}, nil)

	_, err := c.GetOutputs(context.Background())
	require.Error(t, err)

	var ipcErr *IPCError
	require.True(t, errors.As(err, &ipcErr))
	assert.Equal(t, OpGetOutputs, ipcErr.Op)
	assert.ErrorIs(t, err, broken)
}

func TestClient_Timeout(t *testing.T) {
	c := NewClient(&fakeIPC{block: true}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetOutputs(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_SetTimeout(t *testing.T) {
	c := NewClient(&fakeIPC{block: true}, nil)
	c.SetTimeout(50 * time.Millisecond)

	start := time.Now()
	_, err := c.GetWorkspaces(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_CancelledContext(t *testing.T) {
	fake := &fakeIPC{}
	c := NewClient(fake, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.RunCommand(ctx, "output * enable")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.commands())
}

func TestDial_NoServer(t *testing.T) {
	_, err := Dial(context.Background(), filepath.Join(t.TempDir(), "missing.sock"), nil)
	var ipcErr *IPCError
	require.True(t, errors.As(err, &ipcErr))
	assert.Equal(t, OpConnect, ipcErr.Op)
}

func TestSocketPath(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "/run/user/1000/sway-ipc.sock")
		path, err := SocketPath("/tmp/custom.sock")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.sock", path)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "/run/user/1000/sway-ipc.sock\n")
		path, err := SocketPath("")
		require.NoError(t, err)
		assert.Equal(t, "/run/user/1000/sway-ipc.sock", path)
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv("SWAYSOCK", "")
		_, err := SocketPath("")
		assert.ErrorIs(t, err, ErrNoSocket)
	})
}

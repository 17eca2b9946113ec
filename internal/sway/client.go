// Package sway connects sway-displays to the sway IPC socket: querying
// outputs and workspaces and running commands.
package sway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	gosway "github.com/joshuarubin/go-sway"

	"github.com/jmylchreest/sway-displays/internal/model"
)

// IPC request names, used in errors and logs.
const (
	OpConnect       = "connect"
	OpRunCommand    = "RUN_COMMAND"
	OpGetWorkspaces = "GET_WORKSPACES"
	OpGetOutputs    = "GET_OUTPUTS"
)

// ErrNoSocket is returned when no socket path is configured and SWAYSOCK
// is unset.
var ErrNoSocket = errors.New("sway socket not found: SWAYSOCK is not set")

// IPCError describes a failed IPC exchange.
type IPCError struct {
	Op      string
	Message string
	Err     error
}

func (e *IPCError) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *IPCError) Unwrap() error {
	return e.Err
}

// SocketPath returns override when set, otherwise $SWAYSOCK.
func SocketPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if path := strings.TrimSpace(os.Getenv("SWAYSOCK")); path != "" {
		return path, nil
	}
	return "", ErrNoSocket
}

// ipc is the part of the go-sway client used here.
type ipc interface {
	GetOutputs(ctx context.Context) ([]gosway.Output, error)
	GetWorkspaces(ctx context.Context) ([]gosway.Workspace, error)
	RunCommand(ctx context.Context, command string) ([]gosway.RunCommandReply, error)
}

// Client is a connection to the sway IPC socket. Requests are serialized.
type Client struct {
	mu      sync.Mutex
	ipc     ipc
	cancel  context.CancelFunc
	logger  *slog.Logger
	timeout time.Duration
}

// Dial connects to the sway IPC socket at path. The connection stays open
// until Close is called or ctx is done.
func Dial(ctx context.Context, path string, logger *slog.Logger) (*Client, error) {
	ctx, cancel := context.WithCancel(ctx)
	conn, err := gosway.New(ctx, gosway.WithSocketPath(path))
	if err != nil {
		cancel()
		return nil, &IPCError{Op: OpConnect, Message: "failed to connect to " + path, Err: err}
	}

	c := NewClient(conn, logger)
	c.cancel = cancel
	return c, nil
}

// NewClient wraps an established go-sway connection.
func NewClient(conn ipc, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{ipc: conn, logger: logger}
}

// SetTimeout bounds every request to d. Zero disables the bound.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// GetOutputs returns every output sway knows about, including disabled ones.
func (c *Client) GetOutputs(ctx context.Context) ([]model.Output, error) {
	var outputs []gosway.Output
	err := c.do(ctx, OpGetOutputs, "", func(ctx context.Context) (err error) {
		outputs, err = c.ipc.GetOutputs(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return convertOutputs(outputs), nil
}

// GetWorkspaces returns every workspace.
func (c *Client) GetWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	var workspaces []gosway.Workspace
	err := c.do(ctx, OpGetWorkspaces, "", func(ctx context.Context) (err error) {
		workspaces, err = c.ipc.GetWorkspaces(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return convertWorkspaces(workspaces), nil
}

// RunCommand runs a command batch. It fails if sway rejects any command in
// the batch; the errors of all rejected commands are joined.
func (c *Client) RunCommand(ctx context.Context, command string) error {
	var replies []gosway.RunCommandReply
	err := c.do(ctx, OpRunCommand, command, func(ctx context.Context) (err error) {
		replies, err = c.ipc.RunCommand(ctx, command)
		return err
	})
	if err != nil {
		return err
	}
	return commandError(replies)
}

// do runs one request under the client's timeout.
func (c *Client) do(ctx context.Context, op, payload string, fn func(context.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return &IPCError{Op: op, Message: "cancelled", Err: err}
	}

	c.logger.Debug("sway ipc request", "type", op, "payload", truncate(payload, 200))

	if err := fn(ctx); err != nil {
		return &IPCError{Op: op, Message: "request failed", Err: err}
	}

	c.logger.Debug("sway ipc reply", "type", op)
	return nil
}

// commandError reports the rejected commands of a RUN_COMMAND reply.
func commandError(replies []gosway.RunCommandReply) error {
	var errs []error
	for i, r := range replies {
		if r.Success {
			continue
		}
		msg := r.Error
		if msg == "" {
			msg = "command failed"
		}
		errs = append(errs, fmt.Errorf("command %d: %s", i+1, msg))
	}
	if len(errs) == 0 {
		return nil
	}
	return &IPCError{
		Op:      OpRunCommand,
		Message: fmt.Sprintf("%d of %d commands rejected", len(errs), len(replies)),
		Err:     errors.Join(errs...),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

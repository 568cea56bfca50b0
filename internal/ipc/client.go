package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/montile/internal/runtimepath"
)

// Client handles IPC communication with the daemon.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for socketPath, or for the default socket when
// socketPath is empty.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		path, err := runtimepath.SocketPath()
		if err == nil {
			socketPath = path
		}
	}
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

func (c *Client) dial(req *Request) (net.Conn, *bufio.Reader, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}

	reqData, err := json.Marshal(req)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to send request: %w", err)
	}
	return conn, bufio.NewReader(conn), nil
}

func readResponse(reader *bufio.Reader) (*Response, error) {
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}

// Call runs a command in the daemon and returns its status and output.
func (c *Client) Call(args ...string) (*Response, error) {
	conn, reader, err := c.dial(&Request{Args: args})
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(c.timeout))

	resp, err := readResponse(reader)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return resp, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return resp, nil
}

// Idle calls fn with every hook line until ctx is done, fn returns an
// error or the daemon closes the connection.
func (c *Client) Idle(ctx context.Context, fn func(line string) error) error {
	conn, reader, err := c.dial(&Request{Idle: true})
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		resp, err := readResponse(reader)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if resp.Error != "" {
			return fmt.Errorf("daemon error: %s", resp.Error)
		}
		if err := fn(resp.Hook); err != nil {
			return err
		}
	}
}

// Ping checks if the daemon is responding.
func (c *Client) Ping() error {
	_, err := c.Call("list_monitors")
	return err
}

package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client is one connection to a running compositor's control socket.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

// Dial connects to the control socket; an empty path resolves via SocketPath.
func Dial(socketPath string) (*Client, error) {
	if socketPath == "" {
		resolved, err := SocketPath()
		if err != nil {
			return nil, err
		}
		socketPath = resolved
	}

	conn, err := net.DialTimeout("unix", socketPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s (is strata running?): %w", socketPath, err)
	}
	return &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}, nil
}

// Do sends one request and waits for its response.
func (c *Client) Do(req Request) (Response, error) {
	if err := c.enc.Encode(req); err != nil {
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}
	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, nil
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}

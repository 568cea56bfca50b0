package ipc

import (
	"encoding/json"
	"fmt"
)

// Request is one line sent by a client. A request either runs a command or,
// with Idle set, subscribes to hook lines until the connection closes.
type Request struct {
	Args []string `json:"args,omitempty"`
	Idle bool     `json:"idle,omitempty"`
}

// Response carries the status and output of a command. Hook lines streamed
// to idle clients use Hook instead.
type Response struct {
	Status int    `json:"status"`
	Output string `json:"output,omitempty"`
	Hook   string `json:"hook,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewErrorResponse creates a protocol-level error response.
func NewErrorResponse(status int, errMsg string) *Response {
	return &Response{
		Status: status,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if !req.Idle && len(req.Args) == 0 {
		return nil, fmt.Errorf("request has no command")
	}
	return &req, nil
}

// Marshal converts a response to a newline-terminated JSON line.
func (r *Response) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

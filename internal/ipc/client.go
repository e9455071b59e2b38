package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client talks to a running wayscriber instance over its control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient builds a client for the given socket path; an empty path
// uses the per-user default.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		p, err := DefaultSocketPath()
		if err != nil {
			return nil, err
		}
		socketPath = p
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}, nil
}

// SetTimeout overrides the per-command deadline.
func (c *Client) SetTimeout(d time.Duration) { c.timeout = d }

// Send delivers one command and returns the instance's response.
func (c *Client) Send(cmd Command) (Response, error) {
	if err := cmd.Validate(); err != nil {
		return Response{}, err
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return Response{}, fmt.Errorf("connect to %s (is wayscriber running?): %w", c.socketPath, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return Response{}, err
	}

	if err := json.NewEncoder(conn).Encode(cmd); err != nil {
		return Response{}, fmt.Errorf("send command: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Response{}, fmt.Errorf("read response: %w", err)
		}
		return Response{}, fmt.Errorf("connection closed before response")
	}
	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	if !resp.OK && resp.Error != "" {
		return resp, fmt.Errorf("instance error: %s", resp.Error)
	}
	return resp, nil
}

// Undo runs n undo steps (n <= 0 means one).
func (c *Client) Undo(n int) error {
	_, err := c.Send(Command{Name: CmdUndo, Steps: n})
	return err
}

// Redo runs n redo steps (n <= 0 means one).
func (c *Client) Redo(n int) error {
	_, err := c.Send(Command{Name: CmdRedo, Steps: n})
	return err
}

// Clear wipes the active page.
func (c *Client) Clear() error {
	_, err := c.Send(Command{Name: CmdClear})
	return err
}

// SelectTool switches the active tool.
func (c *Client) SelectTool(tool string) error {
	_, err := c.Send(Command{Name: CmdTool, Tool: tool})
	return err
}

// SwitchBoard activates a board by id.
func (c *Client) SwitchBoard(id string) error {
	_, err := c.Send(Command{Name: CmdBoard, Board: id})
	return err
}

// Capture requests a screenshot.
func (c *Client) Capture(captureType, destination string) error {
	_, err := c.Send(Command{Name: CmdCapture, CaptureType: captureType, Destination: destination})
	return err
}

// ToggleOverlay shows or hides the overlay.
func (c *Client) ToggleOverlay() error {
	_, err := c.Send(Command{Name: CmdToggleOverlay})
	return err
}

// Status queries the running instance.
func (c *Client) Status() (*Status, error) {
	resp, err := c.Send(Command{Name: CmdStatus})
	if err != nil {
		return nil, err
	}
	if resp.Status == nil {
		return nil, fmt.Errorf("status response missing payload")
	}
	return resp.Status, nil
}

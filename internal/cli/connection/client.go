package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tidresp "github.com/tidwall/resp"

	"github.com/yndnr/memkv-go/pkg/resp"
)

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client is a single RESP connection. It is not safe for concurrent use.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	rd      *tidresp.Reader
	buf     []byte
}

// Dial connects to the server at addr. A non-positive timeout uses
// DefaultTimeout.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}

	return &Client{
		addr:    addr,
		timeout: timeout,
		conn:    conn,
		rd:      tidresp.NewReader(conn),
	}, nil
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends one command and waits for its reply. Error replies from the
// server are returned as values, not as Go errors; only transport failures
// produce an error.
func (c *Client) Do(args ...string) (tidresp.Value, error) {
	if c.conn == nil {
		return tidresp.Value{}, ErrClosed
	}
	if len(args) == 0 {
		return tidresp.Value{}, errors.New("connection: empty command")
	}

	parts := make([][]byte, len(args))
	for i, a := range args {
		parts[i] = []byte(a)
	}
	c.buf = resp.AppendFrame(c.buf[:0], resp.CommandFrame(parts...))

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return tidresp.Value{}, err
	}
	if _, err := c.conn.Write(c.buf); err != nil {
		return tidresp.Value{}, fmt.Errorf("send %s: %w", args[0], err)
	}

	v, _, err := c.rd.ReadValue()
	if err != nil {
		return tidresp.Value{}, fmt.Errorf("read reply: %w", err)
	}
	return v, nil
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

package redisserver

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/pkg/resp"
)

// Conn represents a single Redis client connection.
type Conn struct {
	id       string
	netConn  net.Conn
	remoteIP string
	rd       *resp.Reader
	out      []byte

	idleTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	reqStart     time.Time // arrival of the first byte of the pending request
	lastRead     time.Time

	state atomic.Int32
}

// Connection states. A connection moves between idle and busy once per
// request; closed is terminal.
const (
	stateIdle int32 = iota
	stateBusy
	stateClosed
)

func newConn(nc net.Conn, dec *resp.Decoder, cfg *Config) *Conn {
	c := &Conn{
		id:           ulid.Make().String(),
		netConn:      nc,
		remoteIP:     remoteIP(nc.RemoteAddr()),
		idleTimeout:  cfg.IdleTimeout,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
	c.rd = resp.NewReader(connReader{c}, dec)
	return c
}

// ID returns the connection's unique ID.
func (c *Conn) ID() string {
	return c.id
}

// Close closes the connection, even mid-request. It is safe to call more
// than once.
func (c *Conn) Close() error {
	if c.state.Swap(stateClosed) == stateClosed {
		return nil
	}
	return c.netConn.Close()
}

// closeIfIdle closes the connection unless a request is being executed.
func (c *Conn) closeIfIdle() bool {
	if !c.state.CompareAndSwap(stateIdle, stateClosed) {
		return false
	}
	_ = c.netConn.Close()
	return true
}

// beginRequest marks the connection busy. It fails once the connection is
// closed, in which case the request must not run: nobody could receive
// its reply.
func (c *Conn) beginRequest() bool {
	return c.state.CompareAndSwap(stateIdle, stateBusy)
}

func (c *Conn) endRequest() {
	c.state.CompareAndSwap(stateBusy, stateIdle)
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// ReadFrame reads the next request frame.
func (c *Conn) ReadFrame() (resp.Frame, error) {
	f, err := c.rd.ReadFrame()
	c.reqStart = time.Time{}
	if err == nil && c.rd.Buffered() > 0 {
		// Bytes left after f came with the read that completed f.
		c.reqStart = c.lastRead
	}
	return f, err
}

// WriteReply writes one reply and flushes it.
func (c *Conn) WriteReply(r domain.Reply) error {
	c.out = r.AppendTo(c.out[:0])
	return c.write(c.out)
}

// WriteProtocolError reports malformed input before the connection closes.
func (c *Conn) WriteProtocolError(msg string) error {
	c.out = resp.AppendFrame(c.out[:0], resp.ErrorFrame("ERR Protocol error: "+msg))
	return c.write(c.out)
}

func (c *Conn) write(b []byte) error {
	if c.writeTimeout > 0 {
		if err := c.netConn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := c.netConn.Write(b)
	return err
}

// connReader applies the idle and read timeouts to each network read.
// With nothing buffered the connection is idle; once part of a request has
// arrived the read timeout runs from the arrival of its first byte.
type connReader struct {
	c *Conn
}

func (r connReader) Read(p []byte) (int, error) {
	c := r.c
	if c.idleTimeout > 0 || c.readTimeout > 0 {
		var deadline time.Time
		if c.rd.Buffered() == 0 {
			if c.idleTimeout > 0 {
				deadline = time.Now().Add(c.idleTimeout)
			}
		} else if c.readTimeout > 0 {
			if c.reqStart.IsZero() {
				c.reqStart = time.Now()
			}
			deadline = c.reqStart.Add(c.readTimeout)
		}
		if err := c.netConn.SetReadDeadline(deadline); err != nil {
			return 0, err
		}
	}

	n, err := c.netConn.Read(p)
	if n > 0 {
		c.lastRead = time.Now()
		if c.reqStart.IsZero() {
			c.reqStart = c.lastRead
		}
	}
	return n, err
}

func remoteIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

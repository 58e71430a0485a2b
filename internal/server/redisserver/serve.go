package redisserver

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/pkg/resp"
)

var rateLimitedReply = domain.ErrorReplyFrom(domain.ErrRateLimited)

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	ctx = logger.WithConnID(ctx, c.ID())
	log := s.logger.With("conn_id", c.ID(), "remote", c.RemoteAddr().String())
	ctx = logger.WithLogger(ctx, log)

	s.metrics.ConnectionOpened()
	defer s.metrics.ConnectionClosed()

	log.Debug("connection opened")
	defer log.Debug("connection closed")

	for {
		f, err := c.ReadFrame()
		if err != nil {
			s.handleReadError(c, log, err)
			return
		}

		if !c.beginRequest() {
			log.Debug("connection closed before dispatch, request dropped")
			return
		}
		reply := s.dispatch(ctx, c, f)
		err = c.WriteReply(reply)
		c.endRequest()

		if err != nil {
			log.Debug("write failed", "error", err)
			return
		}
		if !s.running.Load() && c.rd.Buffered() == 0 {
			return
		}
	}
}

// dispatch runs one request and records its metrics.
func (s *Server) dispatch(ctx context.Context, c *Conn, f resp.Frame) domain.Reply {
	name := commandLabel(f)

	if !s.limits.Allow(c.remoteIP) {
		s.metrics.IncRateLimited()
		s.metrics.RecordCommand(name, rateLimitedReply.Kind.String())
		return rateLimitedReply
	}

	start := time.Now()
	reply := s.handler.Handle(ctx, f)
	s.metrics.ObserveCommandDuration(name, time.Since(start).Seconds())
	s.metrics.RecordCommand(name, reply.Kind.String())

	return reply
}

func (s *Server) handleReadError(c *Conn, log logger.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		return

	case errors.Is(err, resp.ErrProtocol):
		s.metrics.IncProtocolErrors()
		log.Warn("protocol error, closing connection", "error", err)

		msg := err.Error()
		var pe *resp.ProtocolError
		if errors.As(err, &pe) {
			msg = pe.Msg
		}
		_ = c.WriteProtocolError(msg)

	case errors.Is(err, io.ErrUnexpectedEOF):
		log.Debug("connection closed mid-request", "buffered", c.rd.Buffered())

	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Debug("connection timed out")
			return
		}
		if errors.Is(err, net.ErrClosed) {
			return
		}
		log.Debug("connection read error", "error", err)
	}
}

// commandLabel names a request for metrics without letting arbitrary client
// input become a label value.
func commandLabel(f resp.Frame) string {
	if f.Type != resp.Array || len(f.Elems) == 0 || !f.Elems[0].IsString() {
		return "invalid"
	}
	name, ok := domain.LookupName(f.Elems[0].Data)
	if !ok {
		return "unknown"
	}
	return name
}

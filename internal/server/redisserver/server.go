package redisserver

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/internal/core/service"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/internal/telemetry/metric"
	"github.com/yndnr/memkv-go/pkg/resp"
)

// shutdownPollInterval is how often Shutdown re-checks for idle connections.
const shutdownPollInterval = 20 * time.Millisecond

// Config holds the Redis server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// IdleTimeout closes connections with no partial request buffered that
	// stay silent this long. Zero disables it.
	IdleTimeout time.Duration
	// ReadTimeout bounds the time to receive the rest of a request once
	// its first bytes arrived. Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit is the maximum number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int
	// MaxBulkLen and MaxArrayLen override the codec limits when positive.
	MaxBulkLen  int
	MaxArrayLen int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address: "127.0.0.1:6379",
	}
}

// Handler executes one request frame.
type Handler interface {
	Handle(ctx context.Context, f resp.Frame) domain.Reply
}

// Server represents the Redis protocol server.
type Server struct {
	cfg     *Config
	handler Handler
	logger  logger.Logger
	metrics *metric.Registry
	limits  *service.RateLimiterRegistry
	decoder *resp.Decoder

	mu    sync.Mutex
	ln    net.Listener
	conns map[*Conn]struct{}

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a new Redis protocol server. A nil cfg uses DefaultConfig, a
// nil log the default logger and nil metrics the global registry.
func New(cfg *Config, handler Handler, log logger.Logger, metrics *metric.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}

	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  log,
		metrics: metrics,
		limits:  service.NewRateLimiterRegistry(cfg.RateLimit),
		decoder: resp.NewDecoder(
			resp.WithMaxBulkLen(cfg.MaxBulkLen),
			resp.WithMaxArrayLen(cfg.MaxArrayLen),
		),
		conns: make(map[*Conn]struct{}),
	}
}

// Start binds the listener and accepts connections in the background.
// A bind failure is returned to the caller.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln in the background.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.ln != nil {
		s.mu.Unlock()
		return errors.New("redisserver: already started")
	}
	s.ln = ln
	s.mu.Unlock()

	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil {
			s.logger.Error("redis accept loop stopped", "error", err)
		}
	}()
	return nil
}

// Addr returns the listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting connections and waits for open ones to finish.
// Idle connections are closed right away; busy ones close after writing
// their current reply. When ctx expires the remaining connections are
// closed forcibly and ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	s.mu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(shutdownPollInterval)
	defer ticker.Stop()

	for {
		s.closeConns(false)
		select {
		case <-done:
			return firstErr
		case <-ctx.Done():
			s.closeConns(true)
			<-done
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// closeConns closes idle connections, or all of them when force is set.
func (s *Server) closeConns(force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.conns {
		if force {
			_ = c.Close()
		} else {
			c.closeIfIdle()
		}
	}
}

func (s *Server) trackConn(c *Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	var tempDelay time.Duration

	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			// Back off on temporary failures such as EMFILE.
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				tempDelay = min(max(2*tempDelay, 5*time.Millisecond), time.Second)
				s.logger.Warn("accept error, retrying", "error", err, "delay", tempDelay)
				time.Sleep(tempDelay)
				continue
			}
			return err
		}
		tempDelay = 0

		c := newConn(nc, s.decoder, s.cfg)
		s.trackConn(c, true)

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.trackConn(c, false)
			s.serveConn(ctx, c)
		}()
	}
}

package service

import (
	"context"

	"github.com/yndnr/memkv-go/internal/core/domain"
	"github.com/yndnr/memkv-go/internal/telemetry/logger"
	"github.com/yndnr/memkv-go/pkg/resp"
)

// Store is the storage the Executor reads and writes.
//
// Implementations must be safe for concurrent use and must not mutate a
// value after returning it from Get.
type Store interface {
	// Get returns the value at key and whether it exists.
	Get(key []byte) ([]byte, bool)

	// Set stores value at key, replacing any previous value.
	Set(key, value []byte)
}

var pong = domain.SimpleString("PONG")

// Executor runs commands against a Store.
type Executor struct {
	store Store
}

// NewExecutor creates an Executor backed by store.
func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Execute runs cmd and returns its reply. Each command touches the store at
// most once.
func (e *Executor) Execute(_ context.Context, cmd domain.Command) domain.Reply {
	switch c := cmd.(type) {
	case domain.Get:
		v, ok := e.store.Get(c.Key)
		if !ok {
			return domain.NilReply()
		}
		return domain.BulkString(v)

	case domain.Set:
		e.store.Set(c.Key, c.Value)
		return domain.OK

	case domain.Ping:
		if !c.HasMessage {
			return pong
		}
		return echo(c.Message)

	case domain.Echo:
		return echo(c.Message)

	default:
		return domain.ErrorReplyFrom(domain.ErrUnknownCommand)
	}
}

// Handle parses a request frame and executes it. A request that fails to
// parse yields an error reply without reaching the store.
func (e *Executor) Handle(ctx context.Context, f resp.Frame) domain.Reply {
	cmd, err := domain.ParseCommand(f)
	if err != nil {
		logger.FromContext(ctx).Debug("command rejected",
			"code", domain.GetErrorCode(err),
			"error", err)
		return domain.ErrorReplyFrom(err)
	}
	return e.Execute(ctx, cmd)
}

func echo(msg []byte) domain.Reply {
	return domain.BulkString(msg)
}

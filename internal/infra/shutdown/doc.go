// Package shutdown coordinates graceful process termination.
//
// A Handler collects named hooks and runs them in reverse registration
// order once SIGINT or SIGTERM arrives, Trigger is called, or the context
// passed to Wait is cancelled. All hooks share one deadline.
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("redis listener", srv.Shutdown)
//	if err := h.Wait(ctx); err != nil { ... }
package shutdown

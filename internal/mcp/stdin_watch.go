package mcp

import (
	"context"
	"os"
	"time"

	"seoaudit/internal/logging"
)

// WatchStdin watches for parent process death in a background
// goroutine and calls cancelFn when the parent PID changes, so a
// disconnected agent host does not leave a zombie server behind.
//
// It must NOT read from stdin: the SDK's StdioTransport owns stdin
// exclusively, and stealing bytes here would corrupt the JSON-RPC
// stream. The goroutine exits when ctx is cancelled or parent death
// is detected.
func WatchStdin(ctx context.Context, _ any, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	logger := logging.New("mcp")
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logger.Warn("parent process died, shutting down", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}

package safe

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/DrizzleTime/foxelbot/pkg/process"
)

func Go(f func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("[safe] go panic", "error", err, "stack", string(debug.Stack()))
			}
		}()

		f()
	}()
}

// GoCtx is Go with shutdown tracking: the goroutine registers with the root
// wait group carried by ctx so process exit can wait for it.
func GoCtx(ctx context.Context, f func()) {
	wg := process.GetRootWaitGroup(ctx)
	if wg != nil {
		wg.Add(1)
	}

	Go(func() {
		if wg != nil {
			defer wg.Done()
		}
		f()
	})
}

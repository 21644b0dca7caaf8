package process

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	exitTimeout = 3 * time.Second
)

type CmdCtxKey string

const (
	RootWgKey CmdCtxKey = "__root_wg_key__"
)

func GetRootWaitGroup(ctx context.Context) *sync.WaitGroup {
	v := ctx.Value(RootWgKey)
	if wg, ok := v.(*sync.WaitGroup); ok {
		return wg
	}

	return nil
}

// GetRootContext builds the process root context. The context is cancelled
// on SIGINT/SIGTERM so in-flight streams get a chance to shut down; the
// returned wait function blocks until tracked goroutines finish or the exit
// timeout passes.
func GetRootContext() (context.Context, context.CancelFunc, func()) {
	rootWg := &sync.WaitGroup{}
	rootCtx, rootCancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	rootCtx = context.WithValue(rootCtx, RootWgKey, rootWg)

	waitFn := func() {
		exitCtx, exitCancel := context.WithTimeout(context.Background(), exitTimeout)
		defer exitCancel()

		waitDone := make(chan struct{})
		go func() {
			rootWg.Wait()
			close(waitDone)
		}()

		select {
		case <-exitCtx.Done():
		case <-waitDone:
		}
	}

	return rootCtx, rootCancel, waitFn
}

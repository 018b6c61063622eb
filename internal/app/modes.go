package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"phoebe/pkg/logging"
)

// runWithSignals runs the controller with a context that is cancelled on
// SIGINT or SIGTERM. Cancellation ends the host loop; teardown then runs as
// on a normal exit.
func runWithSignals(ctx context.Context, c *Controller, args []string) Result {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := c.Run(ctx, args)
	if ctx.Err() != nil {
		logging.Info("Bootstrap", "Interrupted, shut down cleanly")
	}
	return res
}

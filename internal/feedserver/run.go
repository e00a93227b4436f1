package feedserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/options"
)

// Run runs the specified APIServer. This should never exit.
func Run(opts *options.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := createAPIServer(ctx, opts)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}

package main

import (
	"context"
	"time"

	"github.com/fwojciec/pagemeta/fiber"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Listen
	if addr == "" {
		addr = deps.Config.Listen
	}

	inspector := *deps.Inspector
	if c.Save {
		inspector.Inspections = deps.Inspections
	}

	srv := fiber.NewServer(&inspector, deps.Inspections, deps.Logger)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errc
}

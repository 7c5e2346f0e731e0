package main

import (
	"fmt"
	"os"
	"os/signal"

	wbhttp "github.com/ElishaSamPeterPrabhu/workbuddy/http"
)

// Run executes the serve command. It blocks until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := wbhttp.NewServer(deps.Handler, wbhttp.WithAddr(c.Addr))
	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer server.Close()

	fmt.Fprintf(deps.Stdout, "Serving search API on http://%s (Ctrl-C to stop)\n", server.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	select {
	case <-stop:
	case <-deps.Ctx.Done():
	}
	return nil
}

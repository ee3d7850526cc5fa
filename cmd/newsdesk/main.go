// Command newsdesk is the newsroom console for the articles API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"news-agency/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peteraglen/flowdock-push-go-client/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowdock-push",
		Short: "Push messages to Flowdock team inboxes",
		Long: `flowdock-push sends messages to the team inbox of one or more Flowdock
flows using their API tokens.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.SendCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

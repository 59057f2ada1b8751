package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verity-labs/verity/internal/adapters/driving/watcher"
)

var watchScope string

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest files as they appear",
	Long: `Watches the directory for new or modified files and ingests each one
into the organisation's chunk store. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchScope, "scope", "", "organisation scope (required)")
	_ = watchCmd.MarkFlagRequired("scope")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	w, err := watcher.New(ingestService, watchScope)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (scope %s). Press Ctrl+C to stop.\n", args[0], watchScope)
	if err := w.Run(ctx, args[0]); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/daemon"
	"subweave/internal/logging"
	"subweave/internal/queue"
)

func newAddFileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Queue a media file for subtitling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				jobs, err := daemon.EnqueueFile(cmd.Context(), cfg, store, logging.NewNop(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, job := range jobs {
					fmt.Fprintf(out, "Queued job %d (%s)\n", job.ID, job.LanguagePair())
				}
				return nil
			})
		},
	}
}

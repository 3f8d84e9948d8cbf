package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"speechtag/internal/daemon"
	"speechtag/internal/workflow"
)

func newWatchCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and tag recordings as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			pipe, err := cmdCtx.newPipeline(logger)
			if err != nil {
				return err
			}

			manager := workflow.NewManager(cfg, store, pipe, logger)
			d, err := daemon.New(cfg, store, logger, manager)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(ctx); err != nil {
				return err
			}
			d.Wait(ctx)
			return nil
		},
	}
}

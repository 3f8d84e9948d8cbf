package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"speechtag/internal/queue"
)

func newQueueCommand(cmdCtx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the processing queue",
	}

	queueCmd.AddCommand(newQueueListCommand(cmdCtx))
	queueCmd.AddCommand(newQueueStatusCommand(cmdCtx))
	queueCmd.AddCommand(newQueueRetryCommand(cmdCtx))
	queueCmd.AddCommand(newQueueClearCommand(cmdCtx))

	return queueCmd
}

func newQueueListCommand(cmdCtx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []queue.Status
			if statusFilter != "" {
				status, ok := queue.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFilter)
				}
				statuses = append(statuses, status)
			}

			items, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					filepath.Base(item.SourcePath),
					string(item.Status),
					item.UpdatedAt.Local().Format(time.DateTime),
					item.ErrorMessage,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "File", "Status", "Updated", "Error"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show items with this status")
	return cmd
}

func newQueueStatusCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			health, err := store.Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Total", "Pending", "Processing", "Completed", "Review", "Failed"},
				[][]string{{
					strconv.Itoa(health.Total),
					strconv.Itoa(health.Pending),
					strconv.Itoa(health.Processing),
					strconv.Itoa(health.Completed),
					strconv.Itoa(health.Review),
					strconv.Itoa(health.Failed),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newQueueRetryCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retry [id...]",
		Short: "Move failed items back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q", arg)
				}
				ids = append(ids, id)
			}

			affected, err := store.RetryFailed(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Requeued %d item(s).\n", affected)
			return nil
		},
	}
}

func newQueueClearCommand(cmdCtx *commandContext) *cobra.Command {
	var completed bool
	var failed bool
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove items from the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !completed && !failed && !all {
				return errors.New("pass --completed, --failed, or --all")
			}

			store, err := cmdCtx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			switch {
			case all:
				removed, err = store.Clear(cmd.Context())
			case completed:
				removed, err = store.ClearCompleted(cmd.Context())
			default:
				removed, err = store.ClearFailed(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d item(s).\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Remove completed items")
	cmd.Flags().BoolVar(&failed, "failed", false, "Remove failed items")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every item")
	return cmd
}

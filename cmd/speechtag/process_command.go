package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"speechtag/internal/queue"
	"speechtag/internal/workflow"
)

func newProcessCommand(cmdCtx *commandContext) *cobra.Command {
	var all bool
	var fast bool

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Tag one recording or every recording in the input directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("provide an audio file or use --all")
			}
			if all && len(args) > 0 {
				return errors.New("--all and an explicit file are mutually exclusive")
			}

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if fast {
				cfg.Transcription.Enabled = false
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runID := uuid.NewString()
			paths, err := collectInputs(cfg.Paths.InputDir, args, all)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audio files to process.")
				return nil
			}

			for _, path := range paths {
				if _, err := store.NewFile(ctx, path, runID); err != nil {
					return fmt.Errorf("enqueue %s: %w", path, err)
				}
			}

			manager := workflow.NewManager(cfg, store, pipe, logger)
			summary, err := manager.RunUntilDrained(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			printSummary(cmd, summary)
			return printFailures(ctx, cmd, store, runID)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Process every audio file in the input directory")
	cmd.Flags().BoolVar(&fast, "fast", false, "Skip transcription for this run")
	return cmd
}

func collectInputs(inputDir string, args []string, all bool) ([]string, error) {
	if !all {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", args[0], err)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(inputDir, entry.Name()))
	}
	return paths, nil
}

func isAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3":
		return true
	default:
		return false
	}
}

func printSummary(cmd *cobra.Command, summary workflow.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Succeeded", "Warned", "Review", "Failed"},
		[][]string{{
			fmt.Sprintf("%d", summary.Succeeded),
			fmt.Sprintf("%d", summary.Warned),
			fmt.Sprintf("%d", summary.Review),
			fmt.Sprintf("%d", summary.Failed),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
}

func printFailures(ctx context.Context, cmd *cobra.Command, store *queue.Store, runID string) error {
	items, err := store.List(ctx, queue.StatusFailed, queue.StatusReview)
	if err != nil {
		return err
	}
	var rows [][]string
	for _, item := range items {
		if item.RunID != runID {
			continue
		}
		rows = append(rows, []string{
			filepath.Base(item.SourcePath),
			string(item.Status),
			item.ErrorMessage,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"File", "Status", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
	return nil
}

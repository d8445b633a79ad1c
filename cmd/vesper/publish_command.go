package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"vesper/internal/library"
	"vesper/internal/logging"
	"vesper/internal/processor"
	"vesper/internal/queue"
	"vesper/internal/safety"
	"vesper/internal/tiktok"
)

func newPublishCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish due approved queue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// One publisher at a time; a second invocation (cron overlap,
			// operator run) fails fast instead of racing the queue.
			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "publish.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire publish lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another publish run holds %s", lock.Path())
			}
			defer lock.Unlock()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			lib, err := library.Open(cfg)
			if err != nil {
				return err
			}
			defer lib.Close()

			gate := safety.NewGate(store, cfg, nil)
			client := tiktok.NewClient(cfg, nil)
			proc := processor.New(store, gate, lib, client, cfg, logger, nil)

			results, err := proc.ProcessQueue(cmd.Context(), dryRun)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				id := ""
				if result.QueueID != 0 {
					id = strconv.FormatInt(result.QueueID, 10)
				}
				rows = append(rows, []string{id, string(result.Status), result.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Result", "Detail"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would publish without transitions or uploads")

	return cmd
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/library"
	"vesper/internal/queue"
)

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var (
		atFlag string
		inFlag time.Duration
	)

	cmd := &cobra.Command{
		Use:   "schedule <video-ref>",
		Short: "Queue a library video for publishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduledAt, err := resolveScheduleTime(atFlag, inFlag)
			if err != nil {
				return err
			}

			ref := args[0]
			err = ctx.withLibrary(func(_ *config.Config, lib *library.Store) error {
				video, err := lib.GetByRef(cmd.Context(), ref)
				if err != nil {
					return err
				}
				if video == nil {
					return fmt.Errorf("no library video with ref %s", ref)
				}
				return nil
			})
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				item, err := store.Add(cmd.Context(), ref, cfg.Publishing.Platform, scheduledAt)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued item #%d for %s (pending approval)\n",
					item.ID, item.ScheduledAt.Local().Format(time.RFC1123))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Publish time, RFC 3339 (e.g. 2026-08-24T09:00:00Z)")
	cmd.Flags().DurationVar(&inFlag, "in", 0, "Publish after a delay (e.g. 4h30m)")

	return cmd
}

func resolveScheduleTime(atFlag string, inFlag time.Duration) (time.Time, error) {
	if atFlag != "" && inFlag != 0 {
		return time.Time{}, errors.New("--at and --in are mutually exclusive")
	}
	if atFlag != "" {
		scheduledAt, err := time.Parse(time.RFC3339, atFlag)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse --at: %w", err)
		}
		return scheduledAt, nil
	}
	if inFlag < 0 {
		return time.Time{}, errors.New("--in must not be negative")
	}
	return time.Now().Add(inFlag), nil
}

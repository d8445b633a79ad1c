package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and maintain the publish queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newQueueListCommand(ctx))
	cmd.AddCommand(newQueueShowCommand(ctx))
	cmd.AddCommand(newQueueClearFailedCommand(ctx))

	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var statuses []queue.Status
			if statusFlag != "" {
				status, ok := queue.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFlag)
				}
				statuses = append(statuses, status)
			}

			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				items, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.VideoRef,
						string(item.Status),
						item.ScheduledAt.Local().Format("2006-01-02 15:04"),
						strconv.Itoa(item.RetryCount),
						item.ErrorMessage,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Video", "Status", "Scheduled", "Retries", "Error"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (pending, approved, uploading, published, failed)")

	return cmd
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <queue-id>",
		Short: "Show one queue item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid queue id %q", args[0])
			}

			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				item, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("no queue item #%d", id)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:           %d\n", item.ID)
				fmt.Fprintf(out, "Video:        %s\n", item.VideoRef)
				fmt.Fprintf(out, "Platform:     %s\n", item.Platform)
				fmt.Fprintf(out, "Status:       %s\n", item.Status)
				fmt.Fprintf(out, "Scheduled:    %s\n", item.ScheduledAt.Local().Format(time.RFC1123))
				if item.PublishedAt != nil {
					fmt.Fprintf(out, "Published:    %s\n", item.PublishedAt.Local().Format(time.RFC1123))
				}
				if item.ExternalPostID != "" {
					fmt.Fprintf(out, "Post ID:      %s\n", item.ExternalPostID)
				}
				if item.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:        %s\n", item.ErrorMessage)
				}
				fmt.Fprintf(out, "Retries:      %d\n", item.RetryCount)
				fmt.Fprintf(out, "Created:      %s\n", item.CreatedAt.Local().Format(time.RFC1123))
				fmt.Fprintf(out, "Updated:      %s\n", item.UpdatedAt.Local().Format(time.RFC1123))
				return nil
			})
		},
	}
}

func newQueueClearFailedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-failed",
		Short: "Delete failed queue items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				removed, err := store.ClearFailed(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d failed item(s)\n", removed)
				return nil
			})
		},
	}
}

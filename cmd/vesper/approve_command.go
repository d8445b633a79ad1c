package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/queue"
)

func newApproveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <queue-id>",
		Short: "Approve a pending queue item for publishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid queue id %q", args[0])
			}

			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				approved, err := store.Approve(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !approved {
					item, err := store.GetByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if item == nil {
						return fmt.Errorf("no queue item #%d", id)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Item #%d is %s, nothing to approve\n", id, item.Status)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Approved item #%d\n", id)
				return nil
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/queue"
	"vesper/internal/safety"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue counts and the current safety-gate verdict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				gate := safety.NewGate(store, cfg, nil)

				ok, reason, err := gate.CanPublish(cmd.Context())
				if err != nil {
					return err
				}
				manual, err := gate.NeedsHumanApproval(cmd.Context())
				if err != nil {
					return err
				}
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Can publish:      %s", yesNo(ok))
				if !ok {
					fmt.Fprintf(out, " (%s)", reason)
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Manual approval:  %s\n", yesNo(manual))

				statuses := queue.AllStatuses()
				rows := make([][]string, 0, len(statuses))
				for _, status := range statuses {
					rows = append(rows, []string{string(status), fmt.Sprintf("%d", stats[status])})
				}
				fmt.Fprintln(out, renderTable([]string{"Status", "Count"}, rows))
				return nil
			})
		},
	}
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/library"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "videos",
		Short: "List registered library videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(_ *config.Config, lib *library.Store) error {
				videos, err := lib.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(videos) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Library is empty")
					return nil
				}

				rows := make([][]string, 0, len(videos))
				for _, video := range videos {
					rows = append(rows, []string{
						video.Ref,
						filepath.Base(video.FilePath),
						video.VerseReference,
						video.ThemeSlug,
						fmt.Sprintf("%.1fs", video.DurationSec),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Ref", "File", "Verse", "Theme", "Duration"}, rows))
				return nil
			})
		},
	}
}

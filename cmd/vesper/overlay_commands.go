package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/library"
	"vesper/internal/overlay"
)

func newOverlayCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Render timed text-overlay frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newOverlayBuildCommand(ctx))
	cmd.AddCommand(newOverlayPreviewCommand(ctx))

	return cmd
}

func newOverlayBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build <video-ref>",
		Short: "Render the overlay timeline for a library video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(cfg *config.Config, lib *library.Store) error {
				video, err := lib.GetByRef(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if video == nil {
					return fmt.Errorf("no library video with ref %s", args[0])
				}

				builder := overlay.NewBuilder(cfg, nil)
				frames, err := builder.Build(overlay.Job{
					VerseReference: video.VerseReference,
					VerseText:      video.VerseText,
					PrayerText:     video.PrayerText,
					ThemeSlug:      video.ThemeSlug,
					HookText:       video.HookText,
					DurationSec:    video.DurationSec,
				})
				if err != nil {
					return err
				}

				printFrames(cmd, frames)
				return nil
			})
		},
	}
}

func newOverlayPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render a sample overlay timeline for visual inspection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			builder := overlay.NewBuilder(cfg, nil)
			frames, err := builder.Build(overlay.Job{
				VerseReference: "Psalm 34:18",
				VerseText:      "The Lord is close to the brokenhearted and saves those who are crushed in spirit.",
				PrayerText: "Lord, draw near to every broken heart today. " +
					"Hold the ones who grieve and remind them they are not alone. " +
					"Give them rest tonight and hope for tomorrow. Amen.",
				ThemeSlug:   "grief",
				HookText:    "Are you carrying grief today?",
				DurationSec: 30,
			})
			if err != nil {
				return err
			}

			printFrames(cmd, frames)
			return nil
		},
	}
}

func printFrames(cmd *cobra.Command, frames []overlay.Frame) {
	out := cmd.OutOrStdout()
	for _, frame := range frames {
		fmt.Fprintf(out, "%6.2fs - %6.2fs  %s\n", frame.StartSec, frame.EndSec, frame.Path)
	}
	fmt.Fprintf(out, "Rendered %d frame(s)\n", len(frames))
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vesper/internal/config"
	"vesper/internal/library"
)

var videoFileExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
}

func newAddVideoCommand(ctx *commandContext) *cobra.Command {
	var (
		prayerText  string
		verseRef    string
		verseText   string
		themeSlug   string
		hookText    string
		durationSec float64
	)

	cmd := &cobra.Command{
		Use:   "add-video <path>",
		Short: "Register a composed video in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			info, err := os.Stat(absPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("file does not exist: %s", absPath)
				}
				return fmt.Errorf("inspect file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", absPath)
			}

			ext := strings.ToLower(filepath.Ext(info.Name()))
			if _, ok := videoFileExtensions[ext]; !ok {
				return fmt.Errorf("unsupported file extension %q", ext)
			}

			return ctx.withLibrary(func(_ *config.Config, lib *library.Store) error {
				video, err := lib.Add(cmd.Context(), library.Video{
					FilePath:       absPath,
					PrayerText:     prayerText,
					VerseReference: verseRef,
					VerseText:      verseText,
					ThemeSlug:      themeSlug,
					HookText:       hookText,
					DurationSec:    durationSec,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as %s\n", filepath.Base(absPath), video.Ref)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prayerText, "prayer", "", "Prayer text spoken in the video")
	cmd.Flags().StringVar(&verseRef, "verse-ref", "", "Verse reference (e.g. \"Psalm 23:4\")")
	cmd.Flags().StringVar(&verseText, "verse-text", "", "Full verse text")
	cmd.Flags().StringVar(&themeSlug, "theme", "", "Theme slug (e.g. grief, health)")
	cmd.Flags().StringVar(&hookText, "hook", "", "Hook question shown at the top of the overlay")
	cmd.Flags().Float64Var(&durationSec, "duration", 0, "Clip duration in seconds")
	_ = cmd.MarkFlagRequired("verse-ref")
	_ = cmd.MarkFlagRequired("theme")

	return cmd
}

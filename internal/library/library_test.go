package library_test

import (
	"context"
	"testing"

	"vesper/internal/library"
	"vesper/internal/testsupport"
)

func TestAddAssignsRefAndRoundTrips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lib := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	video, err := lib.Add(ctx, library.Video{
		FilePath:       "/videos/psalm23.mp4",
		PrayerText:     "Lord walk with us through the valley",
		VerseReference: "Psalm 23:4",
		VerseText:      "Even though I walk through the darkest valley",
		ThemeSlug:      "grief",
		HookText:       "Are you walking through a valley?",
		DurationSec:    42.5,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if video.Ref == "" {
		t.Fatal("expected a generated ref")
	}

	fetched, err := lib.GetByRef(ctx, video.Ref)
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("video not found after Add")
	}
	if fetched.VerseReference != "Psalm 23:4" || fetched.ThemeSlug != "grief" {
		t.Fatalf("unexpected video: %#v", fetched)
	}
	if fetched.DurationSec != 42.5 {
		t.Fatalf("duration = %v, want 42.5", fetched.DurationSec)
	}
}

func TestAddValidatesRequiredFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lib := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	cases := []struct {
		name  string
		video library.Video
	}{
		{"missing file path", library.Video{VerseReference: "Psalm 1:1", ThemeSlug: "faith-doubts"}},
		{"missing verse reference", library.Video{FilePath: "/v.mp4", ThemeSlug: "faith-doubts"}},
		{"missing theme", library.Video{FilePath: "/v.mp4", VerseReference: "Psalm 1:1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := lib.Add(ctx, tc.video); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetByRefMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lib := testsupport.MustOpenLibrary(t, cfg)

	video, err := lib.GetByRef(context.Background(), "no-such-ref")
	if err != nil {
		t.Fatalf("GetByRef failed: %v", err)
	}
	if video != nil {
		t.Fatalf("expected nil for unknown ref, got %#v", video)
	}
}

func TestListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	lib := testsupport.MustOpenLibrary(t, cfg)
	ctx := context.Background()

	for _, ref := range []string{"older", "newer"} {
		if _, err := lib.Add(ctx, library.Video{
			Ref:            ref,
			FilePath:       "/videos/" + ref + ".mp4",
			VerseReference: "Psalm 1:1",
			ThemeSlug:      "legacy",
		}); err != nil {
			t.Fatalf("Add %s failed: %v", ref, err)
		}
	}

	videos, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("videos = %d, want 2", len(videos))
	}
	if videos[0].Ref != "newer" {
		t.Fatalf("first listed = %s, want newer", videos[0].Ref)
	}
}

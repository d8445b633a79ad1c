package overlay_test

import (
	"fmt"
	"image"
	"strings"
	"testing"

	"vesper/internal/overlay"
	"vesper/internal/testsupport"
)

type memWriter struct {
	images map[string]image.Image
}

func newMemWriter() *memWriter {
	return &memWriter{images: make(map[string]image.Image)}
}

func (m *memWriter) WriteImage(path string, img image.Image) error {
	m.images[path] = img
	return nil
}

func prayerOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestBuildRendersOneFramePerChunk(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writer := newMemWriter()
	builder := overlay.NewBuilder(cfg, writer)

	frames, err := builder.Build(overlay.Job{
		VerseReference: "Psalm 34:18",
		PrayerText:     prayerOfWords(150),
		ThemeSlug:      "grief",
		HookText:       "Are you carrying grief today?",
		DurationSec:    65.0,
		Width:          540,
		Height:         960,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(frames) != 50 {
		t.Fatalf("frames = %d, want 50", len(frames))
	}
	if frames[0].StartSec != 0 {
		t.Fatalf("first start = %v, want 0", frames[0].StartSec)
	}
	if frames[len(frames)-1].EndSec != 65.0 {
		t.Fatalf("final end = %v, want exactly 65.0", frames[len(frames)-1].EndSec)
	}

	if !strings.HasSuffix(frames[0].Path, "grief_chunk_000.png") {
		t.Fatalf("first frame path = %q", frames[0].Path)
	}
	if !strings.HasSuffix(frames[49].Path, "grief_chunk_049.png") {
		t.Fatalf("last frame path = %q", frames[49].Path)
	}
	if len(writer.images) != 50 {
		t.Fatalf("written images = %d, want 50", len(writer.images))
	}
	for _, frame := range frames {
		if _, ok := writer.images[frame.Path]; !ok {
			t.Fatalf("frame %q was not written", frame.Path)
		}
	}
}

func TestBuildFramePathsAreDeterministic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	builder := overlay.NewBuilder(cfg, newMemWriter())

	first := builder.FramePath("grief", 0)
	again := builder.FramePath("grief", 0)
	if first != again {
		t.Fatalf("frame path changed between calls: %q vs %q", first, again)
	}
	if !strings.HasPrefix(first, cfg.Paths.OverlayDir) {
		t.Fatalf("frame path %q not under overlay dir %q", first, cfg.Paths.OverlayDir)
	}
}

func TestBuildKeepsTextInsideSafeZones(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writer := newMemWriter()
	builder := overlay.NewBuilder(cfg, writer)

	frames, err := builder.Build(overlay.Job{
		VerseReference: "Isaiah 41:10",
		PrayerText:     "Do not fear for I am with you always",
		ThemeSlug:      "health",
		HookText:       "Do you need healing today?",
		DurationSec:    10.0,
		Width:          540,
		Height:         960,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, frame := range frames {
		img := writer.images[frame.Path]
		if pt, bad := overlay.SafeZoneViolation(img); bad {
			t.Fatalf("frame %d draws inside a reserved band at %v", frame.ChunkIndex, pt)
		}
	}

	// The canvas must not be empty: at least one opaque pixel between the bands.
	img := writer.images[frames[0].Path]
	bounds := img.Bounds()
	found := false
	for y := bounds.Min.Y; y < bounds.Max.Y && !found; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("frame rendered fully transparent")
	}
}

func TestBuildRejectsBadJobs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	builder := overlay.NewBuilder(cfg, newMemWriter())

	if _, err := builder.Build(overlay.Job{PrayerText: "a b c", DurationSec: 5}); err == nil {
		t.Fatal("expected error for missing theme slug")
	}
	if _, err := builder.Build(overlay.Job{ThemeSlug: "grief", PrayerText: "a b c"}); err == nil {
		t.Fatal("expected error for non-positive duration")
	}
	if _, err := builder.Build(overlay.Job{ThemeSlug: "grief", PrayerText: "  ", DurationSec: 5}); err == nil {
		t.Fatal("expected error for empty prayer text")
	}
}

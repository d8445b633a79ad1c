package overlay

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"vesper/internal/config"
)

// Job describes one overlay build: the text to lay out and the clip it must
// cover. Width and Height default to the builder's configured dimensions.
type Job struct {
	VerseReference string
	VerseText      string
	PrayerText     string
	ThemeSlug      string
	HookText       string
	DurationSec    float64
	Width          int
	Height         int
}

// Frame is one rendered chunk: the PNG on disk and the window of the clip it
// should be composited over.
type Frame struct {
	Path       string
	StartSec   float64
	EndSec     float64
	ChunkIndex int
}

// Builder renders overlay timelines into a fixed output directory.
type Builder struct {
	outputDir string
	width     int
	height    int
	ctas      map[string]string
	writer    ImageWriter
}

// NewBuilder wires a Builder from config. A nil writer gets the PNG disk
// writer.
func NewBuilder(cfg *config.Config, writer ImageWriter) *Builder {
	if writer == nil {
		writer = PNGWriter{}
	}
	return &Builder{
		outputDir: cfg.Paths.OverlayDir,
		width:     cfg.Overlay.Width,
		height:    cfg.Overlay.Height,
		ctas:      cfg.Overlay.CTAOverrides,
		writer:    writer,
	}
}

// FramePath returns the deterministic path of a chunk's frame. Rebuilding the
// same theme overwrites the same files; frames left over from a longer prior
// prayer are not removed here, callers composite only the frames a build
// returns.
func (b *Builder) FramePath(themeSlug string, chunkIndex int) string {
	return filepath.Join(b.outputDir, fmt.Sprintf("%s_chunk_%03d.png", themeSlug, chunkIndex))
}

// Build renders one frame per three-word chunk of the prayer text and returns
// the frames with their composite windows. Window ends telescope so that the
// final frame ends exactly at the job duration.
func (b *Builder) Build(job Job) ([]Frame, error) {
	if job.ThemeSlug == "" {
		return nil, errors.New("overlay job needs a theme slug")
	}
	if job.DurationSec <= 0 {
		return nil, fmt.Errorf("overlay job duration must be positive, got %g", job.DurationSec)
	}
	chunks := SplitChunks(job.PrayerText)
	if len(chunks) == 0 {
		return nil, errors.New("overlay job has no prayer text")
	}

	width, height := job.Width, job.Height
	if width <= 0 {
		width = b.width
	}
	if height <= 0 {
		height = b.height
	}

	faces, err := newFaceSet(height)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(chunks))
	for i, chunk := range chunks {
		counts[i] = len(strings.Fields(chunk))
	}
	windows := AllocateWindows(counts, job.DurationSec)

	cta := CTAFor(job.ThemeSlug, b.ctas)
	frames := make([]Frame, 0, len(chunks))
	for i, chunk := range chunks {
		img := renderFrame(job, faces, width, height, chunk, cta)
		path := b.FramePath(job.ThemeSlug, i)
		if err := b.writer.WriteImage(path, img); err != nil {
			return nil, fmt.Errorf("write frame %d: %w", i, err)
		}
		frames = append(frames, Frame{
			Path:       path,
			StartSec:   windows[i].Start,
			EndSec:     windows[i].End,
			ChunkIndex: i,
		})
	}
	return frames, nil
}

// renderFrame draws the four text regions onto a transparent canvas. Anchors
// are fractions of the frame height so every region clears the reserved top
// and bottom bands at any resolution.
func renderFrame(job Job, faces *faceSet, width, height int, chunk, cta string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	margin := width * marginRef / referenceWidth
	maxTextWidth := width - 2*margin
	shadow := height * shadowOffsetRef / referenceHeight
	if shadow < 1 {
		shadow = 1
	}

	if job.HookText != "" {
		lines := wrapText(faces.hook, job.HookText, maxTextWidth)
		drawCenteredBlock(img, faces.hook, lines, width, height/4, shadow, colorAccent)
	}

	if job.VerseReference != "" {
		refY := (height/4 + height/2) / 2
		drawCenteredBlock(img, faces.verseRef, []string{job.VerseReference}, width, refY, shadow, colorVerse)
	}

	spokenLines := wrapText(faces.spoken, chunk, maxTextWidth)
	drawCenteredBlock(img, faces.spoken, spokenLines, width, height/2, shadow, colorSpoken)

	ctaLines := wrapText(faces.cta, cta, maxTextWidth)
	drawCenteredBlock(img, faces.cta, ctaLines, width, height*7/10, shadow, colorAccent)

	return img
}

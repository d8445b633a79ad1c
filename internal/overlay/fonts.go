package overlay

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Base point sizes at the reference frame height; scaled with the job height
// so the layout keeps its proportions (and its safe-zone clearances) at any
// resolution.
const (
	hookFontSize     = 52
	verseRefFontSize = 44
	spokenFontSize   = 58
	ctaFontSize      = 36
)

var (
	fontOnce    sync.Once
	fontErr     error
	boldFont    *sfnt.Font
	regularFont *sfnt.Font
)

func loadFonts() (*sfnt.Font, *sfnt.Font, error) {
	fontOnce.Do(func() {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse bold font: %w", fontErr)
			return
		}
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse regular font: %w", fontErr)
		}
	})
	return boldFont, regularFont, fontErr
}

// faceSet holds the sized faces for one render job.
type faceSet struct {
	hook     font.Face
	verseRef font.Face
	spoken   font.Face
	cta      font.Face
}

func newFaceSet(height int) (*faceSet, error) {
	bold, regular, err := loadFonts()
	if err != nil {
		return nil, err
	}

	scale := float64(height) / float64(referenceHeight)
	sized := func(src *sfnt.Font, size float64) (font.Face, error) {
		return opentype.NewFace(src, &opentype.FaceOptions{
			Size:    size * scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	hook, err := sized(bold, hookFontSize)
	if err != nil {
		return nil, fmt.Errorf("hook face: %w", err)
	}
	verseRef, err := sized(bold, verseRefFontSize)
	if err != nil {
		return nil, fmt.Errorf("verse ref face: %w", err)
	}
	spoken, err := sized(regular, spokenFontSize)
	if err != nil {
		return nil, fmt.Errorf("spoken face: %w", err)
	}
	cta, err := sized(regular, ctaFontSize)
	if err != nil {
		return nil, fmt.Errorf("cta face: %w", err)
	}

	return &faceSet{hook: hook, verseRef: verseRef, spoken: spoken, cta: cta}, nil
}

package overlay

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Safe zones are expressed at the reference height and scaled with the frame.
// The top band is covered by platform chrome (username, follow button); the
// bottom band by the caption and action buttons.
const (
	referenceHeight   = 1920
	topSafeZoneRef    = 192 // 10% of 1920
	bottomSafeZoneRef = 384 // 20% of 1920

	referenceWidth  = 1080
	marginRef       = 60
	shadowOffsetRef = 3
)

var (
	colorAccent = color.NRGBA{R: 0xE8, G: 0xD5, B: 0xB7, A: 0xFF} // warm beige, hook + CTA
	colorVerse  = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorSpoken = color.NRGBA{R: 0xFF, G: 0xD9, B: 0x66, A: 0xFF} // golden, paces the spoken words
	colorShadow = color.NRGBA{A: 0xFF}
)

// TopSafeZone returns the reserved top band height for a frame height.
func TopSafeZone(height int) int {
	return height * topSafeZoneRef / referenceHeight
}

// BottomSafeZone returns the reserved bottom band height for a frame height.
func BottomSafeZone(height int) int {
	return height * bottomSafeZoneRef / referenceHeight
}

// SafeZoneViolation scans the reserved bands for any non-transparent pixel.
// Returns the first offending point when one exists.
func SafeZoneViolation(img image.Image) (image.Point, bool) {
	bounds := img.Bounds()
	height := bounds.Dy()
	top := bounds.Min.Y + TopSafeZone(height)
	bottom := bounds.Max.Y - BottomSafeZone(height)

	scan := func(yMin, yMax int) (image.Point, bool) {
		for y := yMin; y < yMax; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
					return image.Point{X: x, Y: y}, true
				}
			}
		}
		return image.Point{}, false
	}

	if pt, ok := scan(bounds.Min.Y, top); ok {
		return pt, true
	}
	return scan(bottom, bounds.Max.Y)
}

func textWidth(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// wrapText wraps text into lines that fit maxWidth pixels when measured
// against the face. A single word wider than maxWidth gets its own line.
func wrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current []string
	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		if textWidth(face, candidate) <= maxWidth || len(current) == 0 {
			current = append(current, word)
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func lineHeight(face font.Face) int {
	// Metrics height plus a fifth for leading.
	return face.Metrics().Height.Ceil() * 6 / 5
}

// drawTextShadowed draws one glyph run twice: offset in the shadow color
// first, then at the true position, so text stays legible over any footage.
func drawTextShadowed(dst *image.NRGBA, face font.Face, text string, x, baseline, shadowOffset int, fill color.Color) {
	shadow := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorShadow),
		Face: face,
		Dot:  fixed.P(x+shadowOffset, baseline+shadowOffset),
	}
	shadow.DrawString(text)

	main := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	main.DrawString(text)
}

// drawCenteredBlock draws lines centered horizontally with the block's top
// anchored at topY. Returns the y just below the drawn block.
func drawCenteredBlock(dst *image.NRGBA, face font.Face, lines []string, width, topY, shadowOffset int, fill color.Color) int {
	ascent := face.Metrics().Ascent.Ceil()
	lh := lineHeight(face)

	y := topY
	for _, line := range lines {
		x := (width - textWidth(face, line)) / 2
		if x < 0 {
			x = 0
		}
		drawTextShadowed(dst, face, line, x, y+ascent, shadowOffset, fill)
		y += lh
	}
	return y
}

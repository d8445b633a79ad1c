package overlay

import (
	"image"
	"testing"
)

func TestSafeZoneScaling(t *testing.T) {
	cases := []struct {
		height     int
		wantTop    int
		wantBottom int
	}{
		{1920, 192, 384},
		{960, 96, 192},
		{3840, 384, 768},
	}
	for _, tc := range cases {
		if got := TopSafeZone(tc.height); got != tc.wantTop {
			t.Fatalf("TopSafeZone(%d) = %d, want %d", tc.height, got, tc.wantTop)
		}
		if got := BottomSafeZone(tc.height); got != tc.wantBottom {
			t.Fatalf("BottomSafeZone(%d) = %d, want %d", tc.height, got, tc.wantBottom)
		}
	}
}

func TestSafeZoneViolationDetectsBandPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 1920))
	if _, bad := SafeZoneViolation(img); bad {
		t.Fatal("transparent frame must not violate")
	}

	img.Set(50, 10, colorShadow)
	pt, bad := SafeZoneViolation(img)
	if !bad {
		t.Fatal("pixel in the top band must be reported")
	}
	if pt.Y != 10 {
		t.Fatalf("violation at %v, want y=10", pt)
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	faces, err := newFaceSet(1920)
	if err != nil {
		t.Fatalf("newFaceSet failed: %v", err)
	}

	lines := wrapText(faces.spoken, "hold every broken heart close tonight", 400)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping at 400px, got %v", lines)
	}
	for _, line := range lines {
		if w := textWidth(faces.spoken, line); w > 400 {
			t.Fatalf("line %q is %dpx wide, over the 400px limit", line, w)
		}
	}

	if got := wrapText(faces.spoken, "   ", 400); got != nil {
		t.Fatalf("blank text should yield no lines, got %v", got)
	}

	// A single oversized word still gets its own line.
	huge := wrapText(faces.spoken, "supercalifragilisticexpialidocious", 10)
	if len(huge) != 1 {
		t.Fatalf("oversized word should be one line, got %v", huge)
	}
}

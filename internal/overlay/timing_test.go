package overlay_test

import (
	"math"
	"strings"
	"testing"

	"vesper/internal/overlay"
)

func TestSplitChunks(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "   ", nil},
		{"single word", "Amen", []string{"Amen"}},
		{"exact groups", "a b c d e f", []string{"a b c", "d e f"}},
		{"remainder", "a b c d e f g", []string{"a b c", "d e f", "g"}},
		{"collapses whitespace", "a  b\n c", []string{"a b c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := overlay.SplitChunks(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("chunks = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("chunk %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestAllocateWindowsProportional(t *testing.T) {
	windows := overlay.AllocateWindows([]int{3, 1}, 4.0)
	if len(windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(windows))
	}
	if windows[0].Start != 0 || math.Abs(windows[0].End-3.0) > 1e-9 {
		t.Fatalf("first window = %+v, want [0,3]", windows[0])
	}
	if windows[1].Start != windows[0].End {
		t.Fatalf("windows must share boundaries: %v then %v", windows[0], windows[1])
	}
	if windows[1].End != 4.0 {
		t.Fatalf("final end = %v, want exactly 4.0", windows[1].End)
	}
}

func TestAllocateWindowsCoversDurationExactly(t *testing.T) {
	// 150 words in threes: 50 equal windows over 65 seconds.
	counts := make([]int, 50)
	for i := range counts {
		counts[i] = 3
	}
	windows := overlay.AllocateWindows(counts, 65.0)
	if len(windows) != 50 {
		t.Fatalf("windows = %d, want 50", len(windows))
	}
	if windows[0].Start != 0 {
		t.Fatalf("first start = %v, want 0", windows[0].Start)
	}
	if windows[len(windows)-1].End != 65.0 {
		t.Fatalf("final end = %v, want exactly 65.0", windows[len(windows)-1].End)
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Start != windows[i-1].End {
			t.Fatalf("window %d starts at %v, previous ended at %v", i, windows[i].Start, windows[i-1].End)
		}
	}
	total := 0.0
	for _, w := range windows {
		total += w.End - w.Start
	}
	if total != 65.0 {
		t.Fatalf("summed duration = %v, want exactly 65.0", total)
	}
}

func TestAllocateWindowsEmpty(t *testing.T) {
	if got := overlay.AllocateWindows(nil, 10); got != nil {
		t.Fatalf("expected nil for no chunks, got %v", got)
	}
	if got := overlay.AllocateWindows([]int{0, 0}, 10); got != nil {
		t.Fatalf("expected nil for zero words, got %v", got)
	}
}

func TestCTAFor(t *testing.T) {
	if got := overlay.CTAFor("grief", nil); !strings.Contains(got, "remembering") {
		t.Fatalf("grief CTA = %q", got)
	}
	if got := overlay.CTAFor("unknown-theme", nil); got != overlay.DefaultCTA {
		t.Fatalf("fallback CTA = %q, want default", got)
	}
	overrides := map[string]string{"grief": "Custom line"}
	if got := overlay.CTAFor("grief", overrides); got != "Custom line" {
		t.Fatalf("override CTA = %q", got)
	}
}

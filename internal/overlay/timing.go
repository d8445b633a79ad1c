package overlay

import "strings"

// ChunkWords is the fixed spoken-words group size. Not configurable: the
// rapid word-by-word pacing is part of the format.
const ChunkWords = 3

// SplitChunks splits prayer text into groups of ChunkWords words; the last
// group takes the remainder (one to three words).
func SplitChunks(prayerText string) []string {
	words := strings.Fields(prayerText)
	if len(words) == 0 {
		return nil
	}
	chunks := make([]string, 0, (len(words)+ChunkWords-1)/ChunkWords)
	for i := 0; i < len(words); i += ChunkWords {
		end := i + ChunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Window is a [Start,End) slice of the target duration in seconds.
type Window struct {
	Start float64
	End   float64
}

// AllocateWindows distributes the target duration across chunks in proportion
// to each chunk's word count. Starts are the cumulative sum of prior chunk
// durations, so consecutive windows share their boundary exactly. The final
// window's end is pinned to the full duration to absorb floating-point drift.
func AllocateWindows(wordCounts []int, durationSec float64) []Window {
	if len(wordCounts) == 0 {
		return nil
	}
	total := 0
	for _, count := range wordCounts {
		total += count
	}
	if total == 0 {
		return nil
	}

	windows := make([]Window, len(wordCounts))
	cursor := 0.0
	for i, count := range wordCounts {
		start := cursor
		cursor += durationSec * float64(count) / float64(total)
		end := cursor
		if i == len(wordCounts)-1 {
			end = durationSec
		}
		windows[i] = Window{Start: start, End: end}
	}
	return windows
}

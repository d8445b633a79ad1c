// Package overlay builds the timed text-overlay frames composited over a
// video: prayer text is split into three-word chunks, each chunk gets a
// duration proportional to its word count, and every chunk is rendered as a
// transparent PNG with the hook, verse reference, spoken words, and
// call-to-action laid out inside the platform's safe zones.
package overlay

// Package library stores composed-video metadata: the file path plus the
// prayer, verse, theme, and hook content needed for captions and overlays.
package library

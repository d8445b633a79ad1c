// Package processor orchestrates one publish batch: gate check, due-item
// selection, per-item interval recheck, the external publish call, and
// outcome recording.
package processor

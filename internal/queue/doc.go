// Package queue persists scheduled publish attempts in SQLite and owns the
// status state machine governing them. Transitions are single conditional
// updates keyed on the expected prior status, so a concurrent approval and a
// processor run cannot lose each other's writes.
package queue

package processor

// ResultStatus classifies the outcome of one queue item (or of the whole
// batch, for the blocked and empty markers).
type ResultStatus string

const (
	// ResultBlocked means the gate refused the whole batch; no item was touched.
	ResultBlocked ResultStatus = "blocked"
	// ResultEmpty means there were no due items.
	ResultEmpty ResultStatus = "empty"
	// ResultSkipped means the item was left approved for a later run.
	ResultSkipped ResultStatus = "skipped"
	// ResultDryRun means the item would have been published.
	ResultDryRun ResultStatus = "dry_run"
	// ResultPublished means the external post succeeded.
	ResultPublished ResultStatus = "published"
	// ResultFailed means the item transitioned to failed.
	ResultFailed ResultStatus = "failed"
)

// Result describes what happened to one considered queue item. QueueID is
// zero for batch-level markers.
type Result struct {
	QueueID int64
	Status  ResultStatus
	Detail  string
}

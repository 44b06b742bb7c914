package model

type Report struct {
	DryRun bool
	// Matched is the count of statuses selected for deletion.
	Matched int
	// Processed is the count of statuses previewed (dry run) or attempted.
	Processed int
	Deleted   int
	Failed    int
}

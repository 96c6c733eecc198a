package store

import "time"

// timeLayout is a fixed-width UTC timestamp format. Unlike RFC3339Nano,
// it never trims trailing zeros, so text comparison in SQL orders rows
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one persisted simulation run.
type Run struct {
	Token         string
	Source        string
	CreatedAt     time.Time
	StartPosition int
	FinalPosition int
	Rotations     int
	Clicks        int64
	EndOfRotation int64
	EveryClick    int64
	Digest        string
}

// Step is one persisted rotation within a run.
type Step struct {
	RunToken      string
	Seq           int64
	Command       string
	FromPosition  int
	ToPosition    int
	ClickZeroHits int64
	EndsAtZero    bool
}

// RunFilter narrows ListRuns results. Zero values mean no constraint.
type RunFilter struct {
	// Source keeps only runs recorded with this exact source label.
	Source string

	// Since keeps only runs created at or after this instant.
	Since time.Time

	// Limit caps the number of returned runs. 0 means unlimited.
	Limit int
}

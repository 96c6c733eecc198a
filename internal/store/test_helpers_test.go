package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a file-backed store under a test temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun builds a run row with plausible classic-walk totals.
func createTestRun(token, source string, createdAt time.Time) Run {
	return Run{
		Token:         token,
		Source:        source,
		CreatedAt:     createdAt,
		StartPosition: 50,
		FinalPosition: 32,
		Rotations:     10,
		Clicks:        462,
		EndOfRotation: 3,
		EveryClick:    6,
		Digest:        "digest-" + token,
	}
}

// createTestSteps builds the first few steps of the classic walk.
func createTestSteps(token string) []Step {
	return []Step{
		{RunToken: token, Seq: 1, Command: "L68", FromPosition: 50, ToPosition: 82, ClickZeroHits: 1, EndsAtZero: false},
		{RunToken: token, Seq: 2, Command: "L30", FromPosition: 82, ToPosition: 52, ClickZeroHits: 0, EndsAtZero: false},
		{RunToken: token, Seq: 3, Command: "R48", FromPosition: 52, ToPosition: 0, ClickZeroHits: 1, EndsAtZero: true},
	}
}

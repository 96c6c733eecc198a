package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestGetRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 25, 9, 30, 0, 123456789, time.UTC)
	want := createTestRun("run-1", "assets/puzzle_input", created)

	if err := s.SaveRun(ctx, want, nil); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}

	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v (nanosecond precision must survive)", got.CreatedAt, created)
	}
	// Compare the rest field-wise; time.Time is not == comparable across
	// a format/parse round trip.
	got.CreatedAt = time.Time{}
	want.CreatedAt = time.Time{}
	if got != want {
		t.Errorf("GetRun() = %+v, want %+v", got, want)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetRun(context.Background(), "absent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRun() error = %v, want sql.ErrNoRows", err)
	}
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Fatal("ListRuns() returned nil, want empty slice")
	}
	if len(runs) != 0 {
		t.Errorf("len = %d, want 0", len(runs))
	}
}

func TestListRuns_NewestFirstWithTokenTiebreak(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	// Two runs share a timestamp; the token breaks the tie.
	for _, r := range []Run{
		createTestRun("run-b", "x", base),
		createTestRun("run-a", "x", base),
		createTestRun("run-c", "x", base.Add(time.Minute)),
	} {
		if err := s.SaveRun(ctx, r, nil); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", r.Token, err)
		}
	}

	runs, err := s.ListRuns(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}

	want := []string{"run-c", "run-a", "run-b"}
	if len(runs) != len(want) {
		t.Fatalf("len = %d, want %d", len(runs), len(want))
	}
	for i, token := range want {
		if runs[i].Token != token {
			t.Errorf("runs[%d].Token = %q, want %q", i, runs[i].Token, token)
		}
	}
}

func TestListRuns_FilterBySource(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if err := s.SaveRun(ctx, createTestRun("run-1", "assets/puzzle_input", base), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, createTestRun("run-2", "scenario:classic", base.Add(time.Second)), nil); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(ctx, RunFilter{Source: "scenario:classic"})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len = %d, want 1", len(runs))
	}
	if runs[0].Token != "run-2" {
		t.Errorf("token = %q, want run-2", runs[0].Token)
	}
}

func TestListRuns_FilterSince(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if err := s.SaveRun(ctx, createTestRun("run-old", "x", base), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, createTestRun("run-new", "x", base.Add(time.Hour)), nil); err != nil {
		t.Fatal(err)
	}

	// Since is inclusive.
	runs, err := s.ListRuns(ctx, RunFilter{Since: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Token != "run-new" {
		t.Errorf("runs = %+v, want just run-new", runs)
	}
}

func TestListRuns_Limit(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i, token := range []string{"run-1", "run-2", "run-3"} {
		r := createTestRun(token, "x", base.Add(time.Duration(i)*time.Second))
		if err := s.SaveRun(ctx, r, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, RunFilter{Limit: 2})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	// Newest two
	if runs[0].Token != "run-3" || runs[1].Token != "run-2" {
		t.Errorf("tokens = %q, %q, want run-3, run-2", runs[0].Token, runs[1].Token)
	}
}

func TestListRuns_CombinedFilters(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i, token := range []string{"run-1", "run-2", "run-3", "run-4"} {
		source := "a"
		if i%2 == 1 {
			source = "b"
		}
		r := createTestRun(token, source, base.Add(time.Duration(i)*time.Minute))
		if err := s.SaveRun(ctx, r, nil); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.ListRuns(ctx, RunFilter{Source: "b", Since: base.Add(2 * time.Minute), Limit: 5})
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Token != "run-4" {
		t.Errorf("runs = %+v, want just run-4", runs)
	}
}

func TestListSteps_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1", "x", time.Now())
	steps := createTestSteps("run-1")
	if err := s.SaveRun(ctx, run, steps); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := s.ListSteps(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListSteps() failed: %v", err)
	}

	if len(got) != len(steps) {
		t.Fatalf("len = %d, want %d", len(got), len(steps))
	}
	for i := range steps {
		if got[i] != steps[i] {
			t.Errorf("steps[%d] = %+v, want %+v", i, got[i], steps[i])
		}
	}
}

func TestListSteps_UnknownToken(t *testing.T) {
	s := createTestStore(t)

	steps, err := s.ListSteps(context.Background(), "absent")
	if err != nil {
		t.Fatalf("ListSteps() failed: %v", err)
	}
	if steps == nil {
		t.Fatal("ListSteps() returned nil, want empty slice")
	}
	if len(steps) != 0 {
		t.Errorf("len = %d, want 0", len(steps))
	}
}

func TestListRunTokens_OldestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i, token := range []string{"run-c", "run-a"} {
		r := createTestRun(token, "x", base.Add(time.Duration(i)*time.Second))
		if err := s.SaveRun(ctx, r, nil); err != nil {
			t.Fatal(err)
		}
	}

	tokens, err := s.ListRunTokens(ctx)
	if err != nil {
		t.Fatalf("ListRunTokens() failed: %v", err)
	}

	want := []string{"run-c", "run-a"}
	if len(tokens) != len(want) {
		t.Fatalf("len = %d, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], want[i])
		}
	}
}

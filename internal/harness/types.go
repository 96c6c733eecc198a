package harness

import "github.com/safedial/safedial/internal/engine"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every pinned expectation matched and the persisted rows
	// reproduce the computed trace.
	Pass bool `json:"pass"`

	// Errors contains expectation failures and cross-check mismatches.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Run is the executed run, including its trace and digest.
	Run *engine.Run `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

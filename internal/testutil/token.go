package testutil

// DefaultRunToken is the run token scenarios fall back to when none is
// configured. Golden snapshots are keyed on it staying stable.
const DefaultRunToken = "test-run-default"

// FixedTokenGenerator generates the same run token every time.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with the same FixedTokenGenerator produces
// byte-identical run records.
//
// Unlike engine.FixedGenerator which returns tokens in sequence, this
// generator always returns the same token. Scenarios execute a single run,
// so one constant token is all they need.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a new fixed run token generator.
//
// The token is typically set in the scenario YAML:
//
//	run_token: "classic-sample-0001"
//
// If token is empty, Generate() returns DefaultRunToken.
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements engine.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}

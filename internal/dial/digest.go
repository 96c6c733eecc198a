package dial

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTrace is the domain prefix for trace digests. The version suffix
// allows future algorithm migration without colliding with old digests.
const DomainTrace = "safedial/trace/v1"

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TraceDigest computes the content-addressed digest of a trace. The
// digest covers the start and final positions, both policy counts, and
// every step; it deliberately excludes run tokens and timestamps, so the
// same command sequence always produces the same digest across runs,
// restarts, and replays.
func TraceDigest(t *Trace) (string, error) {
	canonical, err := MarshalCanonical(t.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("trace digest: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// CanonicalMap converts the trace to the map form MarshalCanonical
// accepts. Marshaling this map yields the exact bytes TraceDigest
// hashes, which makes stored snapshots auditable against digests.
func (t *Trace) CanonicalMap() map[string]any {
	steps := make([]any, len(t.Steps))
	for i, s := range t.Steps {
		steps[i] = map[string]any{
			"seq":             s.Seq,
			"command":         s.Command.String(),
			"from":            s.From,
			"to":              s.To,
			"click_zero_hits": s.ClickZeroHits,
			"ends_at_zero":    s.EndsAtZero,
		}
	}
	return map[string]any{
		"start":           t.Start,
		"final":           t.Final,
		"rotations":       t.Rotations,
		"clicks":          t.Clicks,
		"end_of_rotation": t.EndOfRotation,
		"every_click":     t.EveryClick,
		"steps":           steps,
	}
}

// MustTraceDigest is like TraceDigest but panics on error. Marshaling a
// trace built by Run cannot fail; use this when that is known.
func MustTraceDigest(t *Trace) string {
	digest, err := TraceDigest(t)
	if err != nil {
		panic(err)
	}
	return digest
}

package dial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pinned digests guard the canonical form. If one of these changes, the
// wire format changed and every stored run is invalidated; bump
// DomainTrace instead of updating the constant.
const (
	classicDigest = "03d3e7b5a389265085494232dc077da8d129c17aaa92fda734c8aa6b43d16b3f"
	emptyDigest   = "1d0942a5fd163929d2cf9ae718dc6294227c2690c0bb2471faac206bda64c753"
)

func TestTraceDigest_Classic(t *testing.T) {
	trace := Run(classicCommands(t))
	digest, err := TraceDigest(trace)
	require.NoError(t, err)
	assert.Equal(t, classicDigest, digest)
}

func TestTraceDigest_Empty(t *testing.T) {
	digest, err := TraceDigest(Run(nil))
	require.NoError(t, err)
	assert.Equal(t, emptyDigest, digest)
}

func TestTraceDigest_Deterministic(t *testing.T) {
	first, err := TraceDigest(Run(classicCommands(t)))
	require.NoError(t, err)
	second, err := TraceDigest(Run(classicCommands(t)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestTraceDigest_SensitiveToSteps(t *testing.T) {
	base := Run(classicCommands(t))
	baseDigest := MustTraceDigest(base)

	perturbed := Run(classicCommands(t))
	perturbed.Steps[4].ClickZeroHits++
	assert.NotEqual(t, baseDigest, MustTraceDigest(perturbed),
		"a changed click count must change the digest")

	perturbed = Run(classicCommands(t))
	perturbed.Final = 33
	assert.NotEqual(t, baseDigest, MustTraceDigest(perturbed),
		"a changed final position must change the digest")
}

func TestTraceDigest_DistinguishesSequences(t *testing.T) {
	a := MustTraceDigest(Run([]RotationCommand{mustCommand(t, "R50")}))
	b := MustTraceDigest(Run([]RotationCommand{mustCommand(t, "L50")}))
	assert.NotEqual(t, a, b, "R50 and L50 both land on 0 but walk differently")
}

func TestMustTraceDigest_MatchesTraceDigest(t *testing.T) {
	trace := Run(classicCommands(t))
	want, err := TraceDigest(trace)
	require.NoError(t, err)
	assert.Equal(t, want, MustTraceDigest(trace))
}

func TestHashWithDomain_BoundaryUnambiguous(t *testing.T) {
	// The null separator keeps ("ab","c") and ("a","bc") apart.
	assert.NotEqual(t,
		hashWithDomain("ab", []byte("c")),
		hashWithDomain("a", []byte("bc")))
}

func TestTraceDigest_CoversCanonicalMap(t *testing.T) {
	trace := Run(classicCommands(t))

	canonical, err := MarshalCanonical(trace.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, hashWithDomain(DomainTrace, canonical), MustTraceDigest(trace))
}

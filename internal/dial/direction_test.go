package dial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection_Right(t *testing.T) {
	d, err := ParseDirection('R')
	require.NoError(t, err)
	assert.Equal(t, Right, d)
}

func TestParseDirection_Left(t *testing.T) {
	d, err := ParseDirection('L')
	require.NoError(t, err)
	assert.Equal(t, Left, d)
}

func TestParseDirection_Unsupported(t *testing.T) {
	_, err := ParseDirection('X')
	require.Error(t, err)

	var dirErr *UnsupportedDirectionError
	require.True(t, errors.As(err, &dirErr), "error should be UnsupportedDirectionError")
	assert.Equal(t, 'X', dirErr.Direction)
	assert.Equal(t, "unsupported direction 'X'", err.Error())
}

func TestParseDirection_LowercaseRejected(t *testing.T) {
	// The grammar is case-sensitive: only 'L' and 'R' are directions.
	_, err := ParseDirection('r')
	assert.Error(t, err, "lowercase 'r' is not a valid direction")

	_, err = ParseDirection('l')
	assert.Error(t, err, "lowercase 'l' is not a valid direction")
}

func TestDirection_Literal(t *testing.T) {
	assert.Equal(t, "R", Right.Literal())
	assert.Equal(t, "L", Left.Literal())
	assert.Equal(t, "R", Right.String())
	assert.Equal(t, "L", Left.String())
}

func TestDirection_Delta(t *testing.T) {
	assert.Equal(t, 1, Right.Delta(), "right turns toward higher numbers")
	assert.Equal(t, -1, Left.Delta(), "left turns toward lower numbers")
}

func TestDirection_IsValid(t *testing.T) {
	assert.True(t, Left.IsValid())
	assert.True(t, Right.IsValid())
	assert.False(t, Direction(2).IsValid())
	assert.False(t, Direction(-1).IsValid())
}

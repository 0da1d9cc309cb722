package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidIDs(t *testing.T) {
	require.True(t, validIDs("6f1c2b0e-9a7d-4c53-8d0e-3f2b1a4c5d6e"))
	require.True(t, validIDs())
	require.False(t, validIDs("6f1c2b0e-9a7d-4c53-8d0e-3f2b1a4c5d6e", "ghost"))
	require.False(t, validIDs(""))
}

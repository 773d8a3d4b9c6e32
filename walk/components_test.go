// SPDX-License-Identifier: MIT

package walk_test

import (
	"testing"

	"github.com/katalvlaran/asgdnmf/builder"
	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/walk"
	"github.com/stretchr/testify/require"
)

func TestComponents(t *testing.T) {
	x, err := matrix.FromEdges([]matrix.Edge{{From: 0, To: 1}, {From: 2, To: 3}, {From: 3, To: 4}, {From: 6, To: 6}})
	require.NoError(t, err)

	count, comp, err := walk.Components(x)
	require.NoError(t, err)
	require.Equal(t, 4, count) // {0,1} {2,3,4} {5} {6}
	require.Equal(t, []int{0, 0, 1, 1, 1, 2, 3}, comp)

	_, _, err = walk.Components(nil)
	require.ErrorIs(t, err, walk.ErrNilAdjacency)
}

func TestComponentsConnected(t *testing.T) {
	x := mustSparse(t, builder.Cycle(12))
	count, _, err := walk.Components(x)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

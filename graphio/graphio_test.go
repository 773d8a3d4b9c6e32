// SPDX-License-Identifier: MIT

package graphio_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/asgdnmf/graphio"
	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/stretchr/testify/require"
)

func TestReadEdgeList(t *testing.T) {
	unit := []matrix.Edge{{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: 1}}
	tests := []struct {
		name     string
		input    string
		weighted bool
		want     []matrix.Edge
	}{
		{"csv", "0,1\n1,2\n", false, unit},
		{"csv-header", "source,target\n0,1\n1,2\n", false, unit},
		{"csv-spaces", "# karate\n0, 1\n\n1, 2\n", false, unit},
		{"whitespace", "0 1\n1\t2\n", false, unit},
		{"whitespace-comments", "# comment\n\n0   1\n  1 2  \n", false, unit},
		{"weight-ignored", "0 1 5\n1 2 7\n", false, unit},
		{"weighted", "u,v,w\n0,1,0.5\n1,2,3\n", true,
			[]matrix.Edge{{From: 0, To: 1, Weight: 0.5}, {From: 1, To: 2, Weight: 3}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := graphio.ReadEdgeList(strings.NewReader(tc.input), tc.weighted)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestReadEdgeListErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		weighted bool
		want     error
	}{
		{"empty", "", false, graphio.ErrNoEdges},
		{"only-header", "source,target\n", false, graphio.ErrNoEdges},
		{"one-column", "0\n", false, graphio.ErrBadRecord},
		{"four-columns", "0 1 2 3\n", false, graphio.ErrBadRecord},
		{"bad-int", "0,1\nx,2\n", false, graphio.ErrBadRecord},
		{"missing-weight", "0 1\n", true, graphio.ErrBadRecord},
		{"bad-weight", "0 1 heavy\n", true, graphio.ErrBadRecord},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := graphio.ReadEdgeList(strings.NewReader(tc.input), tc.weighted)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBadRecordLine(t *testing.T) {
	_, err := graphio.ReadEdgeList(strings.NewReader("# c\n0 1\n1 x\n"), false)
	require.ErrorIs(t, err, graphio.ErrBadRecord)
	require.Contains(t, err.Error(), "line 3")
}

func TestEdgeListRoundTrip(t *testing.T) {
	edges := []matrix.Edge{{From: 0, To: 3, Weight: 0.25}, {From: 2, To: 1, Weight: 4}}
	path := filepath.Join(t.TempDir(), "out", "edges.csv")
	require.NoError(t, graphio.WriteFile(path, func(w io.Writer) error {
		return graphio.WriteEdgeList(w, edges, true)
	}))

	got, err := graphio.ReadEdgeListFile(path, true)
	require.NoError(t, err)
	require.Equal(t, edges, got)

	_, err = graphio.ReadEdgeListFile(filepath.Join(t.TempDir(), "nope"), false)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, graphio.WriteLabels(&buf, []int{1, 0, 1}))
	require.Equal(t, "node,community\n0,1\n1,0\n2,1\n", buf.String())
}

func TestWriteFactors(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{0.5, 1, 0, 2.25})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, graphio.WriteFactors(&buf, m))
	require.Equal(t, "node,c0,c1\n0,0.5,1\n1,0,2.25\n", buf.String())

	require.ErrorIs(t, graphio.WriteFactors(&buf, nil), matrix.ErrNilMatrix)
}

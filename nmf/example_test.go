// SPDX-License-Identifier: MIT

package nmf_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/asgdnmf/matrix"
	"github.com/katalvlaran/asgdnmf/nmf"
)

// ExampleModel_Fit factorizes a 4-node ring into rank-2 factors.
func ExampleModel_Fit() {
	x, err := matrix.FromEdges([]matrix.Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 0},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	m, err := nmf.New(2,
		nmf.WithBatchSize(4),
		nmf.WithWarpProb(1),
		nmf.WithIterPerNode(50),
		nmf.WithWorkers(1),
		nmf.WithSeed(1),
		nmf.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := m.Fit(context.Background(), x)
	if err != nil {
		fmt.Println(err)
		return
	}
	r, c := res.Factors.W().Shape()
	fmt.Printf("W: %dx%d\n", r, c)
	fmt.Println("max iter:", res.Stats.MaxIter)
	fmt.Println("labels:", len(res.Factors.CommunityLabels()))
	// Output:
	// W: 4x2
	// max iter: 50
	// labels: 4
}

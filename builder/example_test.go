// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/asgdnmf/builder"
)

// ExampleBuildSparse builds the 4-node ring used in factorization smoke tests.
func ExampleBuildSparse() {
	x, err := builder.BuildSparse(nil, builder.Cycle(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("nodes:", x.N(), "stored:", x.NNZ(), "total weight:", x.Sum())

	// Output:
	// nodes: 4 stored: 8 total weight: 8
}

// SPDX-License-Identifier: MIT

package shuffle_test

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/asgdnmf/shuffle"
)

func ExampleBuffer() {
	buf, _ := shuffle.New[int](3, shuffle.WithSeed(7))
	for i := 1; i <= 3; i++ {
		_ = buf.Put(i * 10)
	}
	buf.Close()

	var out []int
	for {
		v, err := buf.Take()
		if err != nil {
			break
		}
		out = append(out, v)
	}
	sort.Ints(out)
	fmt.Println(out)

	// Output:
	// [10 20 30]
}

// SPDX-License-Identifier: MIT

package shuffle

import (
	"math/rand"
	"time"
)

// Option configures a Buffer. Constructors panic on programmer error.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed makes the retrieval order reproducible for a fixed sequence of
// Put/Take calls.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the random source. The buffer serializes access to it.
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("shuffle: WithRand(nil)")
	}

	return func(o *options) { o.rng = r }
}

func gatherOptions(opts ...Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return o
}

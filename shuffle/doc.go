// SPDX-License-Identifier: MIT

// Package shuffle provides Buffer, a bounded, goroutine-safe container that
// hands out its elements in uniformly random order.
//
// Producers block in Put while the buffer is full; consumers block in Take
// while it is empty. Close wakes everybody: further Puts fail with ErrClosed,
// Takes keep draining what is left and then fail with ErrClosed.
//
// Backpressure, not loss: nothing is ever dropped.
//
//	buf, _ := shuffle.New[int](8, shuffle.WithSeed(1))
//	go func() { for i := 0; i < 100; i++ { _ = buf.Put(i) }; buf.Close() }()
//	for {
//		v, err := buf.Take()
//		if err != nil { break }
//		_ = v
//	}
package shuffle

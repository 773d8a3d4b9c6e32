// SPDX-License-Identifier: MIT

// Command asgdnmf factorizes graphs from edge-list files and generates
// planted-partition test graphs.
//
//	asgdnmf synth --communities 4 --size 50 --out graph.csv --labels-out truth.csv
//	asgdnmf fit --edges graph.csv --rank 4 --labels-out labels.csv
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/asgdnmf/builder"
	"github.com/katalvlaran/asgdnmf/graphio"
)

type synthFlags struct {
	communities int
	size        int
	pIn, pOut   float64
	seed        int64
	out         string
	labelsOut   string
	weight      string
}

var errBadWeight = errors.New("synth: invalid --weight")

// weightOption parses "const:V", "uniform:MIN,MAX" or "exp:RATE". An empty
// spec keeps unit weights and reports weighted=false.
func weightOption(spec string) (opt builder.BuilderOption, weighted bool, err error) {
	if spec == "" {
		return nil, false, nil
	}
	kind, args, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", errBadWeight, spec)
	}
	var vals []float64
	for _, a := range strings.Split(args, ",") {
		v, perr := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false, fmt.Errorf("%w: %q", errBadWeight, spec)
		}
		vals = append(vals, v)
	}

	switch {
	case kind == "const" && len(vals) == 1 && vals[0] > 0:
		return builder.WithConstantWeight(vals[0]), true, nil
	case kind == "uniform" && len(vals) == 2 && vals[0] > 0 && vals[1] >= vals[0]:
		return builder.WithUniformWeight(vals[0], vals[1]), true, nil
	case kind == "exp" && len(vals) == 1 && vals[0] > 0:
		return builder.WithExponentialWeight(vals[0]), true, nil
	}

	return nil, false, fmt.Errorf("%w: %q", errBadWeight, spec)
}

func newSynthCmd(rf *rootFlags) *cobra.Command {
	sf := &synthFlags{}
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a planted-partition graph and its ground-truth labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSynth(cmd, rf, sf)
		},
	}
	f := cmd.Flags()
	f.IntVar(&sf.communities, "communities", 4, "number of planted communities")
	f.IntVar(&sf.size, "size", 25, "nodes per community")
	f.Float64Var(&sf.pIn, "p-in", 0.3, "edge probability inside a community")
	f.Float64Var(&sf.pOut, "p-out", 0.01, "edge probability across communities")
	f.Int64Var(&sf.seed, "seed", 1, "random seed")
	f.StringVar(&sf.out, "out", "", "edge list output file")
	f.StringVar(&sf.labelsOut, "labels-out", "", "ground-truth labels output file")
	f.StringVar(&sf.weight, "weight", "", "edge weights: const:V, uniform:MIN,MAX or exp:RATE (unit weights when empty)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runSynth(cmd *cobra.Command, rf *rootFlags, sf *synthFlags) error {
	logger, err := rf.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	wopt, weighted, err := weightOption(sf.weight)
	if err != nil {
		return err
	}
	opts := []builder.BuilderOption{builder.WithSeed(sf.seed)}
	if wopt != nil {
		opts = append(opts, wopt)
	}
	el, err := builder.BuildEdges(opts, builder.PlantedPartition(sf.communities, sf.size, sf.pIn, sf.pOut))
	if err != nil {
		return err
	}
	if err = graphio.WriteFile(sf.out, func(w io.Writer) error {
		return graphio.WriteEdgeList(w, el.Edges, weighted)
	}); err != nil {
		return err
	}
	if sf.labelsOut != "" {
		labels, err := builder.PlantedLabels(sf.communities, sf.size)
		if err != nil {
			return err
		}
		if err = graphio.WriteFile(sf.labelsOut, func(w io.Writer) error {
			return graphio.WriteLabels(w, labels)
		}); err != nil {
			return err
		}
	}
	logger.Info("graph written", "file", sf.out, "nodes", el.N, "edges", len(el.Edges), "weighted", weighted)
	fmt.Fprintf(cmd.OutOrStdout(), "nodes: %d edges: %d\n", el.N, len(el.Edges))

	return nil
}

// SPDX-License-Identifier: MIT

// Package builder generates deterministic integer-id graph fixtures as edge
// lists: rings, paths, grids, Erdős–Rényi graphs and planted-partition
// (stochastic block model) graphs with known communities.
//
// The package offers the following key components:
//
//   - BuildEdges / BuildSparse: run a sequence of Constructors over one id
//     space and return the edge list or the symmetric matrix.Sparse adjacency.
//   - Constructors: Cycle, Path, Grid, RandomSparse,
//     PlantedPartition (+ PlantedLabels for the ground truth).
//   - Options: WithSeed, WithRand, WithWeightFn and the weight distributions
//     (ConstantWeightFn, UniformWeightFn, ExponentialWeightFn).
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option-constructors.
//   - Sentinel runtime errors for invalid build parameters.
//   - Fixed emission order; identical output for identical seed and options.
package builder

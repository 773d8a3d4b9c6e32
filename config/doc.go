// SPDX-License-Identifier: MIT

// Package config loads factorization settings from a YAML file and NMF_*
// environment variables and turns them into nmf options.
//
// Precedence (lowest first): Default(), the YAML file, the environment.
//
//	rank: 8
//	seed: 42
//	sampling:
//	  batch_size: 64
//	  window_size: 8
//	  warp_prob: 0.1
//	  start_policy: unvisited-first
//	training:
//	  learning_rate: 0.01
//	  iter_per_node: 10
//	  buffer_factor: 10
//	  loss_report_every: 0
//	workers:
//	  samplers: 4
//	  trainers: 4
//
// Worker counts below nmf.MinWorkers (including 0, "unset") are raised to it.
package config

// SPDX-License-Identifier: MIT

// Package graphio reads edge lists and writes edge lists, community labels
// and factor matrices as CSV.
//
// Edge list input is one edge per line, "u v" or "u v w", separated by
// commas or by whitespace (detected from the first data line). Blank lines
// and lines starting with '#' are skipped; a first line whose leading field
// is not an integer is taken as a header.
package graphio

// SPDX-License-Identifier: MIT

// Package nmf - shared factor storage.
//
// Purpose:
//   - Hold the raw (signed) N×K matrices W and H that every trainer mutates
//     concurrently, and expose their non-negative views |W|, |H|.
//
// Concurrency:
//   - Each cell is an atomic.Uint64 holding float64 bits. Reads are atomic
//     loads and updates are per-cell CAS adds, so no scalar is ever torn.
//   - There is no row or matrix lock: concurrent batches touching the same
//     rows interleave freely and may read stale values.
//
// Complexity quicksheet:
//   - gather/scatter: O(B·K); W/H readout: O(N·K); GlobalLoss: O(N²·K).

package nmf

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// Factors is the shared factor store of a fit.
type Factors struct {
	n, k int
	w, h []atomic.Uint64 // row-major N×K raw values
}

// newFactors draws every raw cell from U(0, 2·scale).
func newFactors(n, k int, scale float64, r *rand.Rand) *Factors {
	f := &Factors{
		n: n,
		k: k,
		w: make([]atomic.Uint64, n*k),
		h: make([]atomic.Uint64, n*k),
	}
	hi := 2 * scale
	for i := range f.w {
		f.w[i].Store(math.Float64bits(r.Float64() * hi))
	}
	for i := range f.h {
		f.h[i].Store(math.Float64bits(r.Float64() * hi))
	}

	return f
}

// initScale returns sqrt(ΣX / (N²·K)), the mean of the initial entries.
func initScale(x *matrix.Sparse, k int) float64 {
	n := float64(x.N())

	return math.Sqrt(x.Sum() / (n * n * float64(k)))
}

// Rows returns N.
func (f *Factors) Rows() int { return f.n }

// Rank returns K.
func (f *Factors) Rank() int { return f.k }

// gather copies the raw rows idx of cells into dst (len(idx)×K, row-major).
func (f *Factors) gather(dst []float64, cells []atomic.Uint64, idx []int) {
	k := f.k
	for r, i := range idx {
		row := cells[i*k : (i+1)*k]
		out := dst[r*k : (r+1)*k]
		for c := range row {
			out[c] = math.Float64frombits(row[c].Load())
		}
	}
}

// scatterSub applies cells[idx[r], c] -= lr·grad[r, c].
func (f *Factors) scatterSub(cells []atomic.Uint64, idx []int, grad []float64, lr float64) {
	k := f.k
	for r, i := range idx {
		row := cells[i*k : (i+1)*k]
		g := grad[r*k : (r+1)*k]
		for c := range row {
			addFloat(&row[c], -lr*g[c])
		}
	}
}

// addFloat atomically adds delta to the float64 stored in cell.
func addFloat(cell *atomic.Uint64, delta float64) {
	for {
		old := cell.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if cell.CompareAndSwap(old, next) {
			return
		}
	}
}

// abs materializes |cells| as an N×K Dense.
func (f *Factors) abs(cells []atomic.Uint64) *matrix.Dense {
	data := make([]float64, len(cells))
	for i := range cells {
		data[i] = math.Abs(math.Float64frombits(cells[i].Load()))
	}
	// Shape is positive and values finite unless training diverged to ±Inf.
	m, err := matrix.NewDenseFrom(f.n, f.k, data)
	if err != nil {
		m, _ = matrix.NewDense(f.n, f.k)
		copy(m.RawData(), data)
	}

	return m
}

// W returns a copy of the effective factor |W| (N×K).
// Two calls without training in between return equal matrices.
func (f *Factors) W() *matrix.Dense { return f.abs(f.w) }

// H returns a copy of the effective factor |H| (N×K).
func (f *Factors) H() *matrix.Dense { return f.abs(f.h) }

// CommunityLabels assigns every node the column of its largest |H| entry.
// Ties resolve to the lowest column.
// Complexity: O(N·K).
func (f *Factors) CommunityLabels() []int {
	labels := make([]int, f.n)
	var best, v float64
	for i := 0; i < f.n; i++ {
		best = -1
		for c := 0; c < f.k; c++ {
			v = math.Abs(math.Float64frombits(f.h[i*f.k+c].Load()))
			if v > best {
				best = v
				labels[i] = c
			}
		}
	}

	return labels
}

// GlobalLoss returns 0.5·||X − |W|·|H|ᵗ||²_F over the whole adjacency.
// MAIN DESCRIPTION:
//   - On-demand progress metric; safe to call while trainers run (it then
//     observes a mixed snapshot).
//
// Implementation:
//   - Snapshot |W| and |H|, then for each row i compute |H|·|W_i| with
//     blas64.Gemv, subtract the sparse row X_i and accumulate the square norm.
//
// Errors:
//   - ErrNilMatrix, ErrShapeMismatch (x.N() != Rows()).
//
// Complexity:
//   - Time O(N²·K), Space O(N·K) for the snapshot plus O(N) per row.
func (f *Factors) GlobalLoss(x *matrix.Sparse) (float64, error) {
	if x == nil {
		return 0, fmt.Errorf("GlobalLoss: %w", ErrNilMatrix)
	}
	if x.N() != f.n {
		return 0, fmt.Errorf("GlobalLoss: n=%d factors=%d: %w", x.N(), f.n, ErrShapeMismatch)
	}
	w, h := f.W().RawData(), f.H().RawData()
	hg := blas64.General{Rows: f.n, Cols: f.k, Stride: f.k, Data: h}
	pred := blas64.Vector{N: f.n, Inc: 1, Data: make([]float64, f.n)}

	var loss float64
	for i := 0; i < f.n; i++ {
		wi := blas64.Vector{N: f.k, Inc: 1, Data: w[i*f.k : (i+1)*f.k]}
		blas64.Gemv(blas.NoTrans, 1, hg, wi, 0, pred)
		cols, vals, err := x.Row(i)
		if err != nil {
			return 0, fmt.Errorf("GlobalLoss: %w", err)
		}
		for p, j := range cols {
			pred.Data[j] -= vals[p]
		}
		loss += blas64.Dot(pred, pred)
	}

	return 0.5 * loss, nil
}

// SPDX-License-Identifier: MIT

package nmf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/asgdnmf/matrix"
)

// workspace holds the per-trainer scratch matrices for one batch size.
// It is owned by a single goroutine.
type workspace struct {
	b, k       int
	wRaw, hRaw *matrix.Dense // gathered signed rows
	wAbs, hAbs *matrix.Dense
	r          *matrix.Dense // residual W_s·H_sᵗ − X_s
	dW, dH     *matrix.Dense
}

func newWorkspace(b, k int) (*workspace, error) {
	ws := &workspace{b: b, k: k}
	for _, p := range []**matrix.Dense{&ws.wRaw, &ws.hRaw, &ws.wAbs, &ws.hAbs, &ws.dW, &ws.dH} {
		m, err := matrix.NewDense(b, k)
		if err != nil {
			return nil, err
		}
		*p = m
	}
	r, err := matrix.NewDense(b, b)
	if err != nil {
		return nil, err
	}
	ws.r = r

	return ws, nil
}

// step gathers the batch rows, computes the gradient and applies the
// scatter-subtract update. Returns the batch loss before the update.
func (ws *workspace) step(f *Factors, bt Batch, lr float64) (float64, error) {
	f.gather(ws.wRaw.RawData(), f.w, bt.Nodes)
	f.gather(ws.hRaw.RawData(), f.h, bt.Nodes)
	loss, err := ws.gradient(bt.Block)
	if err != nil {
		return 0, err
	}
	f.scatterSub(f.w, bt.Nodes, ws.dW.RawData(), lr)
	f.scatterSub(f.h, bt.Nodes, ws.dH.RawData(), lr)

	return loss, nil
}

// gradient fills dW, dH from wRaw, hRaw and the block x:
//
//	R  = |W_s|·|H_s|ᵗ − X_s
//	dW = R·|H_s|  ⊙ sign(W_s)
//	dH = Rᵗ·|W_s| ⊙ sign(H_s)
//
// and returns 0.5·||R||²_F.
func (ws *workspace) gradient(x *matrix.Dense) (float64, error) {
	if r, c := x.Shape(); r != ws.b || c != ws.b {
		return 0, fmt.Errorf("gradient: block %dx%d, batch %d: %w", r, c, ws.b, ErrShapeMismatch)
	}
	absInto(ws.wAbs.RawData(), ws.wRaw.RawData())
	absInto(ws.hAbs.RawData(), ws.hRaw.RawData())

	copy(ws.r.RawData(), x.RawData())
	if err := matrix.Gemm(false, true, 1, ws.wAbs, ws.hAbs, -1, ws.r); err != nil {
		return 0, err
	}
	loss := 0.5 * matrix.FrobeniusSq(ws.r)

	if err := matrix.Gemm(false, false, 1, ws.r, ws.hAbs, 0, ws.dW); err != nil {
		return 0, err
	}
	if err := matrix.Gemm(true, false, 1, ws.r, ws.wAbs, 0, ws.dH); err != nil {
		return 0, err
	}
	mulSign(ws.dW.RawData(), ws.wRaw.RawData())
	mulSign(ws.dH.RawData(), ws.hRaw.RawData())

	return loss, nil
}

func absInto(dst, src []float64) {
	for i, v := range src {
		dst[i] = math.Abs(v)
	}
}

// mulSign negates dst[i] where raw[i] < 0 (sign(0) = +1).
func mulSign(dst, raw []float64) {
	for i, v := range raw {
		if v < 0 {
			dst[i] = -dst[i]
		}
	}
}

// Gradient evaluates the batch loss and its gradients for signed factor rows
// w, h (B×K) against the block x (B×B). Inputs are not modified.
//
// Errors: ErrNilMatrix, ErrShapeMismatch.
// Complexity: O(B²·K).
func Gradient(w, h, x *matrix.Dense) (loss float64, dW, dH *matrix.Dense, err error) {
	if w == nil || h == nil || x == nil {
		return 0, nil, nil, fmt.Errorf("Gradient: %w", ErrNilMatrix)
	}
	b, k := w.Shape()
	if hr, hc := h.Shape(); hr != b || hc != k {
		return 0, nil, nil, fmt.Errorf("Gradient: h %dx%d, w %dx%d: %w", hr, hc, b, k, ErrShapeMismatch)
	}
	ws, err := newWorkspace(b, k)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("Gradient: %w", err)
	}
	copy(ws.wRaw.RawData(), w.RawData())
	copy(ws.hRaw.RawData(), h.RawData())
	if loss, err = ws.gradient(x); err != nil {
		return 0, nil, nil, fmt.Errorf("Gradient: %w", err)
	}

	return loss, ws.dW, ws.dH, nil
}

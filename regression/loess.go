// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regression

import (
	"math"
	"sort"

	"github.com/aclements/go-plotstat/internal/quantile"
)

const (
	loessIters   = 2
	loessEpsilon = 1e-12
)

// LOESS is a robust locally weighted linear regression (Cleveland
// 1979). Each point is fitted by a weighted linear regression over its
// nearest neighbours, with tricube distance weights and bisquare
// robustness weights.
type LOESS struct {
	config
	bandwidth float64
}

// NewLOESS returns a LOESS model with bandwidth 0.3.
func NewLOESS() *LOESS {
	return &LOESS{newConfig(), 0.3}
}

func (r *LOESS) WithX(x Accessor) *LOESS { r.setX(x); return r }
func (r *LOESS) WithY(y Accessor) *LOESS { r.setY(y); return r }

// WithDomain is accepted for symmetry with the other models; a LOESS
// curve only spans its data.
func (r *LOESS) WithDomain(lo, hi float64) *LOESS { r.setDomain(lo, hi); return r }

// WithBandwidth sets the fraction of points in each local window.
// It panics unless 0 < bw <= 1.
func (r *LOESS) WithBandwidth(bw float64) *LOESS {
	if !(0 < bw && bw <= 1) {
		panic("regression: LOESS bandwidth must be in (0, 1]")
	}
	r.bandwidth = bw
	return r
}

// Bandwidth returns the configured bandwidth.
func (r *LOESS) Bandwidth() float64 { return r.bandwidth }

// Curve is a smoothed curve with no closed form.
type Curve struct {
	Points []Point
}

func (c *Curve) Samples() []Point { return c.Points }

func (r *LOESS) Regress(data []interface{}) Fitted { return r.Fit(data) }

// Fit smooths data. The result has one point per distinct x, in
// increasing x order.
func (r *LOESS) Fit(data []interface{}) *Curve {
	xv, yv, ux, uy := sortedCentered(data, r.x, r.y)
	n := len(xv)
	if n == 0 {
		return &Curve{}
	}
	bw := int(r.bandwidth * float64(n))
	if bw < 2 {
		bw = 2
	}
	if bw > n {
		bw = n
	}

	yhat := make([]float64, n)
	residuals := make([]float64, n)
	robust := make([]float64, n)
	for i := range robust {
		robust[i] = 1
	}

	for iter := 0; iter <= loessIters; iter++ {
		i0, i1 := 0, bw-1
		for i := 0; i < n; i++ {
			dx := xv[i]
			edge := i1
			if dx-xv[i0] > xv[i1]-dx {
				edge = i0
			}
			dist := math.Abs(xv[edge] - dx)
			if dist == 0 {
				dist = 1
			}
			denom := 1 / dist

			var W, X, Y, XY, X2 float64
			for k := i0; k <= i1; k++ {
				xk, yk := xv[k], yv[k]
				w := tricube(math.Abs(dx-xk)*denom) * robust[k]
				xkw := xk * w
				W += w
				X += xkw
				Y += yk * w
				XY += yk * xkw
				X2 += xk * xkw
			}
			a, b := OLS(X/W, Y/W, XY/W, X2/W)
			yhat[i] = a + b*dx
			residuals[i] = math.Abs(yv[i] - yhat[i])
			i0, i1 = slideWindow(xv, i+1, i0, i1)
		}
		if iter == loessIters {
			break
		}

		med := quantile.Median(residuals)
		if math.Abs(med) < loessEpsilon {
			break
		}
		for i, res := range residuals {
			arg := res / (6 * med)
			switch w := 1 - arg*arg; {
			case arg >= 1:
				robust[i] = loessEpsilon
			case w > loessEpsilon:
				robust[i] = w * w
			default:
				robust[i] = loessEpsilon
			}
		}
	}

	// Average the fits of duplicate x values.
	var pts []Point
	cnt := 0
	for i, x := range xv {
		x += ux
		if len(pts) > 0 && pts[len(pts)-1].X == x {
			cnt++
			p := &pts[len(pts)-1]
			p.Y += (yhat[i] + uy - p.Y) / float64(cnt+1)
			continue
		}
		cnt = 0
		pts = append(pts, Point{x, yhat[i] + uy})
	}
	return &Curve{Points: pts}
}

func tricube(u float64) float64 {
	if u >= 1 {
		return 0
	}
	u = 1 - u*u*u
	return u * u * u
}

// slideWindow advances the window [i0, i1] of nearest neighbours to
// be centred on xv[i], keeping its width.
func slideWindow(xv []float64, i, i0, i1 int) (int, int) {
	if i >= len(xv) {
		return i0, i1
	}
	val := xv[i]
	left, right := i0, i1+1
	for right < len(xv) && i > left && xv[right]-val <= val-xv[left] {
		left++
		i0, i1 = left, right
		right++
	}
	return i0, i1
}

type pointSlice struct{ xs, ys []float64 }

func (p pointSlice) Len() int           { return len(p.xs) }
func (p pointSlice) Less(i, j int) bool { return p.xs[i] < p.xs[j] }
func (p pointSlice) Swap(i, j int) {
	p.xs[i], p.xs[j] = p.xs[j], p.xs[i]
	p.ys[i], p.ys[j] = p.ys[j], p.ys[i]
}

// sortedCentered returns the finite points of data sorted by x, with
// their means subtracted.
func sortedCentered(data []interface{}, x, y Accessor) (xv, yv []float64, ux, uy float64) {
	visitPoints(data, x, y, func(dx, dy float64) {
		xv = append(xv, dx)
		yv = append(yv, dy)
		n := float64(len(xv))
		ux += (dx - ux) / n
		uy += (dy - uy) / n
	})
	sort.Stable(pointSlice{xv, yv})
	for i := range xv {
		xv[i] -= ux
		yv[i] -= uy
	}
	return
}

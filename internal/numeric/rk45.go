package numeric

import "math"

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const (
	rkSafety   = 0.9
	rkMinScale = 0.2
	rkMaxScale = 10.0
)

// SolveIVP integrates the scalar ODE dy/dt = f(t, y) with adaptive
// Dormand-Prince stepping, starting from y0 at ts[0] and recording y at
// every point of ts. The grid may be descending, in which case integration
// marches backward.
func SolveIVP(f func(t, y float64) float64, ts []float64, y0, tol float64) []float64 {
	out := make([]float64, len(ts))
	out[0] = y0
	y := y0
	for i := 1; i < len(ts); i++ {
		y = marchSegment(f, ts[i-1], ts[i], y, tol)
		out[i] = y
	}
	return out
}

// marchSegment advances y from t0 to t1 with adaptive substeps.
func marchSegment(f func(t, y float64) float64, t0, t1, y, tol float64) float64 {
	t := t0
	h := t1 - t0
	for {
		remaining := t1 - t
		if remaining == 0 {
			return y
		}
		if math.Abs(h) > math.Abs(remaining) || h*remaining <= 0 {
			h = remaining
		}
		yNew, errEst := rk45Step(f, t, y, h)

		scale := math.Abs(y) + math.Abs(h*f(t, y)) + 1e-10
		errRatio := math.Abs(errEst) / scale / tol

		if errRatio <= 1 {
			t += h
			y = yNew
			if errRatio > 0 {
				h *= math.Min(rkMaxScale, rkSafety*math.Pow(errRatio, -0.2))
			} else {
				h *= rkMaxScale
			}
		} else {
			h *= math.Max(rkMinScale, rkSafety*math.Pow(errRatio, -0.25))
		}
	}
}

func rk45Step(f func(t, y float64) float64, t, y, h float64) (yNew, errEst float64) {
	k1 := f(t, y)
	k2 := f(t+a2*h, y+h*b21*k1)
	k3 := f(t+a3*h, y+h*(b31*k1+b32*k2))
	k4 := f(t+a4*h, y+h*(b41*k1+b42*k2+b43*k3))
	k5 := f(t+a5*h, y+h*(b51*k1+b52*k2+b53*k3+b54*k4))
	k6 := f(t+h, y+h*(b61*k1+b62*k2+b63*k3+b64*k4+b65*k5))

	yNew = y + h*(c1*k1+c3*k3+c4*k4+c5*k5+c6*k6)
	k7 := f(t+h, yNew)

	errEst = h * (dc1*k1 + dc3*k3 + dc4*k4 + dc5*k5 + dc6*k6 + dc7*k7)
	return yNew, errEst
}

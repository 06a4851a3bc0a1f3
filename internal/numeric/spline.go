package numeric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Spline is a fitted Akima cubic through discrete samples, with derivative
// access. Evaluation outside the fitted range extrapolates the boundary
// segment; callers that need controlled extrapolation should wrap the spline
// with TruncateSpline.
type Spline struct {
	ak       interp.AkimaSpline
	min, max float64
}

// NewSpline fits a spline through (xs, ys). xs must be strictly ascending
// with at least three points.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) < 3 {
		return nil, fmt.Errorf("spline fit requires at least 3 points, got %d", len(xs))
	}
	s := &Spline{min: xs[0], max: xs[len(xs)-1]}
	if err := s.ak.Fit(xs, ys); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSpline is NewSpline for grids already known to be valid.
func MustSpline(xs, ys []float64) *Spline {
	s, err := NewSpline(xs, ys)
	if err != nil {
		panic(err)
	}
	return s
}

// Eval returns the spline value at x.
func (s *Spline) Eval(x float64) float64 { return s.ak.Predict(x) }

// Deriv returns the spline derivative at x.
func (s *Spline) Deriv(x float64) float64 { return s.ak.PredictDerivative(x) }

// LogDeriv returns the logarithmic derivative x*f'(x)/f(x) at x.
func (s *Spline) LogDeriv(x float64) float64 {
	return x * s.Deriv(x) / s.Eval(x)
}

// Range returns the fitted domain.
func (s *Spline) Range() (min, max float64) { return s.min, s.max }

// TruncateSpline blends the spline into a power law beyond rt: inside rt the
// returned function follows f, outside it follows f(rt)*(x/rt)^gamma with
// gamma the logarithmic slope of f at rt, using a logistic blend of rate a.
// This stabilizes extrapolation of profiles past their sampled grid.
func TruncateSpline(f *Spline, rt, a float64) func(float64) float64 {
	gamma := f.LogDeriv(rt)
	frt := f.Eval(rt)
	return func(x float64) float64 {
		w := truncator(a, rt, x)
		return f.Eval(x)*w + (1.0-w)*frt*truncator(-gamma, rt, x)
	}
}

// truncator is the logistic-in-log blend 1/(1+(x/r)^a).
func truncator(a, r, x float64) float64 {
	return 1.0 / (1.0 + math.Pow(x/r, a))
}

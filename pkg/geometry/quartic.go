package geometry

import "math"

// Analytic solvers for polynomials up to degree four. The torus is the only
// primitive whose intersection reduces to a general quartic; everything else
// gets by with the quadratic case.

const rootEpsilon = 1e-9

func isZero(x float64) bool {
	return math.Abs(x) < rootEpsilon
}

// solveQuadratic returns the real roots of c2*x^2 + c1*x + c0 = 0
func solveQuadratic(c2, c1, c0 float64) []float64 {
	// Normal form: x^2 + px + q = 0
	p := c1 / (2 * c2)
	q := c0 / c2

	d := p*p - q
	if isZero(d) {
		return []float64{-p}
	}
	if d < 0 {
		return nil
	}

	sqrtD := math.Sqrt(d)
	return []float64{-sqrtD - p, sqrtD - p}
}

// solveCubic returns the real roots of c3*x^3 + c2*x^2 + c1*x + c0 = 0
// using Cardano's formula with the trigonometric branch for three real roots
func solveCubic(c3, c2, c1, c0 float64) []float64 {
	// Normal form: x^3 + Ax^2 + Bx + C = 0
	a := c2 / c3
	b := c1 / c3
	c := c0 / c3

	// Substitute x = y - A/3 to eliminate the quadratic term:
	// y^3 + 3py + 2q = 0
	sqA := a * a
	p := (-sqA/3 + b) / 3
	q := (2*sqA*a/27 - a*b/3 + c) / 2

	cbP := p * p * p
	d := q*q + cbP

	var roots []float64
	switch {
	case isZero(d):
		if isZero(q) {
			// One triple root
			roots = []float64{0}
		} else {
			// One single and one double root
			u := math.Cbrt(-q)
			roots = []float64{2 * u, -u}
		}
	case d < 0:
		// Three distinct real roots
		phi := math.Acos(-q/math.Sqrt(-cbP)) / 3
		t := 2 * math.Sqrt(-p)
		roots = []float64{
			t * math.Cos(phi),
			-t * math.Cos(phi+math.Pi/3),
			-t * math.Cos(phi-math.Pi/3),
		}
	default:
		// One real root
		sqrtD := math.Sqrt(d)
		u := math.Cbrt(sqrtD - q)
		v := -math.Cbrt(sqrtD + q)
		roots = []float64{u + v}
	}

	// Resubstitute
	sub := a / 3
	for i := range roots {
		roots[i] -= sub
	}
	return roots
}

// solveQuartic returns the real roots of
// c4*x^4 + c3*x^3 + c2*x^2 + c1*x + c0 = 0 via Ferrari's resolvent cubic
func solveQuartic(c4, c3, c2, c1, c0 float64) []float64 {
	// Normal form: x^4 + Ax^3 + Bx^2 + Cx + D = 0
	a := c3 / c4
	b := c2 / c4
	c := c1 / c4
	d := c0 / c4

	// Substitute x = y - A/4 to eliminate the cubic term:
	// y^4 + py^2 + qy + r = 0
	sqA := a * a
	p := -3.0/8.0*sqA + b
	q := sqA*a/8 - a*b/2 + c
	r := -3.0/256.0*sqA*sqA + sqA*b/16 - a*c/4 + d

	var roots []float64
	if isZero(r) {
		// No absolute term: y(y^3 + py + q) = 0
		roots = append(solveCubic(1, 0, p, q), 0)
	} else {
		// Solve the resolvent cubic and take one real root
		z := solveCubic(1, -p/2, -r, r*p/2-q*q/8)[0]

		// Build two quadratics from it
		u := z*z - r
		v := 2*z - p

		if isZero(u) {
			u = 0
		} else if u > 0 {
			u = math.Sqrt(u)
		} else {
			return nil
		}
		if isZero(v) {
			v = 0
		} else if v > 0 {
			v = math.Sqrt(v)
		} else {
			return nil
		}

		firstV := v
		if q < 0 {
			firstV = -v
		}
		roots = solveQuadratic(1, firstV, z-u)
		roots = append(roots, solveQuadratic(1, -firstV, z+u)...)
	}

	// Resubstitute
	sub := a / 4
	for i := range roots {
		roots[i] -= sub
	}
	return roots
}

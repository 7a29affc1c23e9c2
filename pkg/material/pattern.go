package material

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Pattern is the procedural color collaborator: a single-point query in
// pattern space plus the pattern's own transform. Callers convert the
// object-local point through Transform().Inverse() before querying.
type Pattern interface {
	ColorAt(patternPoint core.Tuple) core.Color
	Transform() *core.Transform
}

// basePattern carries the transform shared by all concrete patterns
type basePattern struct {
	transform *core.Transform
}

func newBasePattern() basePattern {
	return basePattern{transform: core.NewTransform(core.Identity())}
}

func (p *basePattern) Transform() *core.Transform {
	return p.transform
}

// SetTransform replaces the pattern's transform
func (p *basePattern) SetTransform(m core.Matrix) {
	p.transform = core.NewTransform(m)
}

// StripePattern alternates two colors along the x axis
type StripePattern struct {
	basePattern
	A, B core.Color
}

// NewStripePattern creates a stripe pattern
func NewStripePattern(a, b core.Color) *StripePattern {
	return &StripePattern{basePattern: newBasePattern(), A: a, B: b}
}

// ColorAt returns A for even floor(x), B for odd
func (p *StripePattern) ColorAt(point core.Tuple) core.Color {
	if int(math.Floor(point.X))%2 == 0 {
		return p.A
	}
	return p.B
}

// GradientPattern blends linearly from A to B along the x axis
type GradientPattern struct {
	basePattern
	A, B core.Color
}

// NewGradientPattern creates a gradient pattern
func NewGradientPattern(a, b core.Color) *GradientPattern {
	return &GradientPattern{basePattern: newBasePattern(), A: a, B: b}
}

// ColorAt interpolates between A and B by the fractional x distance
func (p *GradientPattern) ColorAt(point core.Tuple) core.Color {
	distance := p.B.Subtract(p.A)
	fraction := point.X - math.Floor(point.X)
	return p.A.Add(distance.Multiply(fraction))
}

// RingPattern alternates two colors in concentric rings around the y axis
type RingPattern struct {
	basePattern
	A, B core.Color
}

// NewRingPattern creates a ring pattern
func NewRingPattern(a, b core.Color) *RingPattern {
	return &RingPattern{basePattern: newBasePattern(), A: a, B: b}
}

// ColorAt returns A for even rings, B for odd
func (p *RingPattern) ColorAt(point core.Tuple) core.Color {
	distance := math.Sqrt(point.X*point.X + point.Z*point.Z)
	if int(math.Floor(distance))%2 == 0 {
		return p.A
	}
	return p.B
}

// CheckersPattern alternates two colors in a 3D checkerboard
type CheckersPattern struct {
	basePattern
	A, B core.Color
}

// NewCheckersPattern creates a checkers pattern
func NewCheckersPattern(a, b core.Color) *CheckersPattern {
	return &CheckersPattern{basePattern: newBasePattern(), A: a, B: b}
}

// ColorAt returns A when the floored coordinate sum is even, B otherwise
func (p *CheckersPattern) ColorAt(point core.Tuple) core.Color {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if int(sum)%2 == 0 {
		return p.A
	}
	return p.B
}

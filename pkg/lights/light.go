package lights

import (
	"math/rand"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Light is a positional light source. Sample returns the position used for
// the next shadow and shading query; point lights always return their fixed
// position, area lights return a jittered point on their quad.
type Light interface {
	Sample() core.Tuple
	Intensity() core.Color
}

// PointLight is a light emitting uniformly from a single point
type PointLight struct {
	Position core.Tuple
	Color    core.Color
}

// NewPointLight creates a point light
func NewPointLight(position core.Tuple, intensity core.Color) *PointLight {
	return &PointLight{Position: position, Color: intensity}
}

// Sample returns the light's fixed position
func (l *PointLight) Sample() core.Tuple {
	return l.Position
}

// Intensity returns the light's color
func (l *PointLight) Intensity() core.Color {
	return l.Color
}

// AreaLight is a rectangular light described by a corner and two edge
// vectors divided into a grid of cells. Each query samples a random point
// inside a random cell, which softens shadow edges across many rays.
type AreaLight struct {
	Corner core.Tuple
	UVec   core.Tuple // Full u edge divided into USteps cells
	VVec   core.Tuple
	USteps int
	VSteps int
	Color  core.Color
}

// NewAreaLight creates an area light over the quad spanned by uVec and vVec
func NewAreaLight(corner, uVec, vVec core.Tuple, uSteps, vSteps int, intensity core.Color) *AreaLight {
	return &AreaLight{
		Corner: corner,
		UVec:   uVec.Divide(float64(uSteps)),
		VVec:   vVec.Divide(float64(vSteps)),
		USteps: uSteps,
		VSteps: vSteps,
		Color:  intensity,
	}
}

// Sample returns a jittered point on the light's surface. The global rand
// source is safe for concurrent render workers.
func (l *AreaLight) Sample() core.Tuple {
	u := float64(rand.Intn(l.USteps)) + rand.Float64()
	v := float64(rand.Intn(l.VSteps)) + rand.Float64()
	return l.PointOn(u, v)
}

// PointOn returns the position at fractional cell coordinates (u, v)
func (l *AreaLight) PointOn(u, v float64) core.Tuple {
	return l.Corner.
		Add(l.UVec.Multiply(u)).
		Add(l.VVec.Multiply(v))
}

// Intensity returns the light's color
func (l *AreaLight) Intensity() core.Color {
	return l.Color
}

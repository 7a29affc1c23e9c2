package material

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong shading parameters of a surface plus the
// reflection/refraction coefficients consumed by the light-transport
// recursion.
type Material struct {
	Color           core.Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
	Pattern         Pattern // Optional; overrides Color when set
}

// NewMaterial creates a material with the standard defaults
func NewMaterial() Material {
	return Material{
		Color:           core.NewColor(1, 1, 1),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1,
	}
}

// NewGlassMaterial creates a transparent material with the refractive index
// of glass
func NewGlassMaterial() Material {
	m := NewMaterial()
	m.Transparency = 1
	m.RefractiveIndex = 1.5
	return m
}

// ColorAt resolves the surface color at a point in the object's local
// space, evaluating the pattern if one is attached
func (m Material) ColorAt(objectPoint core.Tuple) core.Color {
	if m.Pattern == nil {
		return m.Color
	}
	patternPoint := m.Pattern.Transform().Inverse().MultiplyTuple(objectPoint)
	return m.Pattern.ColorAt(patternPoint)
}

// Lighting computes the Phong illumination at a point: ambient plus diffuse
// and specular terms, the latter two attenuated by the light intensity
// factor (1 for fully lit, 0 for fully shadowed). The surface color must
// already be resolved via ColorAt.
func (m Material) Lighting(surface core.Color, lightPos core.Tuple, lightColor core.Color, point, eyeV, normalV core.Tuple, intensity float64) core.Color {
	effective := surface.Blend(lightColor)
	ambient := effective.Multiply(m.Ambient)

	lightV := lightPos.Subtract(point).Normalize()
	lightDotNormal := lightV.Dot(normalV)
	if lightDotNormal < 0 {
		// Light is on the far side of the surface
		return ambient
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectV := lightV.Negate().Reflect(normalV)
	reflectDotEye := reflectV.Dot(eyeV)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = lightColor.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse.Add(specular).Multiply(intensity))
}

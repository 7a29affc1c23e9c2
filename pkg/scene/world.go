package scene

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/lights"
)

// MaxDepth is the default recursion budget for reflection and refraction
const MaxDepth = 5

// World owns the arena, the top-level object identities rendered against,
// and the light sources. After construction it is read-only and safe to
// share across render workers.
type World struct {
	Arena   *Arena
	Objects []core.ObjectID
	Lights  []lights.Light
}

// NewWorld creates an empty world with a fresh arena
func NewWorld() *World {
	return &World{Arena: NewArena()}
}

// AddObject registers an arena object as a top-level member of the scene.
// Children of groups and CSG nodes must not be added; they are reached
// through their parents.
func (w *World) AddObject(id core.ObjectID) {
	w.Objects = append(w.Objects, id)
}

// AddLight adds a light source
func (w *World) AddLight(light lights.Light) {
	w.Lights = append(w.Lights, light)
}

// Intersect tests the ray against every top-level object and returns the
// merged intersections sorted ascending by t
func (w *World) Intersect(ray core.Ray) []core.Intersection {
	var xs []core.Intersection
	for _, id := range w.Objects {
		xs = append(xs, w.Arena.Intersect(id, ray)...)
	}
	core.SortIntersections(xs)
	return xs
}

// ColorAt traces a ray into the world and returns its color, recursing into
// reflections and refractions until the depth budget runs out
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := core.Hit(xs)
	if !ok {
		return core.Black
	}

	comps := w.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ShadeHit computes the color at a prepared hit: Phong surface terms for
// every light, plus the reflected and refracted contributions, blended by
// Schlick reflectance when the material is both reflective and transparent
func (w *World) ShadeHit(comps Computations, remaining int) core.Color {
	m := w.Arena.MaterialOf(comps.Object)
	objectPoint := w.Arena.WorldToObject(comps.Object, comps.OverPoint)
	surfaceColor := m.ColorAt(objectPoint)

	surface := core.Black
	for _, light := range w.Lights {
		lightPos := light.Sample()
		intensity := 1.0
		if w.IsShadowed(comps.OverPoint, lightPos) {
			intensity = 0.0
		}
		surface = surface.Add(m.Lighting(
			surfaceColor, lightPos, light.Intensity(),
			comps.OverPoint, comps.EyeV, comps.NormalV, intensity,
		))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor bounces a ray off the surface from the over point, scaled
// by the material's reflectivity. Black when the budget is spent or the
// surface is not reflective.
func (w *World) ReflectedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 {
		return core.Black
	}
	reflective := w.Arena.MaterialOf(comps.Object).Reflective
	if reflective == 0 {
		return core.Black
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAt(reflectRay, remaining-1).Multiply(reflective)
}

// RefractedColor bends a ray through the surface from the under point via
// Snell's law, scaled by the material's transparency. Total internal
// reflection yields black, not an error.
func (w *World) RefractedColor(comps Computations, remaining int) core.Color {
	if remaining <= 0 {
		return core.Black
	}
	transparency := w.Arena.MaterialOf(comps.Object).Transparency
	if transparency == 0 {
		return core.Black
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).
		Subtract(comps.EyeV.Multiply(nRatio))

	refractRay := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(refractRay, remaining-1).Multiply(transparency)
}

// IsShadowed reports whether anything blocks the segment from the point to
// the light position
func (w *World) IsShadowed(point, lightPos core.Tuple) bool {
	v := lightPos.Subtract(point)
	distance := v.Length()
	direction := v.Normalize()

	xs := w.Intersect(core.NewRay(point, direction))
	hit, ok := core.Hit(xs)
	return ok && hit.T < distance
}

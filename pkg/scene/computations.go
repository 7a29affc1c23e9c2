package scene

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Computations is the fully resolved state of one hit, precomputed once and
// read by the shading, shadow, reflection, and refraction paths.
type Computations struct {
	T      float64
	Object core.ObjectID
	Point  core.Tuple
	EyeV   core.Tuple

	NormalV  core.Tuple
	ReflectV core.Tuple
	Inside   bool

	// Epsilon-nudged points that keep secondary rays from re-hitting the
	// surface they start on: OverPoint along +normal for shadow and
	// reflection rays, UnderPoint along -normal for refraction rays.
	OverPoint  core.Tuple
	UnderPoint core.Tuple

	// Refractive indices either side of the crossing: N1 for the medium
	// the ray is leaving, N2 for the one it is entering
	N1, N2 float64
}

// PrepareComputations resolves an intersection against its ray. The full
// sorted candidate list is needed to derive N1/N2 for nested transparent
// volumes.
func (w *World) PrepareComputations(hit core.Intersection, ray core.Ray, xs []core.Intersection) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
	}

	comps.Point = ray.Position(hit.T)
	comps.EyeV = ray.Direction.Negate()
	comps.NormalV = w.Arena.NormalAt(hit.Object, comps.Point, hit)

	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Negate()
	}

	comps.ReflectV = ray.Direction.Reflect(comps.NormalV)
	offset := comps.NormalV.Multiply(core.Epsilon)
	comps.OverPoint = comps.Point.Add(offset)
	comps.UnderPoint = comps.Point.Subtract(offset)

	comps.N1, comps.N2 = w.refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks the sorted intersection list once, keeping a
// stack of the objects the ray is currently inside. N1 is read just before
// the hit toggles its object's membership, N2 just after.
func (w *World) refractiveIndices(hit core.Intersection, xs []core.Intersection) (n1, n2 float64) {
	n1, n2 = 1, 1
	containers := make([]core.ObjectID, 0, len(xs))

	for _, x := range xs {
		atHit := x == hit

		if atHit {
			if len(containers) == 0 {
				n1 = 1
			} else {
				n1 = w.Arena.MaterialOf(containers[len(containers)-1]).RefractiveIndex
			}
		}

		// Toggle membership: leaving the object if already inside it,
		// entering otherwise
		removed := false
		for i, id := range containers {
			if id == x.Object {
				containers = append(containers[:i], containers[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			containers = append(containers, x.Object)
		}

		if atHit {
			if len(containers) == 0 {
				n2 = 1
			} else {
				n2 = w.Arena.MaterialOf(containers[len(containers)-1]).RefractiveIndex
			}
			return n1, n2
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the crossing. When the
// ray is in the denser medium it first checks for total internal
// reflection, then substitutes cos(theta_t) before applying the polynomial.
func (comps Computations) Schlick() float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}

		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

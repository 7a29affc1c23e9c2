package scene

import (
	"math"
	"testing"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/lights"
	"github.com/mfortier/go-whitted-raytracer/pkg/material"
)

func assertColorNear(t *testing.T, got, expected core.Color, tolerance float64) {
	t.Helper()
	if math.Abs(got.R-expected.R) > tolerance ||
		math.Abs(got.G-expected.G) > tolerance ||
		math.Abs(got.B-expected.B) > tolerance {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

// pointColorPattern maps a point to the color of its own coordinates, making
// refraction paths observable in tests
type pointColorPattern struct {
	transform *core.Transform
}

func newPointColorPattern() *pointColorPattern {
	return &pointColorPattern{transform: core.NewTransform(core.Identity())}
}

func (p *pointColorPattern) ColorAt(point core.Tuple) core.Color {
	return core.NewColor(point.X, point.Y, point.Z)
}

func (p *pointColorPattern) Transform() *core.Transform {
	return p.transform
}

func TestWorld_IntersectDefaultWorld(t *testing.T) {
	w := NewDefaultWorld()
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	xs := w.Intersect(ray)
	expected := []float64{4, 4.5, 5.5, 6}
	if len(xs) != len(expected) {
		t.Fatalf("Expected %d intersections, got %d", len(expected), len(xs))
	}
	for i, e := range expected {
		if xs[i].T != e {
			t.Errorf("Intersection %d: expected t=%f, got t=%f", i, e, xs[i].T)
		}
	}
}

func TestWorld_ShadeHit(t *testing.T) {
	w := NewDefaultWorld()
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
	hit := core.NewIntersection(4, w.Objects[0])
	comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

	got := w.ShadeHit(comps, MaxDepth)
	assertColorNear(t, got, core.NewColor(0.38066, 0.47583, 0.2855), 1e-3)
}

func TestWorld_ShadeHitFromInside(t *testing.T) {
	w := NewDefaultWorld()
	w.Lights = []lights.Light{
		lights.NewPointLight(core.NewPoint(0, 0.25, 0), core.White),
	}
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
	hit := core.NewIntersection(0.5, w.Objects[1])
	comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

	got := w.ShadeHit(comps, MaxDepth)
	assertColorNear(t, got, core.NewColor(0.90498, 0.90498, 0.90498), 1e-3)
}

func TestWorld_ColorAt(t *testing.T) {
	t.Run("miss is black", func(t *testing.T) {
		w := NewDefaultWorld()
		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 1, 0))
		if got := w.ColorAt(ray, MaxDepth); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("hit shades the nearest surface", func(t *testing.T) {
		w := NewDefaultWorld()
		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		assertColorNear(t, w.ColorAt(ray, MaxDepth), core.NewColor(0.38066, 0.47583, 0.2855), 1e-3)
	})

	t.Run("intersection behind the ray uses the inner surface", func(t *testing.T) {
		w := NewDefaultWorld()
		w.Arena.MaterialOf(w.Objects[0]).Ambient = 1
		inner := w.Arena.MaterialOf(w.Objects[1])
		inner.Ambient = 1

		ray := core.NewRay(core.NewPoint(0, 0, 0.75), core.NewVector(0, 0, -1))
		assertColorNear(t, w.ColorAt(ray, MaxDepth), inner.Color, 1e-3)
	})
}

func TestWorld_IsShadowed(t *testing.T) {
	w := NewDefaultWorld()
	lightPos := core.NewPoint(-10, 10, -10)

	tests := []struct {
		name     string
		point    core.Tuple
		expected bool
	}{
		{"nothing between point and light", core.NewPoint(0, 10, 0), false},
		{"sphere between point and light", core.NewPoint(10, -10, 10), true},
		{"light between point and sphere", core.NewPoint(-20, 20, -20), false},
		{"point between light and sphere", core.NewPoint(-2, 2, -2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsShadowed(tt.point, lightPos); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestWorld_ShadeHitInShadow(t *testing.T) {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(0, 0, -10), core.White))

	s1 := w.Arena.AddSphere()
	w.AddObject(s1)
	s2 := w.Arena.AddSphere()
	w.Arena.SetTransform(s2, core.Translation(0, 0, 10))
	w.AddObject(s2)

	ray := core.NewRay(core.NewPoint(0, 0, 5), core.NewVector(0, 0, 1))
	hit := core.NewIntersection(4, s2)
	comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

	got := w.ShadeHit(comps, MaxDepth)
	assertColorNear(t, got, core.NewColor(0.1, 0.1, 0.1), 1e-5)
}

func TestWorld_ReflectedColor(t *testing.T) {
	sqrt2Half := math.Sqrt(2) / 2

	t.Run("nonreflective surface is black", func(t *testing.T) {
		w := NewDefaultWorld()
		w.Arena.MaterialOf(w.Objects[1]).Ambient = 1

		ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
		hit := core.NewIntersection(1, w.Objects[1])
		comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

		if got := w.ReflectedColor(comps, MaxDepth); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("reflective plane picks up the scene", func(t *testing.T) {
		w := NewDefaultWorld()
		p := w.Arena.AddPlane()
		w.Arena.SetTransform(p, core.Translation(0, -1, 0))
		w.Arena.MaterialOf(p).Reflective = 0.5
		w.AddObject(p)

		ray := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -sqrt2Half, sqrt2Half))
		hit := core.NewIntersection(math.Sqrt(2), p)
		comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

		got := w.ReflectedColor(comps, MaxDepth)
		assertColorNear(t, got, core.NewColor(0.19032, 0.2379, 0.14274), 1e-3)
	})

	t.Run("spent recursion budget is black", func(t *testing.T) {
		w := NewDefaultWorld()
		p := w.Arena.AddPlane()
		w.Arena.SetTransform(p, core.Translation(0, -1, 0))
		w.Arena.MaterialOf(p).Reflective = 0.5
		w.AddObject(p)

		ray := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -sqrt2Half, sqrt2Half))
		hit := core.NewIntersection(math.Sqrt(2), p)
		comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

		if got := w.ReflectedColor(comps, 0); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})
}

func TestWorld_ShadeHitWithReflection(t *testing.T) {
	w := NewDefaultWorld()
	p := w.Arena.AddPlane()
	w.Arena.SetTransform(p, core.Translation(0, -1, 0))
	w.Arena.MaterialOf(p).Reflective = 0.5
	w.AddObject(p)

	sqrt2Half := math.Sqrt(2) / 2
	ray := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -sqrt2Half, sqrt2Half))
	hit := core.NewIntersection(math.Sqrt(2), p)
	comps := w.PrepareComputations(hit, ray, []core.Intersection{hit})

	got := w.ShadeHit(comps, MaxDepth)
	assertColorNear(t, got, core.NewColor(0.87677, 0.92436, 0.82918), 1e-3)
}

func TestWorld_MutuallyReflectiveSurfacesTerminate(t *testing.T) {
	w := NewWorld()
	w.AddLight(lights.NewPointLight(core.NewPoint(0, 0, 0), core.White))

	lower := w.Arena.AddPlane()
	w.Arena.SetTransform(lower, core.Translation(0, -1, 0))
	w.Arena.MaterialOf(lower).Reflective = 1
	w.AddObject(lower)

	upper := w.Arena.AddPlane()
	w.Arena.SetTransform(upper, core.Translation(0, 1, 0))
	w.Arena.MaterialOf(upper).Reflective = 1
	w.AddObject(upper)

	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0))
	// Must return rather than recurse forever
	w.ColorAt(ray, MaxDepth)
}

func TestWorld_RefractedColor(t *testing.T) {
	sqrt2Half := math.Sqrt(2) / 2

	t.Run("opaque surface is black", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]

		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		xs := []core.Intersection{
			core.NewIntersection(4, shape),
			core.NewIntersection(6, shape),
		}
		comps := w.PrepareComputations(xs[0], ray, xs)

		if got := w.RefractedColor(comps, MaxDepth); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("spent recursion budget is black", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		m := w.Arena.MaterialOf(shape)
		m.Transparency = 1
		m.RefractiveIndex = 1.5

		ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
		xs := []core.Intersection{
			core.NewIntersection(4, shape),
			core.NewIntersection(6, shape),
		}
		comps := w.PrepareComputations(xs[0], ray, xs)

		if got := w.RefractedColor(comps, 0); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("total internal reflection is black", func(t *testing.T) {
		w := NewDefaultWorld()
		shape := w.Objects[0]
		m := w.Arena.MaterialOf(shape)
		m.Transparency = 1
		m.RefractiveIndex = 1.5

		ray := core.NewRay(core.NewPoint(0, 0, sqrt2Half), core.NewVector(0, 1, 0))
		xs := []core.Intersection{
			core.NewIntersection(-sqrt2Half, shape),
			core.NewIntersection(sqrt2Half, shape),
		}
		comps := w.PrepareComputations(xs[1], ray, xs)

		if got := w.RefractedColor(comps, MaxDepth); !got.Equals(core.Black) {
			t.Errorf("Expected black, got %v", got)
		}
	})

	t.Run("refracted ray reaches the surface behind", func(t *testing.T) {
		w := NewDefaultWorld()

		outer := w.Arena.MaterialOf(w.Objects[0])
		outer.Ambient = 1
		outer.Pattern = newPointColorPattern()

		inner := w.Arena.MaterialOf(w.Objects[1])
		inner.Transparency = 1
		inner.RefractiveIndex = 1.5

		ray := core.NewRay(core.NewPoint(0, 0, 0.1), core.NewVector(0, 1, 0))
		xs := []core.Intersection{
			core.NewIntersection(-0.9899, w.Objects[0]),
			core.NewIntersection(-0.4899, w.Objects[1]),
			core.NewIntersection(0.4899, w.Objects[1]),
			core.NewIntersection(0.9899, w.Objects[0]),
		}
		comps := w.PrepareComputations(xs[2], ray, xs)

		got := w.RefractedColor(comps, MaxDepth)
		assertColorNear(t, got, core.NewColor(0, 0.99888, 0.04725), 1e-3)
	})
}

func TestWorld_ShadeHitWithTransparency(t *testing.T) {
	sqrt2Half := math.Sqrt(2) / 2

	buildFloorScene := func(reflective float64) (*World, core.ObjectID) {
		w := NewDefaultWorld()

		floor := w.Arena.AddPlane()
		w.Arena.SetTransform(floor, core.Translation(0, -1, 0))
		fm := w.Arena.MaterialOf(floor)
		fm.Reflective = reflective
		fm.Transparency = 0.5
		fm.RefractiveIndex = 1.5
		w.AddObject(floor)

		ball := w.Arena.AddSphere()
		w.Arena.SetTransform(ball, core.Translation(0, -3.5, -0.5))
		bm := material.NewMaterial()
		bm.Color = core.NewColor(1, 0, 0)
		bm.Ambient = 0.5
		w.Arena.SetMaterial(ball, bm)
		w.AddObject(ball)

		return w, floor
	}

	t.Run("transparent floor shows the ball beneath", func(t *testing.T) {
		w, floor := buildFloorScene(0)

		ray := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -sqrt2Half, sqrt2Half))
		xs := []core.Intersection{core.NewIntersection(math.Sqrt(2), floor)}
		comps := w.PrepareComputations(xs[0], ray, xs)

		got := w.ShadeHit(comps, MaxDepth)
		assertColorNear(t, got, core.NewColor(0.93642, 0.68642, 0.47846), 1e-3)
	})

	t.Run("reflective transparent floor blends by reflectance", func(t *testing.T) {
		w, floor := buildFloorScene(0.5)

		ray := core.NewRay(core.NewPoint(0, 0, -3), core.NewVector(0, -sqrt2Half, sqrt2Half))
		xs := []core.Intersection{core.NewIntersection(math.Sqrt(2), floor)}
		comps := w.PrepareComputations(xs[0], ray, xs)

		got := w.ShadeHit(comps, MaxDepth)
		assertColorNear(t, got, core.NewColor(0.93391, 0.69643, 0.69243), 1e-3)
	})
}

func TestNewDefaultWorld(t *testing.T) {
	w := NewDefaultWorld()

	if len(w.Objects) != 2 || len(w.Lights) != 1 {
		t.Fatalf("Expected 2 objects and 1 light, got %d and %d", len(w.Objects), len(w.Lights))
	}

	outer := w.Arena.MaterialOf(w.Objects[0])
	if !outer.Color.Equals(core.NewColor(0.8, 1.0, 0.6)) || outer.Diffuse != 0.7 || outer.Specular != 0.2 {
		t.Errorf("Unexpected outer material: %+v", outer)
	}

	inner := w.Arena.Get(w.Objects[1])
	if !inner.Transform.Matrix().Equals(core.Scaling(0.5, 0.5, 0.5)) {
		t.Error("Expected inner sphere scaled by half")
	}
}

func TestSceneBuilders(t *testing.T) {
	// Each builder must produce a world that traces without panicking
	builders := map[string]func() *World{
		"showcase": NewShowcaseWorld,
		"csg":      NewCSGWorld,
		"torus":    NewTorusWorld,
		"hexagon":  NewHexagonWorld,
	}

	ray := core.NewRay(core.NewPoint(0, 1.5, -5), core.NewVector(0, 0, 1))
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			w := build()
			if len(w.Lights) == 0 {
				t.Fatal("Expected at least one light")
			}
			w.ColorAt(ray, MaxDepth)
		})
	}
}

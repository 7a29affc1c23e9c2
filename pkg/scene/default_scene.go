package scene

import (
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/lights"
	"github.com/mfortier/go-whitted-raytracer/pkg/material"
)

// NewDefaultWorld creates the canonical two-sphere world: an outer diffuse
// sphere, an inner half-scale sphere, and a point light up and to the left.
// Shading tests and demo scenes both build on it.
func NewDefaultWorld() *World {
	w := NewWorld()

	outer := w.Arena.AddSphere()
	m := material.NewMaterial()
	m.Color = core.NewColor(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	w.Arena.SetMaterial(outer, m)
	w.AddObject(outer)

	inner := w.Arena.AddSphere()
	w.Arena.SetTransform(inner, core.Scaling(0.5, 0.5, 0.5))
	w.AddObject(inner)

	w.AddLight(lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White))
	return w
}

// NewShowcaseWorld builds the main demo scene: a checkered floor, a
// reflective sphere, a glass sphere, and a striped cube under a point light
func NewShowcaseWorld() *World {
	w := NewWorld()
	a := w.Arena

	floor := a.AddPlane()
	fm := material.NewMaterial()
	fm.Pattern = material.NewCheckersPattern(
		core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.25),
	)
	fm.Specular = 0.1
	fm.Reflective = 0.08
	a.SetMaterial(floor, fm)
	w.AddObject(floor)

	mirror := a.AddSphere()
	a.SetTransform(mirror, core.Translation(-1.4, 1, 0.6))
	mm := material.NewMaterial()
	mm.Color = core.NewColor(0.1, 0.1, 0.12)
	mm.Diffuse = 0.3
	mm.Specular = 1
	mm.Shininess = 400
	mm.Reflective = 0.9
	a.SetMaterial(mirror, mm)
	w.AddObject(mirror)

	glass := a.AddGlassSphere()
	a.SetTransform(glass, core.Translation(0.7, 1, -0.8))
	gm := *a.MaterialOf(glass)
	gm.Color = core.NewColor(0.02, 0.02, 0.02)
	gm.Diffuse = 0.05
	gm.Ambient = 0.01
	gm.Specular = 1
	gm.Shininess = 300
	gm.Reflective = 0.9
	a.SetMaterial(glass, gm)
	w.AddObject(glass)

	cube := a.AddCube()
	a.SetTransform(cube, core.Translation(2.6, 0.5, 2).
		Multiply(core.RotationY(math.Pi/5)).
		Multiply(core.Scaling(0.5, 0.5, 0.5)))
	cm := material.NewMaterial()
	stripes := material.NewStripePattern(
		core.NewColor(0.8, 0.3, 0.3), core.NewColor(0.95, 0.85, 0.7),
	)
	stripes.SetTransform(core.Scaling(0.25, 0.25, 0.25))
	cm.Pattern = stripes
	a.SetMaterial(cube, cm)
	w.AddObject(cube)

	w.AddLight(lights.NewPointLight(core.NewPoint(-8, 9, -8), core.White))
	return w
}

// NewShowcaseFloorWorld creates a world holding only the checkered floor
// and a point light, ready to receive a loaded mesh
func NewShowcaseFloorWorld() *World {
	w := NewWorld()

	floor := w.Arena.AddPlane()
	fm := material.NewMaterial()
	fm.Pattern = material.NewCheckersPattern(
		core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.25),
	)
	fm.Specular = 0.1
	w.Arena.SetMaterial(floor, fm)
	w.AddObject(floor)

	w.AddLight(lights.NewPointLight(core.NewPoint(-8, 9, -8), core.White))
	return w
}

// NewCSGWorld builds a classic CSG demo: a cube intersected with a sphere,
// minus three axis-aligned cylinders
func NewCSGWorld() *World {
	w := NewWorld()
	a := w.Arena

	floor := a.AddPlane()
	fm := material.NewMaterial()
	fm.Pattern = material.NewCheckersPattern(
		core.NewColor(0.85, 0.85, 0.85), core.NewColor(0.3, 0.3, 0.35),
	)
	fm.Reflective = 0.05
	a.SetMaterial(floor, fm)
	w.AddObject(floor)

	cube := a.AddCube()
	cm := material.NewMaterial()
	cm.Color = core.NewColor(0.8, 0.2, 0.2)
	a.SetMaterial(cube, cm)

	sphere := a.AddSphere()
	a.SetTransform(sphere, core.Scaling(1.35, 1.35, 1.35))
	sm := material.NewMaterial()
	sm.Color = core.NewColor(0.2, 0.2, 0.8)
	a.SetMaterial(sphere, sm)

	rounded := a.AddCSG(CSGIntersection, cube, sphere)

	drillMaterial := material.NewMaterial()
	drillMaterial.Color = core.NewColor(0.2, 0.7, 0.3)

	cylY := a.AddCylinder(-2, 2, true)
	a.SetTransform(cylY, core.Scaling(0.7, 1, 0.7))
	a.SetMaterial(cylY, drillMaterial)

	cylX := a.AddCylinder(-2, 2, true)
	a.SetTransform(cylX, core.RotationZ(math.Pi/2).Multiply(core.Scaling(0.7, 1, 0.7)))
	a.SetMaterial(cylX, drillMaterial)

	cylZ := a.AddCylinder(-2, 2, true)
	a.SetTransform(cylZ, core.RotationX(math.Pi/2).Multiply(core.Scaling(0.7, 1, 0.7)))
	a.SetMaterial(cylZ, drillMaterial)

	drills := a.AddCSG(CSGUnion, cylX, a.AddCSG(CSGUnion, cylY, cylZ))
	shape := a.AddCSG(CSGDifference, rounded, drills)
	a.SetTransform(shape, core.Translation(0, 1.2, 0).Multiply(core.RotationY(math.Pi/6)))
	w.AddObject(shape)

	w.AddLight(lights.NewPointLight(core.NewPoint(-6, 8, -6), core.White))
	return w
}

// NewTorusWorld builds a scene around the quartic torus primitive
func NewTorusWorld() *World {
	w := NewWorld()
	a := w.Arena

	floor := a.AddPlane()
	fm := material.NewMaterial()
	fm.Pattern = material.NewRingPattern(
		core.NewColor(0.8, 0.75, 0.6), core.NewColor(0.55, 0.5, 0.4),
	)
	a.SetMaterial(floor, fm)
	w.AddObject(floor)

	torus := a.AddTorus(0.35)
	a.SetTransform(torus, core.Translation(0, 1, 0).Multiply(core.RotationX(math.Pi/3)))
	tm := material.NewMaterial()
	tm.Color = core.NewColor(0.9, 0.6, 0.1)
	tm.Specular = 0.8
	tm.Reflective = 0.15
	a.SetMaterial(torus, tm)
	w.AddObject(torus)

	core2 := a.AddSphere()
	a.SetTransform(core2, core.Translation(0, 1, 0).Multiply(core.Scaling(0.4, 0.4, 0.4)))
	sm := material.NewMaterial()
	sm.Color = core.NewColor(0.3, 0.3, 0.9)
	a.SetMaterial(core2, sm)
	w.AddObject(core2)

	w.AddLight(lights.NewPointLight(core.NewPoint(-5, 7, -7), core.White))
	return w
}

// NewHexagonWorld builds a ring of six cylinder-edged spheres grouped into
// a single hexagon group, exercising nested group transforms
func NewHexagonWorld() *World {
	w := NewWorld()
	a := w.Arena

	hex := a.AddGroup()
	for i := 0; i < 6; i++ {
		side := hexagonSide(a)
		a.SetTransform(side, core.RotationY(float64(i)*math.Pi/3))
		a.AddChild(hex, side)
	}
	a.SetTransform(hex, core.Translation(0, 1, 0).Multiply(core.RotationX(-math.Pi/6)))
	w.AddObject(hex)

	floor := a.AddPlane()
	fm := material.NewMaterial()
	fm.Pattern = material.NewCheckersPattern(
		core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.4, 0.4, 0.45),
	)
	a.SetMaterial(floor, fm)
	w.AddObject(floor)

	w.AddLight(lights.NewPointLight(core.NewPoint(-6, 8, -9), core.White))
	return w
}

func hexagonSide(a *Arena) core.ObjectID {
	side := a.AddGroup()

	corner := a.AddSphere()
	a.SetTransform(corner, core.Translation(0, 0, -1).Multiply(core.Scaling(0.25, 0.25, 0.25)))
	a.AddChild(side, corner)

	edge := a.AddCylinder(0, 1, false)
	a.SetTransform(edge, core.Translation(0, 0, -1).
		Multiply(core.RotationY(-math.Pi/6)).
		Multiply(core.RotationZ(-math.Pi/2)).
		Multiply(core.Scaling(0.25, 1, 0.25)))
	a.AddChild(side, edge)

	return side
}

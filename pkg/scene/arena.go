package scene

import (
	"fmt"
	"sync"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/geometry"
	"github.com/mfortier/go-whitted-raytracer/pkg/material"
)

// Kind discriminates the closed set of primitive and composite object
// variants. Intersection, normal, and bounds dispatch switch over it
// exhaustively.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindCube
	KindCylinder
	KindCone
	KindTriangle
	KindTorus
	KindGroup
	KindCSG
)

// CSGOperation selects how a CSG node combines its two children
type CSGOperation int

const (
	CSGUnion CSGOperation = iota
	CSGIntersection
	CSGDifference
)

// Object is one tagged-variant record in the arena. Only the payload fields
// matching Kind are meaningful. Material is nil for Group and CSG nodes,
// which are never shaded directly.
type Object struct {
	ID        core.ObjectID
	Parent    core.ObjectID
	Kind      Kind
	Transform *core.Transform
	Material  *material.Material

	// Primitive payloads
	Cylinder geometry.Cylinder
	Cone     geometry.Cone
	Triangle geometry.Triangle
	Torus    geometry.Torus

	// Group payload
	Children []core.ObjectID

	// CSG payload
	Operation   CSGOperation
	Left, Right core.ObjectID

	bounds boundsCache
}

// boundsCache memoizes a composite node's local bounding box. Adding a
// child invalidates it; the next query recomputes. Exactly one writer
// computes under the lock once rendering starts, which satisfies the
// concurrent-reader requirement since the arena is frozen by then.
type boundsCache struct {
	mu    sync.Mutex
	valid bool
	box   geometry.AABB
}

// Arena is the scene-graph object store. Identities are assigned
// monotonically at insertion and never reused; lookups index the backing
// slice directly. Construction is single-threaded; once rendering starts
// the arena is read-only and shared across workers.
type Arena struct {
	objects []*Object
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of objects in the arena
func (a *Arena) Len() int {
	return len(a.objects)
}

func (a *Arena) insert(obj *Object) core.ObjectID {
	obj.ID = core.ObjectID(len(a.objects))
	obj.Parent = core.NoObject
	if obj.Transform == nil {
		obj.Transform = core.NewTransform(core.Identity())
	}
	a.objects = append(a.objects, obj)
	return obj.ID
}

func newPrimitive(kind Kind) *Object {
	m := material.NewMaterial()
	return &Object{Kind: kind, Material: &m}
}

// AddSphere inserts a unit sphere with identity transform and default material
func (a *Arena) AddSphere() core.ObjectID {
	return a.insert(newPrimitive(KindSphere))
}

// AddGlassSphere inserts a unit sphere with a fully transparent glass material
func (a *Arena) AddGlassSphere() core.ObjectID {
	id := a.AddSphere()
	m := material.NewGlassMaterial()
	a.SetMaterial(id, m)
	return id
}

// AddPlane inserts an xz-plane at y=0
func (a *Arena) AddPlane() core.ObjectID {
	return a.insert(newPrimitive(KindPlane))
}

// AddCube inserts a unit cube
func (a *Arena) AddCube() core.ObjectID {
	return a.insert(newPrimitive(KindCube))
}

// AddCylinder inserts a truncated cylinder
func (a *Arena) AddCylinder(min, max float64, closed bool) core.ObjectID {
	obj := newPrimitive(KindCylinder)
	obj.Cylinder = geometry.Cylinder{Min: min, Max: max, Closed: closed}
	return a.insert(obj)
}

// AddCone inserts a truncated double cone
func (a *Arena) AddCone(min, max float64, closed bool) core.ObjectID {
	obj := newPrimitive(KindCone)
	obj.Cone = geometry.Cone{Min: min, Max: max, Closed: closed}
	return a.insert(obj)
}

// AddTriangle inserts a flat-shaded triangle
func (a *Arena) AddTriangle(p1, p2, p3 core.Tuple) core.ObjectID {
	obj := newPrimitive(KindTriangle)
	obj.Triangle = geometry.NewTriangle(p1, p2, p3)
	return a.insert(obj)
}

// AddSmoothTriangle inserts a triangle with per-vertex normals
func (a *Arena) AddSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) core.ObjectID {
	obj := newPrimitive(KindTriangle)
	obj.Triangle = geometry.NewSmoothTriangle(p1, p2, p3, n1, n2, n3)
	return a.insert(obj)
}

// AddTorus inserts a torus with the given tube radius
func (a *Arena) AddTorus(minorRadius float64) core.ObjectID {
	obj := newPrimitive(KindTorus)
	obj.Torus = geometry.NewTorus(minorRadius)
	return a.insert(obj)
}

// AddGroup inserts an empty group
func (a *Arena) AddGroup() core.ObjectID {
	return a.insert(&Object{Kind: KindGroup})
}

// AddCSG inserts a CSG node combining two existing objects and reparents
// them under it
func (a *Arena) AddCSG(op CSGOperation, left, right core.ObjectID) core.ObjectID {
	id := a.insert(&Object{Kind: KindCSG, Operation: op, Left: left, Right: right})
	a.Get(left).Parent = id
	a.Get(right).Parent = id
	return id
}

// Get returns the object for an identity. It panics on an identity that was
// never inserted: that is a scene constructed incorrectly, not a runtime
// condition.
func (a *Arena) Get(id core.ObjectID) *Object {
	if id < 0 || int(id) >= len(a.objects) {
		panic(fmt.Sprintf("scene: object id %d was never inserted into the arena", id))
	}
	return a.objects[id]
}

// AddChild appends a child to a group, wiring the parent link and
// invalidating the group's cached bounds
func (a *Arena) AddChild(group, child core.ObjectID) {
	g := a.Get(group)
	if g.Kind != KindGroup {
		panic(fmt.Sprintf("scene: object %d is not a group", group))
	}
	g.Children = append(g.Children, child)
	a.Get(child).Parent = group

	g.bounds.mu.Lock()
	g.bounds.valid = false
	g.bounds.mu.Unlock()
}

// SetTransform replaces an object's local transform
func (a *Arena) SetTransform(id core.ObjectID, m core.Matrix) {
	a.Get(id).Transform = core.NewTransform(m)
}

// SetMaterial replaces a primitive's material. Composite nodes have no
// material; setting one is a programming error.
func (a *Arena) SetMaterial(id core.ObjectID, m material.Material) {
	obj := a.Get(id)
	if obj.Material == nil {
		panic(fmt.Sprintf("scene: object %d is a composite node and has no material", id))
	}
	*obj.Material = m
}

// MaterialOf returns a primitive's material, panicking for Group/CSG nodes
func (a *Arena) MaterialOf(id core.ObjectID) *material.Material {
	obj := a.Get(id)
	if obj.Material == nil {
		panic(fmt.Sprintf("scene: object %d is a composite node and has no material", id))
	}
	return obj.Material
}

// WorldToObject converts a world-space point into the object's local space,
// recursing through the parent chain so every ancestor's inverse transform
// is applied root-first
func (a *Arena) WorldToObject(id core.ObjectID, point core.Tuple) core.Tuple {
	obj := a.Get(id)
	if obj.Parent != core.NoObject {
		point = a.WorldToObject(obj.Parent, point)
	}
	return obj.Transform.Inverse().MultiplyTuple(point)
}

// NormalToWorld converts an object-local normal into world space, applying
// this object's inverse-transpose and then recursing up the parent chain
func (a *Arena) NormalToWorld(id core.ObjectID, normal core.Tuple) core.Tuple {
	obj := a.Get(id)

	normal = obj.Transform.InverseTranspose().MultiplyTuple(normal)
	normal.W = 0
	normal = normal.Normalize()

	if obj.Parent != core.NoObject {
		normal = a.NormalToWorld(obj.Parent, normal)
	}
	return normal
}

// NormalAt computes the world-space surface normal for a hit on the given
// object. The intersection supplies barycentric coordinates for smooth
// triangle interpolation.
func (a *Arena) NormalAt(id core.ObjectID, worldPoint core.Tuple, hit core.Intersection) core.Tuple {
	obj := a.Get(id)
	localPoint := a.WorldToObject(id, worldPoint)

	var localNormal core.Tuple
	switch obj.Kind {
	case KindSphere:
		localNormal = geometry.SphereNormal(localPoint)
	case KindPlane:
		localNormal = geometry.PlaneNormal()
	case KindCube:
		localNormal = geometry.CubeNormal(localPoint)
	case KindCylinder:
		localNormal = obj.Cylinder.NormalAt(localPoint)
	case KindCone:
		localNormal = obj.Cone.NormalAt(localPoint)
	case KindTriangle:
		localNormal = obj.Triangle.NormalAt(hit)
	case KindTorus:
		localNormal = obj.Torus.NormalAt(localPoint)
	case KindGroup, KindCSG:
		panic(fmt.Sprintf("scene: normal queried on composite node %d", id))
	default:
		panic(fmt.Sprintf("scene: unknown object kind %d", obj.Kind))
	}

	return a.NormalToWorld(id, localNormal)
}

// Intersect tests a world-space (or parent-space) ray against an object,
// carrying the ray into the object's local space first
func (a *Arena) Intersect(id core.ObjectID, ray core.Ray) []core.Intersection {
	obj := a.Get(id)
	localRay := ray.Transform(obj.Transform.Inverse())

	switch obj.Kind {
	case KindSphere:
		return geometry.IntersectSphere(id, localRay)
	case KindPlane:
		return geometry.IntersectPlane(id, localRay)
	case KindCube:
		return geometry.IntersectCube(id, localRay)
	case KindCylinder:
		return obj.Cylinder.Intersect(id, localRay)
	case KindCone:
		return obj.Cone.Intersect(id, localRay)
	case KindTriangle:
		return obj.Triangle.Intersect(id, localRay)
	case KindTorus:
		return obj.Torus.Intersect(id, localRay)
	case KindGroup:
		return a.intersectGroup(obj, localRay)
	case KindCSG:
		return a.intersectCSG(obj, localRay)
	default:
		panic(fmt.Sprintf("scene: unknown object kind %d", obj.Kind))
	}
}

// Bounds returns the object's bounding box in its own local space.
// Composite boxes are computed lazily from the children's transformed boxes
// and cached until a child is added.
func (a *Arena) Bounds(id core.ObjectID) geometry.AABB {
	obj := a.Get(id)

	switch obj.Kind {
	case KindSphere:
		return geometry.SphereBounds()
	case KindPlane:
		return geometry.PlaneBounds()
	case KindCube:
		return geometry.CubeBounds()
	case KindCylinder:
		return obj.Cylinder.Bounds()
	case KindCone:
		return obj.Cone.Bounds()
	case KindTriangle:
		return obj.Triangle.Bounds()
	case KindTorus:
		return obj.Torus.Bounds()
	case KindGroup, KindCSG:
		return a.compositeBounds(obj)
	default:
		panic(fmt.Sprintf("scene: unknown object kind %d", obj.Kind))
	}
}

// ParentSpaceBounds returns the object's bounding box lifted into its
// parent's space through the object's own transform
func (a *Arena) ParentSpaceBounds(id core.ObjectID) geometry.AABB {
	obj := a.Get(id)
	return a.Bounds(id).Transform(obj.Transform.Matrix())
}

func (a *Arena) compositeBounds(obj *Object) geometry.AABB {
	obj.bounds.mu.Lock()
	defer obj.bounds.mu.Unlock()

	if obj.bounds.valid {
		return obj.bounds.box
	}

	box := geometry.EmptyAABB()
	switch obj.Kind {
	case KindGroup:
		for _, child := range obj.Children {
			box = box.Union(a.ParentSpaceBounds(child))
		}
	case KindCSG:
		box = a.ParentSpaceBounds(obj.Left).Union(a.ParentSpaceBounds(obj.Right))
	}

	obj.bounds.valid = true
	obj.bounds.box = box
	return box
}

// Includes reports whether id lies in the subtree rooted at parent,
// descending through group children and CSG operands
func (a *Arena) Includes(parent, id core.ObjectID) bool {
	if parent == id {
		return true
	}
	obj := a.Get(parent)
	switch obj.Kind {
	case KindGroup:
		for _, child := range obj.Children {
			if a.Includes(child, id) {
				return true
			}
		}
		return false
	case KindCSG:
		return a.Includes(obj.Left, id) || a.Includes(obj.Right, id)
	default:
		return false
	}
}

package loaders

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

func intPtr(i int) *int {
	return &i
}

func putVec3(buf []byte, offset int, x, y, z float32) {
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[offset+4:], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[offset+8:], math.Float32bits(z))
}

// triangleDocument builds an in-memory glTF document holding a single
// triangle: three float32 positions followed by uint16 indices, optionally
// with per-vertex normals between them.
func triangleDocument(withNormals bool) *gltf.Document {
	posLen := 3 * 12
	normLen := 0
	if withNormals {
		normLen = 3 * 12
	}
	idxLen := 3 * 2

	buf := make([]byte, posLen+normLen+idxLen)
	putVec3(buf, 0, 0, 1, 0)
	putVec3(buf, 12, -1, 0, 0)
	putVec3(buf, 24, 1, 0, 0)
	if withNormals {
		putVec3(buf, posLen, 0, 1, 0)
		putVec3(buf, posLen+12, -1, 0, 0)
		putVec3(buf, posLen+24, 1, 0, 0)
	}
	idxOffset := posLen + normLen
	binary.LittleEndian.PutUint16(buf[idxOffset:], 0)
	binary.LittleEndian.PutUint16(buf[idxOffset+2:], 1)
	binary.LittleEndian.PutUint16(buf[idxOffset+4:], 2)

	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: idxOffset, ByteLength: idxLen},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: intPtr(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
			{BufferView: intPtr(1), ComponentType: gltf.ComponentUshort, Count: 3, Type: gltf.AccessorScalar},
		},
	}

	attributes := map[string]int{gltf.POSITION: 0}
	if withNormals {
		doc.BufferViews = append(doc.BufferViews,
			&gltf.BufferView{Buffer: 0, ByteOffset: posLen, ByteLength: normLen})
		doc.Accessors = append(doc.Accessors,
			&gltf.Accessor{BufferView: intPtr(2), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3})
		attributes[gltf.NORMAL] = 2
	}

	doc.Meshes = []*gltf.Mesh{{
		Name: "triangle",
		Primitives: []*gltf.Primitive{{
			Attributes: attributes,
			Indices:    intPtr(1),
			Mode:       gltf.PrimitiveTriangles,
		}},
	}}
	return doc
}

func TestBuildGLTFGroup_FlatTriangle(t *testing.T) {
	arena := scene.NewArena()
	root, err := BuildGLTFGroup(triangleDocument(false), arena)
	if err != nil {
		t.Fatalf("BuildGLTFGroup failed: %v", err)
	}

	meshGroups := arena.Get(root).Children
	if len(meshGroups) != 1 {
		t.Fatalf("Expected 1 mesh group, got %d", len(meshGroups))
	}
	tris := arena.Get(meshGroups[0]).Children
	if len(tris) != 1 {
		t.Fatalf("Expected 1 triangle, got %d", len(tris))
	}

	tri := arena.Get(tris[0])
	if tri.Kind != scene.KindTriangle || tri.Triangle.Smooth {
		t.Fatalf("Expected a flat triangle, got %+v", tri)
	}
	if !tri.Triangle.P1.Equals(core.NewPoint(0, 1, 0)) ||
		!tri.Triangle.P2.Equals(core.NewPoint(-1, 0, 0)) ||
		!tri.Triangle.P3.Equals(core.NewPoint(1, 0, 0)) {
		t.Errorf("Wrong vertices: %+v", tri.Triangle)
	}

	// The loaded mesh must be traceable through the arena
	ray := core.NewRay(core.NewPoint(0, 0.5, -2), core.NewVector(0, 0, 1))
	xs := arena.Intersect(root, ray)
	if len(xs) != 1 || math.Abs(xs[0].T-2) > 1e-5 {
		t.Errorf("Expected one hit at t=2, got %v", xs)
	}
}

func TestBuildGLTFGroup_SmoothTriangle(t *testing.T) {
	arena := scene.NewArena()
	root, err := BuildGLTFGroup(triangleDocument(true), arena)
	if err != nil {
		t.Fatalf("BuildGLTFGroup failed: %v", err)
	}

	meshGroup := arena.Get(root).Children[0]
	tri := arena.Get(arena.Get(meshGroup).Children[0])
	if !tri.Triangle.Smooth {
		t.Fatal("Expected a smooth triangle when normals are present")
	}
	if !tri.Triangle.N1.Equals(core.NewVector(0, 1, 0)) ||
		!tri.Triangle.N2.Equals(core.NewVector(-1, 0, 0)) ||
		!tri.Triangle.N3.Equals(core.NewVector(1, 0, 0)) {
		t.Errorf("Wrong normals: %+v", tri.Triangle)
	}
}

func TestBuildGLTFGroup_SkipsNonTrianglePrimitives(t *testing.T) {
	doc := triangleDocument(false)
	doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines

	arena := scene.NewArena()
	root, err := BuildGLTFGroup(doc, arena)
	if err != nil {
		t.Fatalf("BuildGLTFGroup failed: %v", err)
	}
	if n := len(arena.Get(root).Children); n != 0 {
		t.Errorf("Expected no mesh groups for a line primitive, got %d", n)
	}
}

func TestBuildGLTFGroup_RejectsOutOfRangeIndices(t *testing.T) {
	doc := triangleDocument(false)
	idxView := doc.BufferViews[1]
	binary.LittleEndian.PutUint16(doc.Buffers[0].Data[idxView.ByteOffset+4:], 9)

	arena := scene.NewArena()
	if _, err := BuildGLTFGroup(doc, arena); err == nil {
		t.Error("Expected an error for an out-of-range index")
	}
}

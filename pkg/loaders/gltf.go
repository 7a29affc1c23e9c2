package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

// LoadGLTF loads a glTF or GLB file and builds its triangles into the
// arena, returning a group holding every mesh primitive. Vertex normals,
// when present, produce smooth triangles.
func LoadGLTF(path string, arena *scene.Arena) (core.ObjectID, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return core.NoObject, fmt.Errorf("failed to open glTF file: %w", err)
	}
	return BuildGLTFGroup(doc, arena)
}

// BuildGLTFGroup converts an in-memory glTF document into a triangle group
func BuildGLTFGroup(doc *gltf.Document, arena *scene.Arena) (core.ObjectID, error) {
	root := arena.AddGroup()

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Lines and points have no surface to trace
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return core.NoObject, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			var normals []core.Tuple
			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, err = readVec3Accessor(doc, normIdx)
				if err != nil {
					return core.NoObject, fmt.Errorf("mesh %q: read normals: %w", m.Name, err)
				}
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return core.NoObject, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
			} else {
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			group := arena.AddGroup()
			for i := 0; i+2 < len(indices); i += 3 {
				i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
				if i0 >= len(positions) || i1 >= len(positions) || i2 >= len(positions) {
					return core.NoObject, fmt.Errorf("mesh %q: index out of range", m.Name)
				}

				var tri core.ObjectID
				if len(normals) == len(positions) {
					tri = arena.AddSmoothTriangle(
						toPoint(positions[i0]), toPoint(positions[i1]), toPoint(positions[i2]),
						normals[i0], normals[i1], normals[i2],
					)
				} else {
					tri = arena.AddTriangle(
						toPoint(positions[i0]), toPoint(positions[i1]), toPoint(positions[i2]),
					)
				}
				arena.AddChild(group, tri)
			}
			arena.AddChild(root, group)
		}
	}
	return root, nil
}

func toPoint(v core.Tuple) core.Tuple {
	return core.NewPoint(v.X, v.Y, v.Z)
}

// readVec3Accessor decodes a VEC3 float accessor into vectors
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Tuple, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Tuple, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := i * stride
		result[i] = core.NewVector(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

// readIndices decodes a scalar index accessor of any legal component width
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := i * stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes returns the raw bytes backing an accessor plus its element
// stride
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("external buffers are not supported")
	}

	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elementSize
	}

	start := int(view.ByteOffset) + int(accessor.ByteOffset)
	end := start + (accessor.Count-1)*stride + elementSize
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns its buffer")
	}
	return buffer.Data[start:end], stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

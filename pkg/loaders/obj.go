package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
	"github.com/mfortier/go-whitted-raytracer/pkg/scene"
)

// OBJParser holds the result of parsing a Wavefront OBJ file into an arena:
// vertex and normal tables plus one triangle group per named group
// statement. Unrecognized lines are counted, not rejected.
type OBJParser struct {
	Vertices     []core.Tuple // 1-based indexing per the OBJ format
	Normals      []core.Tuple
	IgnoredLines int

	arena        *scene.Arena
	defaultGroup core.ObjectID
	groups       map[string]core.ObjectID
	current      core.ObjectID
}

// ParseOBJFile parses an OBJ file into the arena
func ParseOBJFile(path string, arena *scene.Arena) (*OBJParser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()
	return ParseOBJ(file, arena)
}

// ParseOBJ parses OBJ data from a reader into the arena
func ParseOBJ(r io.Reader, arena *scene.Arena) (*OBJParser, error) {
	p := &OBJParser{
		arena:        arena,
		defaultGroup: arena.AddGroup(),
		groups:       make(map[string]core.ObjectID),
	}
	p.current = p.defaultGroup

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.parseLine(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}
	return p, nil
}

func (p *OBJParser) parseLine(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		p.IgnoredLines++
		return
	}

	switch fields[0] {
	case "v":
		if v, ok := parsePoint(fields[1:]); ok {
			p.Vertices = append(p.Vertices, v)
			return
		}
	case "vn":
		if v, ok := parsePoint(fields[1:]); ok {
			p.Normals = append(p.Normals, core.NewVector(v.X, v.Y, v.Z))
			return
		}
	case "f":
		if p.parseFace(fields[1:]) {
			return
		}
	case "g":
		if len(fields) >= 2 {
			p.current = p.namedGroup(fields[1])
			return
		}
	}
	p.IgnoredLines++
}

func parsePoint(fields []string) (core.Tuple, bool) {
	if len(fields) < 3 {
		return core.Tuple{}, false
	}
	var coords [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Tuple{}, false
		}
		coords[i] = v
	}
	return core.NewPoint(coords[0], coords[1], coords[2]), true
}

// parseFace triangulates a polygon face with a fan rooted at its first
// vertex. Faces with per-vertex normals become smooth triangles.
func (p *OBJParser) parseFace(fields []string) bool {
	if len(fields) < 3 {
		return false
	}

	type faceVertex struct {
		vertex core.Tuple
		normal core.Tuple
		smooth bool
	}

	verts := make([]faceVertex, 0, len(fields))
	for _, field := range fields {
		// Index forms: "v", "v/vt", "v//vn", "v/vt/vn"
		parts := strings.Split(field, "/")
		vi, err := strconv.Atoi(parts[0])
		if err != nil || vi < 1 || vi > len(p.Vertices) {
			return false
		}
		fv := faceVertex{vertex: p.Vertices[vi-1]}

		if len(parts) == 3 && parts[2] != "" {
			ni, err := strconv.Atoi(parts[2])
			if err != nil || ni < 1 || ni > len(p.Normals) {
				return false
			}
			fv.normal = p.Normals[ni-1]
			fv.smooth = true
		}
		verts = append(verts, fv)
	}

	for i := 1; i+1 < len(verts); i++ {
		a, b, c := verts[0], verts[i], verts[i+1]

		var tri core.ObjectID
		if a.smooth && b.smooth && c.smooth {
			tri = p.arena.AddSmoothTriangle(a.vertex, b.vertex, c.vertex, a.normal, b.normal, c.normal)
		} else {
			tri = p.arena.AddTriangle(a.vertex, b.vertex, c.vertex)
		}
		p.arena.AddChild(p.current, tri)
	}
	return true
}

func (p *OBJParser) namedGroup(name string) core.ObjectID {
	if id, ok := p.groups[name]; ok {
		return id
	}
	id := p.arena.AddGroup()
	p.groups[name] = id
	return id
}

// DefaultGroup returns the group receiving faces outside any named group
func (p *OBJParser) DefaultGroup() core.ObjectID {
	return p.defaultGroup
}

// Group returns a named group's identity
func (p *OBJParser) Group(name string) (core.ObjectID, bool) {
	id, ok := p.groups[name]
	return id, ok
}

// RootGroup gathers the default group and every named group under a single
// group suitable for adding to a world
func (p *OBJParser) RootGroup() core.ObjectID {
	if len(p.groups) == 0 {
		return p.defaultGroup
	}
	root := p.arena.AddGroup()
	p.arena.AddChild(root, p.defaultGroup)
	for _, id := range p.groups {
		p.arena.AddChild(root, id)
	}
	return root
}

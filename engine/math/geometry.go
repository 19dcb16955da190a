package math

import "github.com/spaghettifunk/exhibit/engine/core"

// TriangleDoubleArea returns twice the area of the triangle (a, b, c). It is
// zero for collinear or coincident corners.
func TriangleDoubleArea(a, b, c Vec3) float32 {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	return edge1.Cross(edge2).Length()
}

// GeometryDeduplicatePositions merges bit-identical positions and rewrites
// indices in place to point at the surviving copy. It returns the unique
// positions in first-seen order.
func GeometryDeduplicatePositions(positions []Vec3, indices []uint32) []Vec3 {
	unique := make([]Vec3, 0, len(positions))
	seen := make(map[Vec3]uint32, len(positions))
	remap := make([]uint32, len(positions))

	for v, p := range positions {
		if u, ok := seen[p]; ok {
			remap[v] = u
			continue
		}
		u := uint32(len(unique))
		seen[p] = u
		remap[v] = u
		unique = append(unique, p)
	}

	for i, idx := range indices {
		if int(idx) < len(remap) {
			indices[i] = remap[idx]
		}
	}

	removedCount := len(positions) - len(unique)
	if removedCount > 0 {
		core.LogDebug("geometry_deduplicate_positions: removed %d vertices, orig/now %d/%d.", removedCount, len(positions), len(unique))
	}
	return unique
}

// GeometryExtents returns the axis aligned bounds of positions. Empty input
// yields zero extents.
func GeometryExtents(positions []Vec3) Extents3D {
	if len(positions) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		ext.Min = Vec3{Min(ext.Min.X, p.X), Min(ext.Min.Y, p.Y), Min(ext.Min.Z, p.Z)}
		ext.Max = Vec3{Max(ext.Max.X, p.X), Max(ext.Max.Y, p.Y), Max(ext.Max.Z, p.Z)}
	}
	return ext
}

// Center returns the midpoint of the extents.
func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Package gg4d projects and rasterizes 3D and 4D meshes into a software
// framebuffer.
//
// # Overview
//
// A Mesh holds nodes (positions with a color and radius) and the edges and
// triangular faces that reference them by index. A Projection maps each node
// to screen coordinates and a depth. The Renderer splits the mesh into chunks
// of primitives, rasterizes them on a worker pool and commits the resulting
// fragments to a depth-tested Framebuffer.
//
// # Quick Start
//
//	import "github.com/gogpu/gg4d"
//
//	fb := gg4d.NewFramebuffer(500, 500)
//	mesh := gg4d.Sphere4(1600, 1.8)
//	mesh.Rotate(gg4d.Rotation4(gg4d.XW, 0.3))
//
//	if err := mesh.Draw(fb, gg4d.NewProjection(gg4d.Stereographic, 1)); err != nil {
//	    log.Fatal(err)
//	}
//	fb.SavePNG("sphere.png")
//
// # Projection Modes
//
//   - Perspective: screen x and y come from z and y, scaled by a pseudo depth
//     of field along x.
//   - Stereographic: 4D positions are divided by (2 + w) and drawn with a
//     fixed oblique basis. Every fragment has depth 0.
//   - Collapse: x and y are used directly; depth is z/10.
//
// # Depth
//
// Smaller depth is nearer. A pixel is overwritten only by a strictly nearer
// fragment, so ties keep whichever write arrived first. When two primitives
// tie at a pixel, the parallel renderer may therefore pick either of them.
//
// # Coordinate System
//
// Screen coordinates have the origin at the top-left with y increasing
// down. Projected positions are floored to integer pixels; fragments that
// fall outside the framebuffer are dropped.
package gg4d

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)

// Package qraft is a small quaternion-based 3D toolkit: vector and rotation
// math on [Quaternion], a scene graph of [Group] and [Mesh] nodes, procedural
// geometry, and a painter's-algorithm software renderer that draws flat
// shaded polygons onto any [Surface].
//
// # Quick start
//
// The simplest way to get started is [Run], which opens an [Ebitengine]
// window and game loop for you:
//
//	scene := qraft.NewScene()
//	scene.AddRoot(qraft.NewIcosphere("ball", 1, 2, qraft.DefaultMeshColor))
//	qraft.Run(scene, qraft.RunConfig{
//		Title: "qraft", Width: 800, Height: 600, Controls: true,
//	})
//
// For headless use, draw onto an [ImageSurface] and save it:
//
//	surface := qraft.NewImageSurface(800, 600)
//	scene.Draw(surface)
//	surface.WritePNG("frame.png")
//
// # Math
//
// A pure quaternion (W == 0) is a point or direction; a unit quaternion
// rotates. A [Frame] is three axes expressed in a parent space. Morph maps
// local coordinates into the parent and Unmorph maps back, failing with
// [ErrSingularFrame] when the axes are linearly dependent.
//
// # Scene graph
//
// Every node embeds an [Entity] holding its position and orientation
// relative to its parent. Groups own ordered children; meshes carry
// geometry. [Unpack] flattens a tree into world-space [Instance] values
// without modifying it.
//
// # Rendering
//
// [Renderer.Render] runs a fixed pipeline per frame: unpack, transform to
// camera space, project, cull (unprojectable, offscreen, back face), shade
// with an ambient plus Lambert term, sort far to near, and draw. The camera
// looks along its third axis with the second axis pointing down the screen.
//
// Scene files in JSON or YAML are read and written by [LoadGroupFile] and
// [SaveGroupFile]. Tweens use [gween]; ECS integration lives in qraft/ecs
// (a [Donburi] adapter).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package qraft

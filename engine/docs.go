/*
	rendering engine, gpu independent part

	geometry (vertices, normals, uvs, colors, faces)
		boundary
		primitives: cube, plane, sphere, torus
		obj loader

	device (viewport, clear, raster state, draw)
		opengl implementation in engine/opengl

	program (uniforms by name)
		compiler, shader library, hot reload watcher

	raster state
		opaque pass:     depth less, no blending
		accumulate pass: depth equal, blend one/one
*/

package engine

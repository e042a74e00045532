// Package hwdraw converts 2D vector drawing commands into triangle geometry,
// textures and shader invocations for an abstract GPU backend.
//
// # Overview
//
// hwdraw is a hardware-acceleration core for 2D drawing. It does not talk to
// a GPU itself. Instead, the embedding application implements the
// [GPUContext] capability interface (texture and buffer creation, shader
// program compilation, draw submission) and wraps it in a [Source]. From the
// Source it derives a render [Context], which exposes the immediate-mode
// drawing surface: fill and stroke paths, clip, draw text and images,
// save/restore transform and clip state.
//
//	src, err := hwdraw.NewSource(ctx, hwdraw.DefaultSourceOptions())
//	if err != nil { ... }
//	rc := src.RenderContext(width, height)
//	rc.Fill(path, hwdraw.NewSolidBrush(hwdraw.RGB(1, 0, 0)), hwdraw.FillRuleNonZero)
//	if err := rc.Status(); err != nil { ... }
//	if err := rc.Finish(); err != nil { ... }
//
// # Architecture
//
// The pipeline works first and foremost by converting drawing operations to
// triangles:
//   - internal/tess flattens and tessellates path geometry under a fill or
//     stroke rule into a shared vertex/index buffer.
//   - The render state stack supplies the active transform and clip mask.
//   - Clip paths are rasterized on the CPU (internal/raster), intersected
//     into a coverage buffer, and lazily uploaded as a mask texture.
//   - Glyphs are rasterized on demand and packed into a shared texture atlas
//     (internal/alloc provides the shelf allocator).
//   - Shader programs are generated and compiled once per paint/mask
//     permutation and cached for the lifetime of the Source.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Threading
//
// hwdraw uses thread-unsafe primitives throughout. UI and GPU work is
// conventionally pinned to one thread, and drawing outside of that thread is
// a bad idea; one RenderContext mutates one Source at a time with no internal
// locking.
package hwdraw

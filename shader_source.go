package hwdraw

import (
	"fmt"
	"strings"
)

// PaintKind selects the fragment color source of a shader permutation.
type PaintKind uint8

const (
	// PaintSolid colors fragments from the interpolated vertex color.
	PaintSolid PaintKind = iota
	// PaintLinearGradient blends two stops along an axis in user space.
	PaintLinearGradient
	// PaintRadialGradient blends two stops by distance from a center.
	PaintRadialGradient
	// PaintTextured samples the paint texture at the vertex UV.
	PaintTextured
)

func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "solid"
	case PaintLinearGradient:
		return "linear"
	case PaintRadialGradient:
		return "radial"
	case PaintTextured:
		return "textured"
	}
	return fmt.Sprintf("paint(%d)", uint8(k))
}

// MaskKind selects whether a permutation samples a clip mask.
type MaskKind uint8

const (
	// MaskNone applies no clipping.
	MaskNone MaskKind = iota
	// MaskTextured multiplies by the mask texture's green channel.
	MaskTextured
)

func (k MaskKind) String() string {
	if k == MaskTextured {
		return "masked"
	}
	return "unmasked"
}

// TargetKind selects the render target a permutation writes to.
type TargetKind uint8

const (
	// TargetColor writes premultiplied color to the main target.
	TargetColor TargetKind = iota
	// TargetMaskLayer writes coverage to an offscreen mask layer.
	TargetMaskLayer
)

func (k TargetKind) String() string {
	if k == TargetMaskLayer {
		return "mask-layer"
	}
	return "color"
}

// ShaderKey identifies one shader permutation.
type ShaderKey struct {
	Paint  PaintKind
	Mask   MaskKind
	Target TargetKind
}

func (k ShaderKey) String() string {
	return fmt.Sprintf("%v/%v/%v", k.Paint, k.Mask, k.Target)
}

// shaderSource generates the WGSL for a permutation. The output depends
// only on the key, so a key is safe to use as a cache index for the
// compiled program.
func shaderSource(key ShaderKey) string {
	var b strings.Builder

	b.WriteString(`struct Globals {
    mvp: mat3x3<f32>,
    viewport: vec2<f32>,
`)
	if key.Mask == MaskTextured {
		b.WriteString("    mask_mvp: mat3x3<f32>,\n")
	}
	switch key.Paint {
	case PaintLinearGradient:
		b.WriteString(`    grad_start: vec2<f32>,
    grad_end: vec2<f32>,
    grad_color0: vec4<f32>,
    grad_color1: vec4<f32>,
`)
	case PaintRadialGradient:
		b.WriteString(`    grad_center: vec2<f32>,
    grad_radius: f32,
    grad_color0: vec4<f32>,
    grad_color1: vec4<f32>,
`)
	}
	b.WriteString(`}

@group(0) @binding(0) var<uniform> globals: Globals;
@group(0) @binding(1) var paint_tex: texture_2d<f32>;
@group(0) @binding(2) var paint_samp: sampler;
`)
	if key.Mask == MaskTextured {
		b.WriteString(`@group(0) @binding(3) var mask_tex: texture_2d<f32>;
@group(0) @binding(4) var mask_samp: sampler;
`)
	}

	b.WriteString(`
struct VertexOut {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) world: vec2<f32>,
`)
	if key.Mask == MaskTextured {
		b.WriteString("    @location(3) mask_uv: vec2<f32>,\n")
	}
	b.WriteString(`}

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
) -> VertexOut {
    var out: VertexOut;
    let device = (globals.mvp * vec3<f32>(pos, 1.0)).xy;
    let ndc = vec2<f32>(
        device.x / globals.viewport.x * 2.0 - 1.0,
        1.0 - device.y / globals.viewport.y * 2.0,
    );
    out.position = vec4<f32>(ndc, 0.0, 1.0);
    out.uv = uv;
    out.color = color;
    out.world = pos;
`)
	if key.Mask == MaskTextured {
		b.WriteString("    out.mask_uv = (globals.mask_mvp * vec3<f32>(pos, 1.0)).xy;\n")
	}
	b.WriteString(`    return out;
}

fn get_color(in: VertexOut) -> vec4<f32> {
    let tint = vec4<f32>(in.color.rgb * in.color.a, in.color.a);
`)
	switch key.Paint {
	case PaintSolid, PaintTextured:
		b.WriteString("    return textureSample(paint_tex, paint_samp, in.uv) * tint;\n")
	case PaintLinearGradient:
		b.WriteString(`    let axis = globals.grad_end - globals.grad_start;
    let t = clamp(dot(in.world - globals.grad_start, axis) / dot(axis, axis), 0.0, 1.0);
    return mix(globals.grad_color0, globals.grad_color1, t) * tint;
`)
	case PaintRadialGradient:
		b.WriteString(`    let t = clamp(distance(in.world, globals.grad_center) / globals.grad_radius, 0.0, 1.0);
    return mix(globals.grad_color0, globals.grad_color1, t) * tint;
`)
	}
	b.WriteString(`}

fn get_mask_alpha(in: VertexOut) -> f32 {
`)
	if key.Mask == MaskTextured {
		b.WriteString("    return textureSample(mask_tex, mask_samp, in.mask_uv).g;\n")
	} else {
		b.WriteString("    return 1.0;\n")
	}
	b.WriteString(`}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    let color = get_color(in) * get_mask_alpha(in);
`)
	if key.Target == TargetMaskLayer {
		// Mask layers store coverage in every channel.
		b.WriteString("    return vec4<f32>(color.a, color.a, color.a, color.a);\n")
	} else {
		b.WriteString("    return color;\n")
	}
	b.WriteString("}\n")

	return b.String()
}

// uniformNames lists the uniform identifiers a permutation exposes, in
// resolution order.
func uniformNames(key ShaderKey) []string {
	names := []string{"mvp", "viewport"}
	if key.Mask == MaskTextured {
		names = append(names, "mask_mvp")
	}
	switch key.Paint {
	case PaintLinearGradient:
		names = append(names, "grad_start", "grad_end", "grad_color0", "grad_color1")
	case PaintRadialGradient:
		names = append(names, "grad_center", "grad_radius", "grad_color0", "grad_color1")
	}
	return names
}

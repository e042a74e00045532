package soft_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/hwdraw"
	"github.com/gogpu/hwdraw/backend/soft"
)

// newScene builds a software target with a render context over it.
func newScene(t *testing.T, width, height int) (*soft.Context, *hwdraw.Source, *hwdraw.Context) {
	t.Helper()
	target := soft.New(width, height)
	src, err := hwdraw.NewSource(target, hwdraw.SourceOptions{AtlasSize: 256})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	t.Cleanup(src.Release)
	return target, src, src.RenderContext(width, height)
}

// near reports whether every channel is within tol of want.
func near(got, want [4]uint8, tol int) bool {
	for i := range got {
		d := int(got[i]) - int(want[i])
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func finish(t *testing.T, ctx *hwdraw.Context) {
	t.Helper()
	if err := ctx.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestFillSolidRect(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	ctx.FillRect(hwdraw.NewRect(8, 8, 24, 24), hwdraw.NewSolidBrush(hwdraw.RGB(1, 0, 0)))
	finish(t, ctx)

	if got := target.At(16, 16); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("inside pixel = %v, want opaque red", got)
	}
	if got := target.At(40, 40); got != [4]uint8{} {
		t.Errorf("outside pixel = %v, want untouched", got)
	}
	if target.DrawCount() != 1 {
		t.Errorf("draws = %d, want 1", target.DrawCount())
	}
}

func TestFillRespectsTransform(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	ctx.Transform(hwdraw.Translate(32, 0))
	ctx.FillRect(hwdraw.NewRect(0, 0, 16, 16), hwdraw.NewSolidBrush(hwdraw.RGB(0, 1, 0)))
	finish(t, ctx)

	if got := target.At(8, 8); got != [4]uint8{} {
		t.Errorf("pre-translate position = %v, want untouched", got)
	}
	if got := target.At(40, 8); got != [4]uint8{0, 255, 0, 255} {
		t.Errorf("translated position = %v, want opaque green", got)
	}
}

func TestAlphaBlendOverClear(t *testing.T) {
	target, _, ctx := newScene(t, 32, 32)

	ctx.Clear(nil, hwdraw.White)
	ctx.FillRect(hwdraw.NewRect(0, 0, 32, 32),
		hwdraw.NewSolidBrush(hwdraw.RGBA{B: 1, A: 0.5}))
	finish(t, ctx)

	// Half-alpha blue over white: R and G fall to ~50%, B saturates
	// (0.5 contributed by the source plus 0.5 showing through).
	if got := target.At(10, 20); !near(got, [4]uint8{127, 127, 255, 255}, 2) {
		t.Errorf("blended pixel = %v, want about {127 127 255 255}", got)
	}
}

func TestClearRegion(t *testing.T) {
	target, _, ctx := newScene(t, 32, 32)

	ctx.Clear(nil, hwdraw.RGB(0, 0, 1))
	region := hwdraw.NewRect(0, 0, 16, 32)
	ctx.Clear(&region, hwdraw.RGB(1, 0, 0))
	finish(t, ctx)

	if got := target.At(4, 4); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("cleared region = %v, want red", got)
	}
	if got := target.At(24, 4); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("outside region = %v, want blue", got)
	}
}

func TestClipRestrictsFill(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	ctx.ClipRect(hwdraw.NewRect(0, 0, 32, 64))
	ctx.FillRect(hwdraw.NewRect(0, 0, 64, 64), hwdraw.NewSolidBrush(hwdraw.RGB(1, 0, 0)))
	finish(t, ctx)

	if got := target.At(16, 16); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("inside clip = %v, want opaque red", got)
	}
	if got := target.At(48, 16); got != [4]uint8{} {
		t.Errorf("outside clip = %v, want untouched", got)
	}
}

func TestClipIntersection(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	ctx.ClipRect(hwdraw.NewRect(0, 0, 40, 64))
	ctx.ClipRect(hwdraw.NewRect(24, 0, 64, 64))
	ctx.FillRect(hwdraw.NewRect(0, 0, 64, 64), hwdraw.NewSolidBrush(hwdraw.RGB(1, 0, 0)))
	finish(t, ctx)

	if got := target.At(32, 32); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("intersection pixel = %v, want opaque red", got)
	}
	if got := target.At(8, 32); got != [4]uint8{} {
		t.Errorf("left-only pixel = %v, want untouched", got)
	}
	if got := target.At(56, 32); got != [4]uint8{} {
		t.Errorf("right-only pixel = %v, want untouched", got)
	}
}

func TestLinearGradientRamp(t *testing.T) {
	target, _, ctx := newScene(t, 64, 16)

	ctx.FillRect(hwdraw.NewRect(0, 0, 64, 16), hwdraw.LinearGradientBrush{
		Start: hwdraw.Pt(0, 0),
		End:   hwdraw.Pt(64, 0),
		Stops: []hwdraw.GradientStop{
			{Offset: 0, Color: hwdraw.Black},
			{Offset: 1, Color: hwdraw.White},
		},
	})
	finish(t, ctx)

	left := target.At(4, 8)
	mid := target.At(32, 8)
	right := target.At(60, 8)
	if !(left[0] < mid[0] && mid[0] < right[0]) {
		t.Errorf("gradient not increasing: left %v mid %v right %v", left, mid, right)
	}
	if !near(mid, [4]uint8{129, 129, 129, 255}, 3) {
		t.Errorf("midpoint = %v, want about half gray", mid)
	}
}

func TestRadialGradientFalloff(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	ctx.FillRect(hwdraw.NewRect(0, 0, 64, 64), hwdraw.RadialGradientBrush{
		Center: hwdraw.Pt(32, 32),
		Radius: 32,
		Stops: []hwdraw.GradientStop{
			{Offset: 0, Color: hwdraw.White},
			{Offset: 1, Color: hwdraw.Transparent},
		},
	})
	finish(t, ctx)

	if got := target.At(32, 32); got[0] < 240 || got[3] < 240 {
		t.Errorf("center pixel = %v, want near-white", got)
	}
	if got := target.At(1, 1); got != [4]uint8{} {
		t.Errorf("corner pixel = %v, want untouched beyond radius", got)
	}
}

func TestDrawImageAreaScales(t *testing.T) {
	target, src, ctx := newScene(t, 64, 32)

	// 2x1 image: red texel, blue texel.
	img, err := src.MakeImage(2, 1, hwdraw.FormatRGBA8,
		[]byte{255, 0, 0, 255, 0, 0, 255, 255}, hwdraw.InterpNearest)
	if err != nil {
		t.Fatalf("MakeImage: %v", err)
	}
	defer img.Release()

	ctx.DrawImageArea(img, hwdraw.NewRect(0, 0, 2, 1), hwdraw.NewRect(0, 0, 64, 32), hwdraw.InterpNearest)
	finish(t, ctx)

	if got := target.At(10, 10); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("left half = %v, want red", got)
	}
	if got := target.At(54, 10); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("right half = %v, want blue", got)
	}
}

func TestStrokeRendersPixels(t *testing.T) {
	target, _, ctx := newScene(t, 64, 64)

	var p hwdraw.Path
	p.MoveTo(8, 32)
	p.LineTo(56, 32)
	style := hwdraw.DefaultStrokeStyle()
	style.Width = 4
	ctx.Stroke(&p, hwdraw.NewSolidBrush(hwdraw.RGB(1, 0, 0)), style)
	finish(t, ctx)

	if got := target.At(32, 32); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("on-stroke pixel = %v, want opaque red", got)
	}
	if got := target.At(32, 40); got != [4]uint8{} {
		t.Errorf("off-stroke pixel = %v, want untouched", got)
	}
}

func TestDrawTextRendersPixels(t *testing.T) {
	target, _, ctx := newScene(t, 96, 64)

	fnt, err := hwdraw.ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	run := &hwdraw.GlyphRun{
		Glyphs: []hwdraw.Glyph{{Font: fnt, ID: fnt.GlyphIndex('A')}},
		Size:   32,
		Color:  hwdraw.Black,
	}
	ctx.DrawText(run, hwdraw.Pt(16, 48))
	finish(t, ctx)

	covered := false
	for _, v := range target.Pixels() {
		if v != 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("glyph draw produced no coverage")
	}
}

func TestFinishFlushesTarget(t *testing.T) {
	target, _, ctx := newScene(t, 8, 8)
	finish(t, ctx)
	if target.FlushCount() != 1 {
		t.Errorf("flushes = %d, want 1", target.FlushCount())
	}
}

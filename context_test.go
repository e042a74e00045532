package hwdraw

import (
	"errors"
	"math"
	"testing"
)

func unitSquare() *Path {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 0)
	p.LineTo(1, 1)
	p.LineTo(0, 1)
	p.Close()
	return p
}

func TestRestoreAtBaseFails(t *testing.T) {
	src, _ := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Transform(Translate(5, 7))
	if err := c.Restore(); !errors.Is(err, ErrUnbalancedStack) {
		t.Fatalf("Restore = %v, want ErrUnbalancedStack", err)
	}
	// The base state survives the failed restore.
	got := c.CurrentTransform()
	if got != Translate(5, 7) {
		t.Errorf("transform after failed restore = %+v", got)
	}
}

func TestSaveRestoreTransform(t *testing.T) {
	src, _ := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Transform(Scale(2, 2))
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}
	c.Transform(Translate(10, 0))
	if err := c.Restore(); err != nil {
		t.Fatal(err)
	}
	if got := c.CurrentTransform(); got != Scale(2, 2) {
		t.Errorf("transform after restore = %+v", got)
	}
}

func TestTransformComposesLeft(t *testing.T) {
	src, _ := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	a := Translate(10, 0)
	b := Scale(2, 2)
	c.Transform(a)
	c.Transform(b)

	// Applying A then B to a point must equal the stacked transform.
	p := Pt(3, 4)
	want := b.TransformPoint(a.TransformPoint(p))
	got := c.CurrentTransform().TransformPoint(p)
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
		t.Errorf("composed point = %v, want %v", got, want)
	}
}

func TestFillUnitSquareGeometry(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Fill(unitSquare(), NewSolidBrush(RGB(1, 0, 0)), FillRuleNonZero)
	if err := c.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}

	if gpu.vertexWrites != 1 {
		t.Fatalf("vertex writes = %d, want 1", gpu.vertexWrites)
	}
	if len(gpu.lastVertices) != 4 || len(gpu.lastIndices) != 6 {
		t.Fatalf("got %d vertices / %d indices, want 4 / 6",
			len(gpu.lastVertices), len(gpu.lastIndices))
	}
	for i, v := range gpu.lastVertices {
		if v.Color != [4]uint8{255, 0, 0, 255} {
			t.Errorf("vertex %d color = %v, want red", i, v.Color)
		}
		if v.UV != uvWhite {
			t.Errorf("vertex %d uv = %v, want white sentinel", i, v.UV)
		}
	}
	if len(gpu.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(gpu.draws))
	}
	op := gpu.draws[0]
	if op.PaintTexture != src.white.id {
		t.Errorf("paint texture = %d, want white texture %d", op.PaintTexture, src.white.id)
	}
	if op.IndexCount != 6 {
		t.Errorf("index count = %d, want 6", op.IndexCount)
	}
}

func TestSweepGradientUnimplemented(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Fill(unitSquare(), SweepGradientBrush{Center: Pt(0.5, 0.5)}, FillRuleNonZero)
	if err := c.Status(); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("Status = %v, want ErrUnimplemented", err)
	}
	if gpu.vertexWrites != 0 {
		t.Errorf("vertex writes = %d, want 0", gpu.vertexWrites)
	}
	if len(src.vertices) != 0 || len(src.indices) != 0 {
		t.Errorf("scratch geometry not empty: %d vertices, %d indices",
			len(src.vertices), len(src.indices))
	}
}

func TestMultiStopGradientUnsupported(t *testing.T) {
	src, _ := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	stops := []GradientStop{
		{Offset: 0, Color: RGB(1, 0, 0)},
		{Offset: 0.5, Color: RGB(0, 1, 0)},
		{Offset: 1, Color: RGB(0, 0, 1)},
	}
	c.Fill(unitSquare(), LinearGradientBrush{End: Pt(1, 0), Stops: stops}, FillRuleNonZero)
	if err := c.Status(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Status = %v, want ErrUnsupported", err)
	}
}

func TestDashStrokeUnsupported(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	style := DefaultStrokeStyle()
	style.Dash = []float64{4, 2}
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	c.Stroke(p, NewSolidBrush(Black), style)

	if err := c.Status(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Status = %v, want ErrUnsupported", err)
	}
	if gpu.vertexWrites != 0 {
		t.Errorf("vertex writes = %d, want 0", gpu.vertexWrites)
	}
}

func TestStrokeSubmitsGeometry(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	p := NewPath()
	p.MoveTo(10, 10)
	p.LineTo(50, 10)
	c.Stroke(p, NewSolidBrush(Black), DefaultStrokeStyle())

	if err := c.Status(); err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(gpu.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(gpu.draws))
	}
}

func TestStatusFirstErrorWinsAndClears(t *testing.T) {
	src, _ := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Fill(unitSquare(), SweepGradientBrush{}, FillRuleNonZero) // ErrUnimplemented
	style := DefaultStrokeStyle()
	style.Dash = []float64{1, 1}
	c.Stroke(unitSquare(), NewSolidBrush(Black), style) // ErrUnsupported, masked

	if err := c.Status(); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("first Status = %v, want ErrUnimplemented", err)
	}
	if err := c.Status(); err != nil {
		t.Fatalf("second Status = %v, want nil", err)
	}
}

func TestClearFullTargetUsesBackendClear(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Clear(nil, RGB(0, 0, 1))
	if len(gpu.clears) != 1 {
		t.Fatalf("backend clears = %d, want 1", len(gpu.clears))
	}
	if len(gpu.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(gpu.draws))
	}
}

func TestClearRegionDraws(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	region := RectFromSize(10, 10, 20, 20)
	c.Clear(&region, RGB(0, 0, 1))
	if len(gpu.clears) != 0 {
		t.Errorf("backend clears = %d, want 0", len(gpu.clears))
	}
	if len(gpu.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(gpu.draws))
	}
}

func TestFinishFlushes(t *testing.T) {
	src, gpu := newTestSource(t)
	defer src.Release()
	c := src.RenderContext(100, 100)

	c.Save()
	if err := c.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if gpu.flushes != 1 {
		t.Errorf("flushes = %d, want 1", gpu.flushes)
	}
}

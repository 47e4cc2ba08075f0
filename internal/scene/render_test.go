package scene

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRenderAllProducesFrame(t *testing.T) {
	c := NewCanvas(120, 80, WithBackground("#ffffff"))
	page := NewRect(0, 0, 100, 60, 0, 0)
	page.Fill = "white"
	page.StrokeWidth = 0
	page.Selectable = false
	page.Shadow = &Shadow{Color: "rgba(0,0,0,0.8)", Blur: 5}
	c.Add(page)
	c.SetClipPath(page)
	c.CenterObject(page)

	box := NewRect(20, 20, 30, 20, 0, 0)
	box.Fill = "#ff0000"
	box.StrokeWidth = 0
	c.Add(box)

	c.RenderAll()
	frame := c.Frame()
	if frame == nil {
		t.Fatal("expected a frame")
	}
	if frame.Bounds().Dx() != 120 || frame.Bounds().Dy() != 80 {
		t.Fatalf("unexpected frame bounds %v", frame.Bounds())
	}
	if c.RenderCount() != 1 {
		t.Fatalf("render count %d", c.RenderCount())
	}
	px := frame.RGBAAt(35, 30)
	if px.R < 200 || px.G > 60 {
		t.Fatalf("expected red inside box, got %+v", px)
	}
	// The page spans x 10..110; its shadow darkens the backdrop past the edge.
	if sh := frame.RGBAAt(112, 40); sh.R > 245 {
		t.Fatalf("expected page shadow beside the page, got %+v", sh)
	}
	if far := frame.RGBAAt(118, 2); far.R < 250 {
		t.Fatalf("shadow reaches too far: %+v", far)
	}
}

func TestClipPathHidesOutside(t *testing.T) {
	c := NewCanvas(100, 100, WithBackground("#000000"))
	page := NewRect(0, 0, 50, 50, 0, 0)
	page.Fill = "white"
	page.StrokeWidth = 0
	c.Add(page)
	c.SetClipPath(page)

	spill := NewRect(0, 0, 100, 100, 0, 0)
	spill.Fill = "#00ff00"
	spill.StrokeWidth = 0
	c.Add(spill)

	img, err := c.Export(nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if px := img.RGBAAt(80, 80); px.G > 40 {
		t.Fatalf("paint leaked outside clip: %+v", px)
	}
	if px := img.RGBAAt(20, 20); px.G < 200 {
		t.Fatalf("expected green inside clip, got %+v", px)
	}
}

func TestExportCropsToArea(t *testing.T) {
	c := NewCanvas(400, 300)
	page := NewRect(0, 0, 90, 120, 0, 0)
	page.Fill = "white"
	page.StrokeWidth = 0
	c.Add(page)
	c.CenterObject(page)

	img, err := c.Export(page)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if img.Bounds().Dx() != 90 || img.Bounds().Dy() != 120 {
		t.Fatalf("unexpected export size %v", img.Bounds())
	}
	if px := img.RGBAAt(45, 60); px.R != 255 || px.G != 255 {
		t.Fatalf("expected white page, got %+v", px)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf, page); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 90 {
		t.Fatalf("unexpected png width %d", decoded.Bounds().Dx())
	}
}

func TestRenderShapesAndText(t *testing.T) {
	c := NewCanvas(300, 300)
	shapes := []*Object{
		NewCircle(10, 10, 20),
		NewTriangle(60, 10, 40, 40),
		NewPolygon(110, 10, []Point{{20, 0}, {40, 20}, {20, 40}, {0, 20}}),
		NewRect(160, 10, 40, 40, 8, 8),
		NewText(10, 100, "hi", 24),
	}
	for _, s := range shapes {
		s.Stroke = "#000000"
		s.StrokeWidth = 2
		s.SetStrokeDashArray([]float64{4, 2})
		s.Opacity = 0.5
	}
	c.Add(shapes...)
	c.SetActiveObjects(shapes[:2])
	c.SetControlStyle(ControlStyle{
		CornerColor:       "#FFF",
		CornerStrokeColor: "#3b82f6",
		CornerStyle:       CornerCircle,
		BorderColor:       "#3b82f6",
		BorderScaleFactor: 1.5,
	})
	c.RenderAll()
	if c.Frame() == nil {
		t.Fatal("expected a frame")
	}
}

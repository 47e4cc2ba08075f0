package render

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func TestCastPadsByBlur(t *testing.T) {
	img, at := Shadow{Blur: 4, Offset: image.Pt(8, 6)}.Cast(solid(10, 10))
	if img == nil {
		t.Fatal("expected output image")
	}
	if want := image.Rect(0, 0, 18, 18); !img.Bounds().Eq(want) {
		t.Fatalf("bounds %v, want %v", img.Bounds(), want)
	}
	if at != image.Pt(4, 2) {
		t.Fatalf("at = %v", at)
	}
	// Centre is fully covered; the blurred rim fades out.
	if a := img.RGBAAt(9, 9).A; a != 255 {
		t.Errorf("centre alpha %d", a)
	}
	if a := img.RGBAAt(0, 0).A; a == 0 || a >= 128 {
		t.Errorf("corner alpha %d", a)
	}
}

func TestCastTint(t *testing.T) {
	tint := color.NRGBA{R: 255, A: 204}
	img, at := Shadow{Color: tint}.Cast(solid(3, 3))
	if at != (image.Point{}) {
		t.Fatalf("at = %v", at)
	}
	got := img.RGBAAt(1, 1)
	if got != (color.RGBA{R: 204, A: 204}) {
		t.Fatalf("pixel %+v", got)
	}
}

func TestCastKeepsHoles(t *testing.T) {
	m := image.NewAlpha(image.Rect(5, 5, 8, 6))
	m.SetAlpha(5, 5, color.Alpha{A: 255})
	img, _ := Shadow{}.Cast(m)
	if img.RGBAAt(0, 0).A != 255 || img.RGBAAt(1, 0).A != 0 || img.RGBAAt(2, 0).A != 0 {
		t.Fatalf("unblurred shadow should copy the silhouette: %v", img.Pix)
	}
}

func TestCastEmpty(t *testing.T) {
	if img, _ := (Shadow{Blur: 3}).Cast(image.NewAlpha(image.Rectangle{})); img != nil {
		t.Fatal("empty silhouette should cast nothing")
	}
}

func TestBoxBlurAveragesInsideEdges(t *testing.T) {
	p := []uint8{0, 0, 90, 0, 0}
	boxBlur(p, 5, 1, 1)
	want := []uint8{0, 30, 30, 30, 0}
	for i := range p {
		if p[i] != want[i] {
			t.Fatalf("row %v, want %v", p, want)
		}
	}
}

package display

import (
	"image"
	"testing"
)

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3840, 1200), Primary: true},
}

func TestFind(t *testing.T) {
	tests := []struct {
		selector string
		want     string
		wantErr  bool
	}{
		{"", "eDP-1", false},
		{"primary", "eDP-1", false},
		{"0", "HDMI-1", false},
		{"#1", "eDP-1", false},
		{"hdmi", "HDMI-1", false},
		{"5", "", true},
		{"vga", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			got, err := Find(layout, tt.selector)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Name != tt.want {
				t.Errorf("got %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestFindEmpty(t *testing.T) {
	if _, err := Find(nil, ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestWindowSize(t *testing.T) {
	if got := WindowSize(layout[0], 0.5); got != image.Pt(960, 540) {
		t.Errorf("got %v", got)
	}
	if got := WindowSize(Monitor{Rect: image.Rect(0, 0, 100, 100)}, 0.5); got != image.Pt(320, 240) {
		t.Errorf("minimum not applied: %v", got)
	}
	if got := WindowSize(layout[1], 0); got != image.Pt(1920, 1200) {
		t.Errorf("zero fraction should mean full size: %v", got)
	}
}

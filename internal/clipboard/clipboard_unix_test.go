//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

// resetInit forgets any earlier clipboard initialisation in this process.
func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
	})
}

func TestHeadlessCopyFails(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	page := image.NewRGBA(image.Rect(0, 0, 4, 3))
	if err := WriteImage(page); !errors.Is(err, errNoDisplay) {
		t.Fatalf("WriteImage without a display: %v", err)
	}
	if _, err := ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("ReadImage without a display: %v", err)
	}
}

package gui

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGetAppIcon(t *testing.T) {
	res := GetAppIcon()
	if res.Name() != "flashpage.png" {
		t.Errorf("Name() = %q", res.Name())
	}

	img, err := png.Decode(bytes.NewReader(res.Content()))
	if err != nil {
		t.Fatalf("Icon is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("Icon size = %dx%d, want 128x128", b.Dx(), b.Dy())
	}
}

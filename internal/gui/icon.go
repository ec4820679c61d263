package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

var (
	iconOnce sync.Once
	iconData []byte
)

// GetAppIcon returns the application icon as a Fyne resource: a stack of
// two flashcards in the page colours.
func GetAppIcon() fyne.Resource {
	iconOnce.Do(func() {
		iconData = drawIcon(128)
	})
	return &fyne.StaticResource{
		StaticName:    "flashpage.png",
		StaticContent: iconData,
	}
}

func drawIcon(size int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	back := color.RGBA{R: 0x7e, G: 0xb6, B: 0xff, A: 0xff}
	front := color.RGBA{R: 0xf0, G: 0xf8, B: 0xff, A: 0xff}
	line := color.RGBA{R: 0xff, G: 0x8c, B: 0x42, A: 0xff}

	fill := func(x0, y0, x1, y1 int, c color.Color) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.Set(x, y, c)
			}
		}
	}

	unit := size / 8
	fill(2*unit, unit, 7*unit, 5*unit, back)
	fill(unit, 3*unit, 6*unit, 7*unit, front)
	fill(2*unit, 4*unit, 5*unit, 4*unit+unit/2, line)
	fill(2*unit, 5*unit+unit/2, 4*unit, 6*unit, line)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

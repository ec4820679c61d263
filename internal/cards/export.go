package cards

import (
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"codeberg.org/snonux/flashpage/internal"
)

// DefaultScale is the upscaling factor applied to the rendered page.
const DefaultScale = 2

// DefaultBackground is the page colour behind transparent regions (#f0f8ff).
var DefaultBackground = color.RGBA{R: 0xf0, G: 0xf8, B: 0xff, A: 0xff}

// Renderer produces a picture of the page, e.g. a capture of the window.
type Renderer interface {
	Render() (stdimage.Image, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func() (stdimage.Image, error)

func (f RendererFunc) Render() (stdimage.Image, error) {
	return f()
}

// ExportOptions configures Export.
type ExportOptions struct {
	Dir        string      // Directory receiving the PNG
	Label      string      // Learner name used in the file name
	Scale      int         // Upscaling factor, <= 0 means DefaultScale
	Background color.Color // nil means DefaultBackground
	Now        time.Time   // Date used in the file name, zero means time.Now
}

// ExportFilename returns "<label>_wordcards_<YYYY-MM-DD>.png", or
// "wordcards_<YYYY-MM-DD>.png" when label is blank.
func ExportFilename(label string, t time.Time) string {
	date := t.Format("2006-01-02")
	label = internal.SanitizeFilename(label)
	if strings.Trim(label, "_") == "" {
		return fmt.Sprintf("wordcards_%s.png", date)
	}
	return fmt.Sprintf("%s_wordcards_%s.png", label, date)
}

// Export renders the page and writes it as a PNG into opts.Dir. It returns
// the path written. A failed export leaves no file behind.
func Export(r Renderer, opts ExportOptions) (string, error) {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Background == nil {
		opts.Background = DefaultBackground
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}

	src, err := r.Render()
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	if src == nil || src.Bounds().Empty() {
		return "", fmt.Errorf("failed to render page: empty image")
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(opts.Dir, ".wordcards-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	err = png.Encode(tmp, compose(src, opts.Scale, opts.Background))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode page: %w", err)
	}

	outputPath := uniquePath(filepath.Join(opts.Dir, ExportFilename(opts.Label, opts.Now)))
	if err := os.Rename(tmpName, outputPath); err != nil {
		return "", fmt.Errorf("failed to save page: %w", err)
	}
	return outputPath, nil
}

// compose scales src by scale over an opaque background.
func compose(src stdimage.Image, scale int, bg color.Color) *stdimage.RGBA {
	b := src.Bounds()
	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.Draw(dst, dst.Bounds(), stdimage.NewUniform(bg), stdimage.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// uniquePath appends _2, _3, ... before the extension until path is free.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

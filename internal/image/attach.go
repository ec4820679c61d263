package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// MaxSizeBytes is the largest image accepted for a card.
const MaxSizeBytes = 10 * 1024 * 1024 // 10MB

// Attachment is a decoded picture together with its original bytes.
type Attachment struct {
	Name  string // File name shown to the user
	MIME  string // Sniffed content type, always "image/..."
	Data  []byte
	Image image.Image
}

// Size returns the pixel dimensions of the picture.
func (a *Attachment) Size() (width, height int) {
	if a == nil || a.Image == nil {
		return 0, 0
	}
	b := a.Image.Bounds()
	return b.Dx(), b.Dy()
}

// LoadFile reads and decodes the picture at path.
func LoadFile(path string) (*Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f, MaxSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes decodes pasted or uploaded image data. Anything that is not
// sniffed as an image is rejected.
func FromBytes(name string, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(data) > MaxSizeBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", MaxSizeBytes)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("not an image: %s", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if name == "" {
		name = "pasted" + extensionFor(mime)
	}
	return &Attachment{
		Name:  name,
		MIME:  mime,
		Data:  data,
		Image: img,
	}, nil
}

// readLimited reads r completely but fails once more than max bytes arrive.
func readLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", max)
	}
	return data, nil
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

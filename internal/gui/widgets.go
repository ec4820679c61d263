package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/flashpage/internal/image"
)

// ImageDisplay is a custom widget for displaying a card's picture
type ImageDisplay struct {
	widget.BaseWidget

	container   *fyne.Container
	imageCanvas *canvas.Image
	imageLabel  *widget.Label
}

// NewImageDisplay creates a new image display widget
func NewImageDisplay() *ImageDisplay {
	d := &ImageDisplay{}

	d.imageCanvas = canvas.NewImageFromResource(nil)
	d.imageCanvas.FillMode = canvas.ImageFillContain
	d.imageCanvas.SetMinSize(fyne.NewSize(160, 120))

	d.imageLabel = widget.NewLabel("No image")
	d.imageLabel.Alignment = fyne.TextAlignCenter
	d.imageLabel.Truncation = fyne.TextTruncateEllipsis

	d.container = container.NewBorder(
		nil,
		d.imageLabel,
		nil, nil,
		d.imageCanvas,
	)

	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer implements fyne.Widget
func (d *ImageDisplay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.container)
}

// SetAttachment shows the attached picture, or clears the display for nil
func (d *ImageDisplay) SetAttachment(att *image.Attachment) {
	if att == nil || att.Image == nil {
		d.Clear()
		return
	}

	d.imageCanvas.Image = att.Image
	d.imageCanvas.Refresh()

	w, h := att.Size()
	d.imageLabel.SetText(fmt.Sprintf("%s (%dx%d)", att.Name, w, h))
}

// Clear clears the display
func (d *ImageDisplay) Clear() {
	d.imageCanvas.Image = nil
	d.imageCanvas.Refresh()
	d.imageLabel.SetText("No image")
}

// SetLoading shows a loading status
func (d *ImageDisplay) SetLoading() {
	d.imageLabel.SetText("Loading...")
}

// SetError shows why the picture could not be attached
func (d *ImageDisplay) SetError(err error) {
	d.imageLabel.SetText(fmt.Sprintf("Error: %v", err))
}

// SetCaptionVisible shows or hides the file name under the picture
func (d *ImageDisplay) SetCaptionVisible(visible bool) {
	if visible {
		d.imageLabel.Show()
	} else {
		d.imageLabel.Hide()
	}
}

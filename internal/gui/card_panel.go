package gui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/flashpage/internal/image"
	"codeberg.org/snonux/flashpage/internal/speech"
)

// imageExtensions are offered by the open dialog
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// CardPanel shows and edits one card of the page
type CardPanel struct {
	index int
	app   *Application

	frame        *canvas.Rectangle
	textEntry    *CardEntry
	translateBtn *ttwidget.Button
	statusLabel  *widget.Label
	senseBox     *fyne.Container
	senseEntry   *CardEntry
	addSenseBtn  *ttwidget.Button
	speakSlowBtn *ttwidget.Button
	speakBtn     *ttwidget.Button
	speakFastBtn *ttwidget.Button
	openImageBtn *ttwidget.Button
	pasteBtn     *ttwidget.Button
	removeImgBtn *ttwidget.Button
	imageDisplay *ImageDisplay
	noteEntry    *CardEntry

	// hidden while the page is captured for export
	editControls []fyne.CanvasObject

	// UI thread only
	resolving bool
	resolved  bool
	exporting bool
	content   fyne.CanvasObject
}

// NewCardPanel builds the widgets of card index
func NewCardPanel(a *Application, index int) *CardPanel {
	p := &CardPanel{index: index, app: a}

	p.frame = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	p.frame.StrokeWidth = 2
	p.frame.CornerRadius = theme.InputRadiusSize()

	p.textEntry = NewCardEntry()
	p.textEntry.SetPlaceHolder(fmt.Sprintf("Card %d: English or Korean...", index+1))
	p.textEntry.OnChanged = p.onTextChanged
	p.textEntry.OnSubmitted = func(string) { p.resolve() }
	p.textEntry.OnEscape = a.unfocus
	p.textEntry.OnFocus = func() { a.setActiveCard(index) }

	p.translateBtn = ttwidget.NewButtonWithIcon("", theme.SearchIcon(), p.resolve)

	p.statusLabel = widget.NewLabel("")
	p.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	p.senseBox = container.NewVBox()

	p.senseEntry = NewCardEntry()
	p.senseEntry.SetPlaceHolder("Add a meaning...")
	p.senseEntry.OnSubmitted = func(string) { p.addSense() }
	p.senseEntry.OnEscape = a.unfocus
	p.senseEntry.OnFocus = func() { a.setActiveCard(index) }
	p.addSenseBtn = ttwidget.NewButtonWithIcon("", theme.ContentAddIcon(), p.addSense)

	p.speakSlowBtn = ttwidget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), func() { p.speak(speech.RateSlow) })
	p.speakBtn = ttwidget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() { p.speak(speech.RateNormal) })
	p.speakFastBtn = ttwidget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), func() { p.speak(speech.RateFast) })

	p.imageDisplay = NewImageDisplay()
	p.openImageBtn = ttwidget.NewButtonWithIcon("", theme.FolderOpenIcon(), p.openImage)
	p.pasteBtn = ttwidget.NewButtonWithIcon("", theme.ContentPasteIcon(), p.pasteImage)
	p.removeImgBtn = ttwidget.NewButtonWithIcon("", theme.DeleteIcon(), p.removeImage)
	p.removeImgBtn.Importance = widget.DangerImportance

	p.noteEntry = NewNoteEntry()
	p.noteEntry.SetPlaceHolder("Note...")
	p.noteEntry.SetMinRowsVisible(2)
	p.noteEntry.OnChanged = func(note string) {
		if err := a.page.SetNote(index, note); err != nil {
			a.logger.Error("Failed to store note", slog.Int("card", index), slog.String("error", err.Error()))
		}
	}
	p.noteEntry.OnEscape = a.unfocus
	p.noteEntry.OnFocus = func() { a.setActiveCard(index) }

	speakRow := container.NewHBox(p.speakSlowBtn, p.speakBtn, p.speakFastBtn)
	imageRow := container.NewHBox(p.openImageBtn, p.pasteBtn, p.removeImgBtn)
	senseInput := container.NewBorder(nil, nil, nil, p.addSenseBtn, p.senseEntry)

	p.editControls = []fyne.CanvasObject{
		p.translateBtn, senseInput, speakRow, imageRow, p.statusLabel,
	}

	inner := container.NewVBox(
		container.NewBorder(nil, nil, nil, p.translateBtn, p.textEntry),
		p.statusLabel,
		p.senseBox,
		senseInput,
		speakRow,
		p.imageDisplay,
		imageRow,
		p.noteEntry,
	)
	p.content = container.NewStack(p.frame, container.NewPadded(inner))

	p.refresh()
	return p
}

// CanvasObject returns the panel content
func (p *CardPanel) CanvasObject() fyne.CanvasObject {
	return p.content
}

// setupTooltips must run after the window tooltip layer exists
func (p *CardPanel) setupTooltips() {
	p.translateBtn.SetToolTip("Translate (t)")
	p.addSenseBtn.SetToolTip("Add meaning")
	p.speakSlowBtn.SetToolTip("Read slowly")
	p.speakBtn.SetToolTip("Read aloud (p)")
	p.speakFastBtn.SetToolTip("Read fast")
	p.openImageBtn.SetToolTip("Open picture")
	p.pasteBtn.SetToolTip("Paste picture path or URL (v)")
	p.removeImgBtn.SetToolTip("Remove picture")
}

// SetActive highlights the panel as the target of keyboard shortcuts
func (p *CardPanel) SetActive(active bool) {
	if active {
		p.frame.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		p.frame.StrokeColor = theme.Color(theme.ColorNameSeparator)
	}
	p.frame.Refresh()
}

// SetEditing shows or hides everything that should not appear on the exported page
func (p *CardPanel) SetEditing(editing bool) {
	for _, obj := range p.editControls {
		if editing {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
	p.imageDisplay.SetCaptionVisible(editing)
	p.exporting = !editing
	p.refresh()
}

// Clear empties the widgets after the page has been reset
func (p *CardPanel) Clear() {
	p.textEntry.SetText("")
	p.senseEntry.SetText("")
	p.noteEntry.SetText("")
	p.resolving = false
	p.resolved = false
	p.refresh()
}

// Load puts text into the panel. Senses given by the caller are applied
// directly, otherwise the text is resolved.
func (p *CardPanel) Load(text string, senses []string) {
	// SetText fires OnChanged for new text, which resets the card.
	p.textEntry.SetText(text)

	if len(senses) == 0 {
		p.resolve()
		return
	}
	if t, ok := p.app.page.BeginResolve(p.index); ok {
		p.resolved = p.app.page.ApplySenses(t, senses)
	}
	p.refresh()
}

func (p *CardPanel) onTextChanged(text string) {
	if _, err := p.app.page.SetText(p.index, text); err != nil {
		p.app.logger.Error("Failed to store text", slog.Int("card", p.index), slog.String("error", err.Error()))
		return
	}
	p.resolving = false
	p.resolved = false
	p.refresh()
	p.app.checkComplete()
}

// resolve looks up the card's text in the background. A response for text
// that has changed in the meantime is dropped by the page.
func (p *CardPanel) resolve() {
	ticket, ok := p.app.page.BeginResolve(p.index)
	if !ok {
		return
	}

	p.resolving = true
	p.refresh()

	a := p.app
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		senses := a.config.Resolver.Resolve(a.ctx, ticket.Text)
		if !a.page.ApplySenses(ticket, senses) {
			a.logger.Debug("Dropped stale translation",
				slog.Int("card", ticket.Index), slog.String("text", ticket.Text))
			return
		}

		fyne.Do(func() {
			p.resolving = false
			p.resolved = true
			p.refresh()
			a.checkComplete()
		})
	}()
}

func (p *CardPanel) addSense() {
	added, err := p.app.page.AddSense(p.index, p.senseEntry.Text)
	if err != nil {
		p.app.showError(err)
		return
	}
	p.senseEntry.SetText("")
	if added {
		p.refresh()
		p.app.checkComplete()
	}
}

func (p *CardPanel) removeSense(j int) {
	if err := p.app.page.RemoveSense(p.index, j); err != nil {
		p.app.showError(err)
		return
	}
	p.refresh()
	p.app.checkComplete()
}

func (p *CardPanel) speak(rate float64) {
	if p.app.session == nil {
		p.app.updateStatus("Speech is not available")
		return
	}
	text := p.app.page.SpeakableText(p.index)
	if text == "" {
		p.app.updateStatus("Nothing to read aloud yet")
		return
	}
	p.app.setActiveCard(p.index)
	p.app.session.Speak(text, rate)
}

func (p *CardPanel) openImage() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			p.app.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(io.LimitReader(reader, image.MaxSizeBytes+1))
		if err != nil {
			p.app.showError(fmt.Errorf("failed to read picture: %w", err))
			return
		}
		att, err := image.FromBytes(reader.URI().Name(), data)
		if err != nil {
			p.app.showError(err)
			return
		}
		p.setImage(att)
	}, p.app.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

// pasteImage attaches the picture named by the clipboard text, either a
// local path or an http(s) URL.
func (p *CardPanel) pasteImage() {
	kind, value := classifyPaste(p.app.window.Clipboard().Content())
	switch kind {
	case pastePath:
		att, err := image.LoadFile(value)
		if err != nil {
			p.app.showError(err)
			return
		}
		p.setImage(att)
	case pasteURL:
		p.imageDisplay.SetLoading()
		a := p.app
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			ctx, cancel := context.WithTimeout(a.ctx, downloadTimeout)
			defer cancel()

			att, err := image.Download(ctx, nil, value, image.MaxSizeBytes)
			fyne.Do(func() {
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						p.imageDisplay.SetError(err)
						a.showError(err)
					}
					return
				}
				p.setImage(att)
			})
		}()
	default:
		p.app.updateStatus("Clipboard does not hold a picture path or URL")
	}
}

func (p *CardPanel) setImage(att *image.Attachment) {
	if err := p.app.page.SetImage(p.index, att); err != nil {
		p.app.showError(err)
		return
	}
	p.app.logger.Info("Picture attached", slog.Int("card", p.index), slog.String("name", att.Name))
	p.refresh()
}

func (p *CardPanel) removeImage() {
	if err := p.app.page.ClearImage(p.index); err != nil {
		p.app.showError(err)
		return
	}
	p.refresh()
}

// refresh redraws the panel from the page state
func (p *CardPanel) refresh() {
	c, err := p.app.page.Card(p.index)
	if err != nil {
		return
	}

	status, importance := senseStatus(c, p.resolving, p.resolved)
	p.statusLabel.SetText(status)
	p.statusLabel.Importance = importance
	p.statusLabel.Refresh()

	p.senseBox.RemoveAll()
	if !c.Unavailable() {
		for j, sense := range c.Senses {
			label := widget.NewLabel(sense)
			if p.exporting {
				p.senseBox.Add(label)
				continue
			}
			remove := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { p.removeSense(j) })
			remove.Importance = widget.LowImportance
			p.senseBox.Add(container.NewBorder(nil, nil, nil, remove, label))
		}
	}

	if strings.TrimSpace(c.Text) == "" {
		p.translateBtn.Disable()
	} else {
		p.translateBtn.Enable()
	}

	canSpeak := p.app.session != nil && p.app.page.SpeakableText(p.index) != ""
	for _, btn := range []*ttwidget.Button{p.speakSlowBtn, p.speakBtn, p.speakFastBtn} {
		if canSpeak {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}

	p.imageDisplay.SetAttachment(c.Image)
	if c.Image == nil {
		p.removeImgBtn.Disable()
	} else {
		p.removeImgBtn.Enable()
	}
}

package gui

import (
	"context"
	"errors"
	"fmt"
	stdimage "image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/flashpage/internal"
	"codeberg.org/snonux/flashpage/internal/batch"
	"codeberg.org/snonux/flashpage/internal/cards"
	"codeberg.org/snonux/flashpage/internal/speech"
	"codeberg.org/snonux/flashpage/internal/translation"
)

// downloadTimeout bounds fetching a pasted picture URL
const downloadTimeout = 20 * time.Second

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	labelEntry  *CardEntry
	panels      []*CardPanel
	statusLabel *widget.Label
	logViewer   *LogViewer
	toolbar     *fyne.Container

	// Toolbar buttons
	exportButton *ttwidget.Button
	resetButton  *ttwidget.Button
	stopButton   *ttwidget.Button
	helpButton   *ttwidget.Button
	prevCardBtn  *ttwidget.Button
	nextCardBtn  *ttwidget.Button

	// State management
	page       *cards.Page
	session    *speech.Session
	activeCard int
	celebrated bool
	exporting  bool

	// Configuration
	config *Config
	logger *slog.Logger

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	OutputDir string
	Label     string
	Resolver  *translation.Resolver
	Engine    speech.Engine // nil disables the speak buttons
	Entries   []batch.Entry // pre-fill, only the first five are used
	Logger    *slog.Logger
	LogTee    *internal.LogTee // mirrors log output into the log panel
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		OutputDir: filepath.Join(homeDir, "Pictures", "flashpage"),
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else if config.OutputDir == "" {
		config.OutputDir = DefaultConfig().OutputDir
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Resolver == nil {
		config.Resolver = translation.NewResolver(
			translation.NewMyMemoryClient("", 0),
			translation.NewGoogleClient("", 0),
			translation.WithLogger(config.Logger),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.flashpage")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		config: config,
		logger: config.Logger,
		page:   cards.NewPage(),
		ctx:    ctx,
		cancel: cancel,
	}

	if config.Engine != nil {
		a.session = speech.NewSession(config.Engine, a.logger)
		a.session.SetCallbacks(a.onSpeechStart, a.onSpeechEnd)
	}

	a.setupUI()

	if config.LogTee != nil {
		config.LogTee.Attach(a.logViewer)
	}

	a.page.SetLabel(config.Label)
	a.labelEntry.SetText(config.Label)
	a.loadEntries(config.Entries)

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("flashpage v%s - English-Korean Word Cards", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(1280, 820))

	a.labelEntry = NewCardEntry()
	a.labelEntry.SetPlaceHolder("Learner name (used in the file name)...")
	a.labelEntry.OnChanged = a.page.SetLabel
	a.labelEntry.OnEscape = a.unfocus

	a.panels = make([]*CardPanel, cards.CardCount)
	cardObjects := make([]fyne.CanvasObject, cards.CardCount)
	for i := range a.panels {
		a.panels[i] = NewCardPanel(a, i)
		cardObjects[i] = a.panels[i].CanvasObject()
	}
	cardGrid := container.New(layout.NewGridLayout(cards.CardCount), cardObjects...)

	// Tooltips are set after the tooltip layer is created
	a.prevCardBtn = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.prevCard)
	a.nextCardBtn = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.nextCard)
	a.exportButton = ttwidget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.onExport)
	a.resetButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.onReset)
	a.resetButton.Importance = widget.DangerImportance
	a.stopButton = ttwidget.NewButtonWithIcon("", theme.MediaStopIcon(), a.onStopSpeech)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)
	if a.session == nil {
		a.stopButton.Disable()
	}

	a.toolbar = container.NewHBox(
		a.prevCardBtn,
		a.nextCardBtn,
		widget.NewSeparator(),
		a.exportButton,
		a.resetButton,
		widget.NewSeparator(),
		a.stopButton,
		widget.NewSeparator(),
		a.helpButton,
	)

	header := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle("Name:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil,
		a.labelEntry,
	)

	a.statusLabel = widget.NewLabel("Ready")
	a.logViewer = NewLogViewer()

	footer := container.NewVBox(
		widget.NewSeparator(),
		a.statusLabel,
		a.logViewer,
	)

	content := container.NewBorder(
		container.NewVBox(
			a.toolbar,
			widget.NewSeparator(),
			header,
		),
		footer,
		nil, nil,
		container.NewVScroll(cardGrid),
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		if a.config.LogTee != nil {
			a.config.LogTee.Attach(nil)
		}
		if a.session != nil {
			a.session.Stop()
		}
		a.cancel()
		a.wg.Wait()
	})

	a.setActiveCard(0)
	a.setupKeyboardShortcuts()
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.prevCardBtn.SetToolTip("Previous card (←)")
	a.nextCardBtn.SetToolTip("Next card (→)")
	a.exportButton.SetToolTip("Export page as PNG (x)")
	a.resetButton.SetToolTip("Clear all cards (r)")
	a.stopButton.SetToolTip("Stop reading (s)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
	for _, p := range a.panels {
		p.setupTooltips()
	}
}

// loadEntries fills the cards from a batch file
func (a *Application) loadEntries(entries []batch.Entry) {
	for i, entry := range entries {
		if i >= cards.CardCount {
			a.logger.Info("Batch file has more entries than cards",
				slog.Int("used", cards.CardCount), slog.Int("total", len(entries)))
			break
		}
		a.panels[i].Load(entry.Text, entry.Senses)
	}
}

// checkComplete celebrates once when all five cards are translated
func (a *Application) checkComplete() {
	if !pageComplete(a.page.Cards()) {
		a.celebrated = false
		return
	}
	if a.celebrated {
		return
	}
	a.celebrated = true
	a.updateStatus("🎉 All five cards are done. Great job! Press x to save the page.")
	a.logger.Info("Page complete")
}

func (a *Application) onStopSpeech() {
	if a.session != nil {
		a.session.Stop()
	}
}

func (a *Application) onSpeechStart() {
	fyne.Do(func() {
		a.updateStatus("Reading aloud...")
	})
}

func (a *Application) onSpeechEnd(err error) {
	fyne.Do(func() {
		switch {
		case err == nil:
			a.updateStatus("Ready")
		case errors.Is(err, context.Canceled):
			a.updateStatus("Stopped")
		default:
			a.updateStatus("Speech failed: " + err.Error())
		}
	})
}

// onExport captures the page without edit controls and saves it as PNG
func (a *Application) onExport() {
	if a.exporting {
		return
	}
	a.exporting = true
	a.unfocus()
	a.setEditing(false)

	// Not tracked by wg: DoAndWait would block while OnClosed waits
	go func() {
		var shot stdimage.Image
		fyne.DoAndWait(func() {
			shot = a.window.Canvas().Capture()
			a.setEditing(true)
		})

		renderer := cards.RendererFunc(func() (stdimage.Image, error) {
			if shot == nil {
				return nil, errors.New("window capture returned no image")
			}
			return shot, nil
		})
		path, err := cards.Export(renderer, cards.ExportOptions{
			Dir:   a.config.OutputDir,
			Label: a.page.Label(),
		})

		fyne.Do(func() {
			a.exporting = false
			if err != nil {
				a.logger.Error("Export failed", slog.String("error", err.Error()))
				a.showError(fmt.Errorf("export failed: %w", err))
				return
			}
			a.logger.Info("Page exported", slog.String("path", path))
			a.updateStatus("Saved " + path)
			dialog.ShowInformation("Page saved", "The page was saved to\n"+path, a.window)
		})
	}()
}

// setEditing toggles everything that must not appear in the exported picture
func (a *Application) setEditing(editing bool) {
	for _, obj := range []fyne.CanvasObject{a.toolbar, a.statusLabel, a.logViewer} {
		if editing {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
	for _, p := range a.panels {
		p.SetEditing(editing)
	}
}

// onReset asks before clearing all cards
func (a *Application) onReset() {
	dialog.ShowConfirm("Clear page", "Remove all five cards?", func(ok bool) {
		if !ok {
			return
		}
		a.resetPage()
	}, a.window)
}

func (a *Application) resetPage() {
	if a.session != nil {
		a.session.Stop()
	}
	a.page.Reset()
	for _, p := range a.panels {
		p.Clear()
	}
	a.celebrated = false
	a.setActiveCard(0)
	a.logger.Info("Page cleared")
	a.updateStatus("Ready")
}

// onShowHotkeys displays a dialog with all available keyboard shortcuts
func (a *Application) onShowHotkeys() {
	hotkeys := `## Cards
**←** Previous card  
**→** Next card  
**Esc** Leave the text field  

## Active card
**t/ㅅ** Translate  
**p/ㅔ** Read aloud  
**s/ㄴ** Stop reading  
**v/ㅍ** Paste picture path or URL  

## Page
**x/ㅌ** Export page as PNG  
**r/ㄱ** Clear all cards  

## Help
**h/ㅗ** Show hotkeys  
**q/ㅂ** Quit application  

---
*Hotkeys work with both English and Korean keyboard layouts*`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(480, 420))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)
	d.Show()
}

// setupKeyboardShortcuts handles shortcuts while no text field is focused
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.isEditing() {
			return
		}
		if key, ok := shortcutForRune(r); ok {
			a.handleShortcutKey(key)
		}
	})

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.unfocus()
			return
		}
		if a.isEditing() {
			return
		}
		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch key {
	case fyne.KeyLeft:
		a.prevCard()
	case fyne.KeyRight:
		a.nextCard()
	case fyne.KeyT:
		a.activePanel().resolve()
	case fyne.KeyP:
		a.activePanel().speak(speech.RateNormal)
	case fyne.KeyS:
		a.onStopSpeech()
	case fyne.KeyV:
		a.activePanel().pasteImage()
	case fyne.KeyX:
		a.onExport()
	case fyne.KeyR:
		a.onReset()
	case fyne.KeyH:
		a.onShowHotkeys()
	case fyne.KeyQ:
		a.window.Close()
	}
}

func (a *Application) unfocus() {
	a.window.Canvas().Unfocus()
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(err error) {
	dialog.ShowError(err, a.window)
	a.updateStatus("Error: " + err.Error())
}

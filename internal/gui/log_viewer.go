package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer is a widget that displays log messages. It is an io.Writer so
// a slog handler can write straight into it.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	pending     strings.Builder
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: 500,
		messages:    make([]string, 0),
	}

	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 100))
	v.scrollView.Direction = container.ScrollBoth

	v.container = container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer. Complete lines become messages, a trailing
// partial line is kept until the rest arrives.
func (v *LogViewer) Write(p []byte) (int, error) {
	v.mu.Lock()
	v.pending.Write(p)
	buffered := v.pending.String()
	v.pending.Reset()

	lines := strings.Split(buffered, "\n")
	v.pending.WriteString(lines[len(lines)-1])
	v.mu.Unlock()

	for _, line := range lines[:len(lines)-1] {
		if line = strings.TrimSpace(line); line != "" {
			v.AddMessage(line)
		}
	}
	return len(p), nil
}

// AddMessage adds a message to the log
func (v *LogViewer) AddMessage(message string) {
	timestamp := time.Now().Format("15:04:05")

	v.mu.Lock()
	v.messages = prependMessage(v.messages, fmt.Sprintf("[%s] %s", timestamp, message), v.maxMessages)
	text := strings.Join(v.messages, "\n")
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText(text)
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	v.messages = v.messages[:0]
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText("")
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Log adds a formatted message
func (v *LogViewer) Log(format string, args ...any) {
	v.AddMessage(fmt.Sprintf(format, args...))
}

// Messages returns the stored messages, newest first
func (v *LogViewer) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.messages...)
}

// prependMessage puts message in front and drops the oldest entries beyond limit.
func prependMessage(messages []string, message string, limit int) []string {
	messages = append([]string{message}, messages...)
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages
}

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// CardEntry is a widget.Entry that reports Escape and focus changes, so the
// page can clear focus and track the active card.
type CardEntry struct {
	widget.Entry

	OnEscape func()
	OnFocus  func()
}

// NewCardEntry creates a single-line entry.
func NewCardEntry() *CardEntry {
	e := &CardEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// NewNoteEntry creates a word-wrapping multi-line entry.
func NewNoteEntry() *CardEntry {
	e := NewCardEntry()
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	return e
}

func (e *CardEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.OnEscape != nil {
		e.OnEscape()
		return
	}
	e.Entry.TypedKey(key)
}

func (e *CardEntry) FocusGained() {
	if e.OnFocus != nil {
		e.OnFocus()
	}
	e.Entry.FocusGained()
}

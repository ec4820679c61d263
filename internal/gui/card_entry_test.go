package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestCardEntryEscape(t *testing.T) {
	test.NewApp()

	tests := []struct {
		name  string
		entry *CardEntry
	}{
		{"single line", NewCardEntry()},
		{"note", NewNoteEntry()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			escaped := 0
			tt.entry.OnEscape = func() { escaped++ }
			tt.entry.SetText("apple")

			tt.entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
			if escaped != 1 {
				t.Errorf("Expected one escape callback, got %d", escaped)
			}
			if tt.entry.Text != "apple" {
				t.Errorf("Escape changed the text to %q", tt.entry.Text)
			}
		})
	}
}

func TestCardEntryWithoutHooks(t *testing.T) {
	test.NewApp()

	e := NewCardEntry()
	e.SetText("apple")
	e.TypedKey(&fyne.KeyEvent{Name: fyne.KeyEscape})
	e.FocusGained()

	if e.Text != "apple" {
		t.Errorf("Text = %q, want apple", e.Text)
	}
}

func TestCardEntryFocus(t *testing.T) {
	test.NewApp()

	e := NewNoteEntry()
	focused := false
	e.OnFocus = func() { focused = true }

	e.FocusGained()
	if !focused {
		t.Error("Expected focus callback")
	}
	if !e.MultiLine || e.Wrapping != fyne.TextWrapWord {
		t.Error("Note entry should wrap words over several lines")
	}
}

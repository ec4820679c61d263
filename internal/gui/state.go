package gui

import (
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/flashpage/internal/cards"
)

// senseStatus returns the line shown under a card's senses.
func senseStatus(c cards.Card, resolving, resolved bool) (string, widget.Importance) {
	switch {
	case resolving:
		return "Translating...", widget.MediumImportance
	case c.Unavailable():
		return "Translation unavailable", widget.DangerImportance
	case resolved && len(c.Senses) == 0:
		return "No senses found", widget.WarningImportance
	case strings.TrimSpace(c.Text) == "":
		return "", widget.LowImportance
	}
	return "", widget.MediumImportance
}

// pageComplete reports whether every card has text and at least one usable sense.
func pageComplete(cs []cards.Card) bool {
	if len(cs) != cards.CardCount {
		return false
	}
	for _, c := range cs {
		if strings.TrimSpace(c.Text) == "" || len(c.Senses) == 0 || c.Unavailable() {
			return false
		}
	}
	return true
}

type pasteKind int

const (
	pasteNone pasteKind = iota
	pasteURL
	pastePath
)

// classifyPaste decides whether clipboard text names a remote picture or a
// local file. file:// URLs become plain paths.
func classifyPaste(text string) (pasteKind, string) {
	text = strings.TrimSpace(text)
	if text == "" || strings.Contains(text, "\n") {
		return pasteNone, ""
	}

	if u, err := url.Parse(text); err == nil {
		switch u.Scheme {
		case "http", "https":
			if u.Host != "" {
				return pasteURL, text
			}
			return pasteNone, ""
		case "file":
			if u.Path != "" {
				return pastePath, u.Path
			}
			return pasteNone, ""
		}
	}
	return pastePath, text
}

// hangulShortcuts maps the jamo typed on a Korean 2-set layout to the key
// sitting at the same position, so shortcuts work without switching layouts.
var hangulShortcuts = map[rune]fyne.KeyName{
	'ㅌ': fyne.KeyX,
	'ㅗ': fyne.KeyH,
	'ㅂ': fyne.KeyQ,
	'ㄴ': fyne.KeyS,
	'ㅅ': fyne.KeyT,
	'ㅔ': fyne.KeyP,
	'ㅍ': fyne.KeyV,
	'ㄱ': fyne.KeyR,
	'ㅜ': fyne.KeyN,
}

// shortcutForRune returns the shortcut key of a typed Hangul jamo.
func shortcutForRune(r rune) (fyne.KeyName, bool) {
	key, ok := hangulShortcuts[r]
	return key, ok
}

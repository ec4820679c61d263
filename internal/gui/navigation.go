package gui

import (
	"codeberg.org/snonux/flashpage/internal/cards"
)

// wrapIndex maps i onto [0, n) so navigation cycles past both ends.
func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// setActiveCard highlights card i and remembers it as the target of
// keyboard shortcuts.
func (a *Application) setActiveCard(i int) {
	i = wrapIndex(i, cards.CardCount)
	a.activeCard = i
	for j, panel := range a.panels {
		panel.SetActive(j == i)
	}
}

// nextCard moves the highlight to the following card and focuses its entry
func (a *Application) nextCard() {
	a.focusCard(a.activeCard + 1)
}

// prevCard moves the highlight to the preceding card and focuses its entry
func (a *Application) prevCard() {
	a.focusCard(a.activeCard - 1)
}

func (a *Application) focusCard(i int) {
	a.setActiveCard(i)
	if a.window != nil {
		a.window.Canvas().Focus(a.panels[a.activeCard].textEntry)
	}
}

// activePanel returns the panel of the highlighted card
func (a *Application) activePanel() *CardPanel {
	return a.panels[a.activeCard]
}

// isEditing reports whether a widget currently has keyboard focus
func (a *Application) isEditing() bool {
	return a.window != nil && a.window.Canvas().Focused() != nil
}

package cards

import (
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/flashpage/internal/image"
	"codeberg.org/snonux/flashpage/internal/translation"
)

// CardCount is the number of cards on a page.
const CardCount = 5

// Card is one flashcard. Senses never holds the same string twice.
type Card struct {
	Text   string
	Senses []string
	Note   string
	Image  *image.Attachment
}

// Unavailable reports whether translation failed for this card.
func (c Card) Unavailable() bool {
	return translation.IsUnavailable(c.Senses)
}

// Ticket identifies one resolution request. Responses carrying an outdated
// ticket are discarded.
type Ticket struct {
	Index      int
	Text       string
	Generation uint64
}

// Page holds the cards being edited. It is safe for concurrent use.
type Page struct {
	mu          sync.Mutex
	label       string
	cards       [CardCount]Card
	generations [CardCount]uint64
}

// NewPage returns a page with five empty cards.
func NewPage() *Page {
	return &Page{}
}

// Label returns the learner's name printed on the page.
func (p *Page) Label() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.label
}

func (p *Page) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
}

// SetText replaces the card's text and clears its senses. The returned
// ticket is the one a resolver response must present to be applied.
func (p *Page) SetText(i int, text string) (Ticket, error) {
	if err := checkIndex(i); err != nil {
		return Ticket{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cards[i].Text = text
	p.cards[i].Senses = nil
	p.generations[i]++
	return Ticket{Index: i, Text: text, Generation: p.generations[i]}, nil
}

// BeginResolve returns a ticket for the card's current text. It returns
// false when there is nothing to resolve.
func (p *Page) BeginResolve(i int) (Ticket, bool) {
	if checkIndex(i) != nil {
		return Ticket{}, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	text := p.cards[i].Text
	if strings.TrimSpace(text) == "" {
		return Ticket{}, false
	}
	return Ticket{Index: i, Text: text, Generation: p.generations[i]}, true
}

// ApplySenses stores resolved senses if the card has not changed since the
// ticket was issued. It reports whether the senses were stored.
func (p *Page) ApplySenses(t Ticket, senses []string) bool {
	if checkIndex(t.Index) != nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.generations[t.Index] != t.Generation || p.cards[t.Index].Text != t.Text {
		return false
	}
	p.cards[t.Index].Senses = dedupe(senses)
	return true
}

// AddSense appends a manually entered sense. Blank and duplicate senses
// are ignored.
func (p *Page) AddSense(i int, sense string) (bool, error) {
	if err := checkIndex(i); err != nil {
		return false, err
	}
	sense = strings.TrimSpace(sense)
	if sense == "" {
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c := &p.cards[i]
	if c.Unavailable() {
		c.Senses = nil
	}
	for _, s := range c.Senses {
		if s == sense {
			return false, nil
		}
	}
	c.Senses = append(c.Senses, sense)
	return true, nil
}

// RemoveSense deletes the j-th sense of card i.
func (p *Page) RemoveSense(i, j int) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	senses := p.cards[i].Senses
	if j < 0 || j >= len(senses) {
		return fmt.Errorf("sense index %d out of range", j)
	}
	p.cards[i].Senses = append(senses[:j:j], senses[j+1:]...)
	return nil
}

func (p *Page) SetNote(i int, note string) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards[i].Note = note
	return nil
}

func (p *Page) SetImage(i int, att *image.Attachment) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cards[i].Image = att
	return nil
}

func (p *Page) ClearImage(i int) error {
	return p.SetImage(i, nil)
}

// Reset empties all cards. Resolutions still in flight are discarded when
// they complete.
func (p *Page) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cards {
		p.cards[i] = Card{}
		p.generations[i]++
	}
}

// Load fills the cards in order from texts, leaving the rest empty. Extra
// entries are ignored. It returns a ticket for every non-blank card.
func (p *Page) Load(texts []string) []Ticket {
	p.Reset()
	var tickets []Ticket
	for i, text := range texts {
		if i >= CardCount {
			break
		}
		t, _ := p.SetText(i, text)
		if strings.TrimSpace(text) != "" {
			tickets = append(tickets, t)
		}
	}
	return tickets
}

// Card returns a copy of card i.
func (p *Page) Card(i int) (Card, error) {
	if err := checkIndex(i); err != nil {
		return Card{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyCard(p.cards[i]), nil
}

// Cards returns copies of all cards.
func (p *Page) Cards() []Card {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Card, CardCount)
	for i, c := range p.cards {
		out[i] = copyCard(c)
	}
	return out
}

// SpeakableText returns the English text to read aloud for card i. A
// Korean entry is spoken through its first resolved sense.
func (p *Page) SpeakableText(i int) string {
	c, err := p.Card(i)
	if err != nil {
		return ""
	}
	return SpeakableText(c.Text, c.Senses)
}

// SpeakableText returns text itself when it is English, otherwise the first
// usable sense, or "" when there is nothing English to say.
func SpeakableText(text string, senses []string) string {
	text = strings.TrimSpace(text)
	if !translation.IsKorean(text) {
		return text
	}
	if len(senses) == 0 || translation.IsUnavailable(senses) {
		return ""
	}
	return senses[0]
}

func checkIndex(i int) error {
	if i < 0 || i >= CardCount {
		return fmt.Errorf("card index %d out of range", i)
	}
	return nil
}

func copyCard(c Card) Card {
	if c.Senses != nil {
		c.Senses = append([]string(nil), c.Senses...)
	}
	return c
}

func dedupe(senses []string) []string {
	if senses == nil {
		return nil
	}
	out := make([]string, 0, len(senses))
	seen := make(map[string]bool, len(senses))
	for _, s := range senses {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

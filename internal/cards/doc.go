// Package cards holds the state of a flashcard page: five cards, each with
// a word or sentence, its resolved senses, a note and an optional picture.
// It also renders the finished page to a PNG file.
package cards

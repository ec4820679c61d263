// Package image loads pictures that a learner attaches to a flashcard,
// either from a file, from pasted clipboard bytes or from a URL.
package image

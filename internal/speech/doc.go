// Package speech reads flashcard words aloud. It picks the best available
// English voice from the platform's voice list, drives a text-to-speech
// engine (espeak-ng, macOS say, or OpenAI TTS) and makes sure only one
// utterance plays at a time.
package speech

package translation

import (
	"strings"
	"unicode/utf8"
)

// sentenceMinRunes is the length above which a single token counts as a sentence.
const sentenceMinRunes = 15

// IsKorean reports whether text contains a Hangul syllable or compatibility jamo.
func IsKorean(text string) bool {
	for _, r := range text {
		switch {
		case r >= 'ㄱ' && r <= 'ㅎ': // consonants
			return true
		case r >= 'ㅏ' && r <= 'ㅣ': // vowels
			return true
		case r >= '가' && r <= '힣':
			return true
		}
	}
	return false
}

// IsSentence reports whether trimmed text contains a space or is longer than
// 15 characters.
func IsSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.Contains(trimmed, " ") || utf8.RuneCountInString(trimmed) > sentenceMinRunes
}

// Direction returns the source and target language codes for text.
func Direction(text string) (source, target string) {
	if IsKorean(text) {
		return LangKorean, LangEnglish
	}
	return LangEnglish, LangKorean
}

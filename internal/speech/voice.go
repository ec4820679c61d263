package speech

import "strings"

// Voice is a synthetic voice offered by an engine.
type Voice struct {
	ID   string // Engine-specific identifier passed back to the engine, defaults to Name
	Name string
	Lang string // BCP 47 tag, e.g. "en-US"
}

// Identifier returns the value an engine should use to request this voice.
func (v Voice) Identifier() string {
	if v.ID != "" {
		return v.ID
	}
	return v.Name
}

// PreferredVoices lists voice names in priority order. A voice matches when
// its name contains the entry.
var PreferredVoices = []string{
	"Microsoft Aria Online (Natural) - English (United States)",
	"Microsoft Jenny Online (Natural) - English (United States)",
	"Microsoft Emma Online (Natural) - English (United States)",
	"Microsoft Olivia Online (Natural) - English (United States)",
	"Microsoft Ava Online (Natural) - English (United States)",
	"Google US English Female",
	"Samantha",
	"Allison",
	"Ava",
	"Emma",
	"Olivia",
	"Zoe",
	"Chloe",
}

// youngFemaleKeywords are matched case-insensitively against en-US voice names.
var youngFemaleKeywords = []string{
	"aria", "jenny", "emma", "olivia", "ava", "zoe", "chloe", "allison",
	"natural", "neural", "female", "woman", "girl",
}

const usEnglish = "en-US"

// Select picks the best English voice. It returns false when voices holds
// no English voice at all, in which case the engine default should be used.
func Select(voices []Voice) (Voice, bool) {
	for _, preferred := range PreferredVoices {
		if v, ok := find(voices, func(v Voice) bool {
			return strings.Contains(v.Name, preferred) || v.Name == preferred
		}); ok {
			return v, true
		}
	}

	layers := []func(Voice) bool{
		func(v Voice) bool {
			return strings.Contains(v.Lang, usEnglish) && nameHasAny(v, youngFemaleKeywords...)
		},
		func(v Voice) bool {
			return strings.Contains(v.Lang, usEnglish) && nameHasAny(v, "female", "woman")
		},
		func(v Voice) bool { return strings.HasPrefix(v.Lang, usEnglish) },
		func(v Voice) bool { return strings.HasPrefix(v.Lang, "en") },
	}
	for _, match := range layers {
		if v, ok := find(voices, match); ok {
			return v, true
		}
	}
	return Voice{}, false
}

func find(voices []Voice, match func(Voice) bool) (Voice, bool) {
	for _, v := range voices {
		if match(v) {
			return v, true
		}
	}
	return Voice{}, false
}

func nameHasAny(v Voice, keywords ...string) bool {
	name := strings.ToLower(v.Name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

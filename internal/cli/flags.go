package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"codeberg.org/snonux/flashpage/internal/speech"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputDir  string
	Label      string
	BatchFile  string
	ListVoices bool
	ListModels bool
	Archive    bool
	Verbose    bool
	GUIMode    bool

	// Translation flags
	Timeout      time.Duration
	MyMemoryURL  string
	GoogleURL    string
	NoDictionary bool

	// Speech flags
	Speak             bool
	Rate              string
	Engine            string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAIInstruction string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Timeout:     10 * time.Second,
		MyMemoryURL: "https://api.mymemory.translated.net",
		GoogleURL:   "https://translate.googleapis.com",
		Rate:        "normal",
		Engine:      "auto",
		OpenAIModel: "gpt-4o-mini-tts",
	}
}

// ParseRate turns a rate preset name (slow, normal, fast) or a plain
// number into a speech rate.
func ParseRate(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow":
		return speech.RateSlow, nil
	case "", "normal":
		return speech.RateNormal, nil
	case "fast":
		return speech.RateFast, nil
	}

	rate, err := strconv.ParseFloat(s, 64)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("invalid speech rate %q: use slow, normal, fast or a positive number", s)
	}
	return rate, nil
}

package speech

import (
	"context"
	"reflect"
	"testing"
)

const espeakVoicesOutput = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 2  en-029          --/M      English_(Caribbean) gmw/en-029
 2  en-gb           --/M      English_(Great_Britain) gmw/en               (en 2)
 2  en-us           --/M      English_(America)  gmw/en-US            (en 3)
`

func TestParseESpeakVoices(t *testing.T) {
	voices := parseESpeakVoices([]byte(espeakVoicesOutput))

	expected := []Voice{
		{ID: "en-029", Name: "English (Caribbean)", Lang: "en-029"},
		{ID: "en-gb", Name: "English (Great Britain)", Lang: "en-GB"},
		{ID: "en-us", Name: "English (America)", Lang: "en-US"},
	}
	if !reflect.DeepEqual(voices, expected) {
		t.Errorf("parseESpeakVoices() = %+v, want %+v", voices, expected)
	}

	v, ok := Select(voices)
	if !ok || v.ID != "en-us" {
		t.Errorf("Select() = %+v, want en-us", v)
	}
}

func TestESpeakArgs(t *testing.T) {
	tests := []struct {
		name     string
		utter    Utterance
		expected []string
	}{
		{
			name:     "learner defaults",
			utter:    NewUtterance("apple", RateNormal),
			expected: []string{"-v", "en-us", "-s", "175", "-p", "60", "-a", "100", "apple"},
		},
		{
			name:     "slower",
			utter:    NewUtterance("apple", 0.8),
			expected: []string{"-v", "en-us", "-s", "140", "-p", "60", "-a", "100", "apple"},
		},
		{
			name: "clamped",
			utter: Utterance{
				Text: "apple", Rate: 10, Pitch: 5, Volume: 3,
				Voice: &Voice{ID: "en-gb", Name: "English (Great Britain)"},
			},
			expected: []string{"-v", "en-gb", "-s", "450", "-p", "99", "-a", "200", "apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := espeakArgs(tt.utter); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("espeakArgs() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestESpeakEngineSpeak(t *testing.T) {
	cmd := &fakeCommander{outputs: map[string][]byte{espeakBinary: []byte(espeakVoicesOutput)}}
	e := newESpeakEngine(cmd, quietLogger())

	if err := e.Speak(context.Background(), NewUtterance("run", RateFast)); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	runs := cmd.commands()
	if len(runs) != 1 || runs[0][0] != espeakBinary || runs[0][len(runs[0])-1] != "run" {
		t.Errorf("Unexpected command lines: %v", runs)
	}

	if err := e.Speak(context.Background(), Utterance{}); err == nil {
		t.Error("Expected error for empty text")
	}

	voices, err := LoadVoices(context.Background(), e.Catalog())
	if err != nil || len(voices) != 3 {
		t.Errorf("LoadVoices() = %v, %v", voices, err)
	}
}

func TestESpeakEngineIsAvailable(t *testing.T) {
	e := newESpeakEngine(&fakeCommander{}, quietLogger())
	if err := e.IsAvailable(); err == nil {
		t.Error("Expected error when espeak-ng is missing")
	}

	e = newESpeakEngine(&fakeCommander{paths: map[string]bool{espeakBinary: true}}, quietLogger())
	if err := e.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v", err)
	}
	if e.Name() != "espeak" {
		t.Errorf("Name() = %q", e.Name())
	}
}

func TestCanonicalTag(t *testing.T) {
	tests := map[string]string{
		"en-us":   "en-US",
		"en_US":   "en-US",
		"en-gb":   "en-GB",
		"ko_KR":   "ko-KR",
		"!bogus!": "!bogus!",
	}
	for in, want := range tests {
		if got := canonicalTag(in); got != want {
			t.Errorf("canonicalTag(%q) = %q, want %q", in, got, want)
		}
	}
}

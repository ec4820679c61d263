package speech

import (
	"context"
	"reflect"
	"testing"
)

const sayVoicesOutput = `Alex                en_US    # Most people recognize me by my voice.
Alice               it_IT    # Salve, mi chiamo Alice e sono una voce italiana.
Eddy (English (US)) en_US    # Hello! My name is Eddy.
Samantha            en_US    # Hello, my name is Samantha. I am an American-English voice.
Yuna                ko_KR    # 안녕하세요. 제 이름은 유나입니다.
`

func TestParseSayVoices(t *testing.T) {
	voices := parseSayVoices([]byte(sayVoicesOutput))

	expected := []Voice{
		{Name: "Alex", Lang: "en-US"},
		{Name: "Alice", Lang: "it-IT"},
		{Name: "Eddy (English (US))", Lang: "en-US"},
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Yuna", Lang: "ko-KR"},
	}
	if !reflect.DeepEqual(voices, expected) {
		t.Errorf("parseSayVoices() = %+v, want %+v", voices, expected)
	}

	v, ok := Select(voices)
	if !ok || v.Name != "Samantha" {
		t.Errorf("Select() = %+v, want Samantha", v)
	}
}

func TestSayArgs(t *testing.T) {
	u := NewUtterance("good morning", 0.8)
	u.Voice = &Voice{Name: "Samantha", Lang: "en-US"}

	expected := []string{"-v", "Samantha", "-r", "148", "--", "good morning"}
	if got := sayArgs(u); !reflect.DeepEqual(got, expected) {
		t.Errorf("sayArgs() = %v, want %v", got, expected)
	}

	expected = []string{"-r", "185", "--", "apple"}
	if got := sayArgs(NewUtterance("apple", RateNormal)); !reflect.DeepEqual(got, expected) {
		t.Errorf("sayArgs() = %v, want %v", got, expected)
	}
}

func TestSayEngineCatalog(t *testing.T) {
	cmd := &fakeCommander{outputs: map[string][]byte{sayBinary: []byte(sayVoicesOutput)}}
	e := newSayEngine(cmd, quietLogger())

	voices, err := LoadVoices(context.Background(), e.Catalog())
	if err != nil {
		t.Fatalf("LoadVoices() error = %v", err)
	}
	if len(voices) != 5 {
		t.Errorf("Expected 5 voices, got %d", len(voices))
	}
	if e.Name() != "say" {
		t.Errorf("Name() = %q", e.Name())
	}
}

package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "plain words",
			fileContent: `run
사과
good morning`,
			want: []Entry{
				{Text: "run"},
				{Text: "사과"},
				{Text: "good morning"},
			},
		},
		{
			name: "words with senses",
			fileContent: `run = 달리다, 운영하다
cat = 고양이
bank = , 은행 ,`,
			want: []Entry{
				{Text: "run", Senses: []string{"달리다", "운영하다"}},
				{Text: "cat", Senses: []string{"고양이"}},
				{Text: "bank", Senses: []string{"은행"}},
			},
		},
		{
			name: "comments, blank lines and CRLF",
			fileContent: "# week 3\r\n\r\napple\r\n  # indented comment\r\ntree = 나무\r\n",
			want: []Entry{
				{Text: "apple"},
				{Text: "tree", Senses: []string{"나무"}},
			},
		},
		{
			name:        "empty text part",
			fileContent: "= apple\nbook",
			want:        []Entry{{Text: "book"}},
		},
		{
			name:        "empty senses part",
			fileContent: "book =",
			want:        []Entry{{Text: "book"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "words.txt")
			if err := os.WriteFile(path, []byte(tt.fileContent), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := ReadBatchFile(path)
			if err != nil {
				t.Fatalf("ReadBatchFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFileMissing(t *testing.T) {
	if _, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestEntryHelpers(t *testing.T) {
	entries := []Entry{{Text: "run"}, {Text: "cat", Senses: []string{"고양이"}}}

	if !entries[0].NeedsResolve() || entries[1].NeedsResolve() {
		t.Error("NeedsResolve() mismatch")
	}
	if got := Texts(entries); !reflect.DeepEqual(got, []string{"run", "cat"}) {
		t.Errorf("Texts() = %v", got)
	}
}

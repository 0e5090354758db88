package sentiment_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/moodai/internal/sentiment"
)

func TestLexiconScore(t *testing.T) {
	lex := sentiment.NewLexicon()

	tests := []struct {
		text string
		want int
	}{
		{"This is the worst day, everything failed", -5},
		{"Had a wonderful, fantastic day", 8},
		{"The meeting is at 3pm", 0},
		{"", 0},
		{"GOOD", 3},
		{"not good", -3},
		{"it wasn't bad", 3},
		{"My dog died yesterday", -3},
		{"Feeling sick and my plans are ruined", -3},
	}

	for _, tt := range tests {
		got, err := lex.Score(tt.text)
		if err != nil {
			t.Fatalf("Score(%q) error = %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Score(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	lex := sentiment.NewLexiconFrom(map[string]int{"Happy": 3, "sad": -2})

	got := lex.Analyze("happy and sad and happy")
	want := sentiment.Analysis{
		Score:       4,
		Comparative: 0.8,
		Positive:    []string{"happy", "happy"},
		Negative:    []string{"sad"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Analyze mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize(t *testing.T) {
	got := sentiment.Tokenize("I can’t  believe it's well-known, 100%!")
	want := []string{"i", "can't", "believe", "it's", "well-known", "100"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLexicon(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := sentiment.ParseLexicon("# comment\nGood\t3\n\nbad\t-3\n")
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		want := map[string]int{"good": 3, "bad": -3}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing tab", func(t *testing.T) {
		if _, err := sentiment.ParseLexicon("good 3\n"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("bad score", func(t *testing.T) {
		if _, err := sentiment.ParseLexicon("good\tthree\n"); err == nil {
			t.Error("expected error")
		}
	})
}

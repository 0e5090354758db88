// Package sentiment scores free text with a word-polarity lexicon.
// The score is a signed, unbounded sum where zero means neutral.
package sentiment

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

//go:embed afinn.tsv
var afinnTSV string

// Scorer produces a sentiment scalar for text.
type Scorer interface {
	Score(text string) (int, error)
}

// Analysis is the detailed result of scoring one text.
type Analysis struct {
	Score       int      `json:"score"`
	Comparative float64  `json:"comparative"`
	Positive    []string `json:"positive"`
	Negative    []string `json:"negative"`
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nobody": true,
	"nothing": true, "neither": true, "nor": true, "without": true,
	"don't": true, "dont": true, "doesn't": true, "doesnt": true,
	"didn't": true, "didnt": true, "isn't": true, "isnt": true,
	"aren't": true, "arent": true, "wasn't": true, "wasnt": true,
	"weren't": true, "werent": true, "can't": true, "cant": true,
	"cannot": true, "couldn't": true, "couldnt": true, "won't": true,
	"wont": true, "wouldn't": true, "wouldnt": true, "shouldn't": true,
	"shouldnt": true, "haven't": true, "havent": true, "hasn't": true,
	"hasnt": true, "ain't": true, "aint": true,
}

// Lexicon is a Scorer backed by an immutable word-to-polarity table.
// It is safe for concurrent use.
type Lexicon struct {
	words map[string]int
}

// NewLexicon returns a Lexicon loaded with the embedded AFINN word list.
func NewLexicon() *Lexicon {
	words, err := ParseLexicon(afinnTSV)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return &Lexicon{words: words}
}

// NewLexiconFrom returns a Lexicon over a caller-supplied table.
func NewLexiconFrom(words map[string]int) *Lexicon {
	copied := make(map[string]int, len(words))
	for w, s := range words {
		copied[strings.ToLower(w)] = s
	}
	return &Lexicon{words: copied}
}

// ParseLexicon reads "word<TAB>score" lines. Blank lines and lines starting with # are skipped.
func ParseLexicon(src string) (map[string]int, error) {
	words := make(map[string]int)
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, score, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: missing tab separator", line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(score))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		words[strings.ToLower(strings.TrimSpace(word))] = n
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Score implements Scorer.
func (l *Lexicon) Score(text string) (int, error) {
	return l.Analyze(text).Score, nil
}

// Analyze scores text, flipping the polarity of a word directly preceded by a negator.
func (l *Lexicon) Analyze(text string) Analysis {
	tokens := Tokenize(text)
	a := Analysis{
		Positive: []string{},
		Negative: []string{},
	}

	for i, tok := range tokens {
		s, ok := l.words[tok]
		if !ok || s == 0 {
			continue
		}
		if i > 0 && negators[tokens[i-1]] {
			s = -s
		}
		a.Score += s
		if s > 0 {
			a.Positive = append(a.Positive, tok)
		} else {
			a.Negative = append(a.Negative, tok)
		}
	}

	if len(tokens) > 0 {
		a.Comparative = float64(a.Score) / float64(len(tokens))
	}
	return a
}

// Tokenize lower-cases text and splits it into words, keeping apostrophes
// and hyphens inside words.
func Tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-')
	})
}

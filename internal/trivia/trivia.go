// Package trivia holds the embedded question banks and the answer matcher.
// Each bank maps the numbers of one board onto questions; the wheel decides
// the number, the bank supplies the question behind it.
package trivia

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jask/triviawheel/internal/i18n"
)

//go:embed data/easy.json
var easyJSON []byte

//go:embed data/hard.json
var hardJSON []byte

// Difficulty names one of the two boards.
type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

// Question is one numbered entry of a bank. Text and Answer are keyed by
// interface language; Accept lists extra spellings admitted in any language.
type Question struct {
	Number int                  `json:"number"`
	Text   map[i18n.Lang]string `json:"text"`
	Answer map[i18n.Lang]string `json:"answer"`
	Accept []string             `json:"accept"`
}

// Prompt returns the question text in lang, falling back to English.
func (q Question) Prompt(lang i18n.Lang) string {
	if s, ok := q.Text[lang]; ok && s != "" {
		return s
	}
	return q.Text[i18n.English]
}

// CanonicalAnswer returns the reference answer in lang, falling back to
// English.
func (q Question) CanonicalAnswer(lang i18n.Lang) string {
	if s, ok := q.Answer[lang]; ok && s != "" {
		return s
	}
	return q.Answer[i18n.English]
}

// Bank is a validated, immutable question set covering the numbers 1..Count.
type Bank struct {
	difficulty Difficulty
	questions  []Question
	index      map[int]int
}

// Load parses and validates one bank. Numbers must cover 1..len(questions)
// with no gaps or duplicates, and every question must carry text and answer
// in every shipped language.
func Load(d Difficulty, raw []byte) (*Bank, error) {
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("parse %s bank: %w", d, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s bank is empty", d)
	}

	index := make(map[int]int, len(questions))
	for i, q := range questions {
		if q.Number < 1 || q.Number > len(questions) {
			return nil, fmt.Errorf("%s bank: question number %d outside 1..%d", d, q.Number, len(questions))
		}
		if _, dup := index[q.Number]; dup {
			return nil, fmt.Errorf("%s bank: duplicate question number %d", d, q.Number)
		}
		for _, lang := range i18n.All() {
			if q.Text[lang] == "" {
				return nil, fmt.Errorf("%s bank: question %d: missing %s text", d, q.Number, lang)
			}
			if q.Answer[lang] == "" {
				return nil, fmt.Errorf("%s bank: question %d: missing %s answer", d, q.Number, lang)
			}
		}
		index[q.Number] = i
	}
	return &Bank{difficulty: d, questions: questions, index: index}, nil
}

// LoadEmbedded loads the bank shipped in the binary for d.
func LoadEmbedded(d Difficulty) (*Bank, error) {
	switch d {
	case Easy:
		return Load(d, easyJSON)
	case Hard:
		return Load(d, hardJSON)
	}
	return nil, fmt.Errorf("unknown difficulty %q", d)
}

func (b *Bank) Difficulty() Difficulty { return b.difficulty }

// Limit returns a bank restricted to the numbers 1..n, for boards configured
// smaller than the shipped bank. Out-of-range n (including the zero config
// default) returns b unchanged.
func (b *Bank) Limit(n int) *Bank {
	if n <= 0 || n >= len(b.questions) {
		return b
	}
	questions := make([]Question, 0, n)
	index := make(map[int]int, n)
	for _, q := range b.questions {
		if q.Number > n {
			continue
		}
		index[q.Number] = len(questions)
		questions = append(questions, q)
	}
	return &Bank{difficulty: b.difficulty, questions: questions, index: index}
}

// Count returns how many numbered questions the bank holds. Boards run from
// 1 to Count inclusive.
func (b *Bank) Count() int { return len(b.questions) }

// ByNumber returns the question behind a board number.
func (b *Bank) ByNumber(n int) (Question, bool) {
	i, ok := b.index[n]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Languages lists the interface languages every question is validated to
// cover.
func (b *Bank) Languages() []i18n.Lang { return i18n.All() }

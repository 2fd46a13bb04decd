package trivia

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jask/triviawheel/internal/i18n"
)

// Verdict classifies a submitted answer.
type Verdict int

const (
	VerdictWrong Verdict = iota
	VerdictClose
	VerdictCorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictClose:
		return "close"
	}
	return "wrong"
}

// closeRatio is the largest edit distance per rune still counted as a near
// miss rather than a wrong answer.
const closeRatio = 0.25

// articles are leading words ignored on both sides of a comparison, so
// "el león" and "león" read as the same answer.
var articles = map[string]bool{
	"the": true, "a": true, "an": true,
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"der": true, "die": true, "das": true, "den": true, "dem": true, "ein": true, "eine": true,
}

// MatchAnswer grades guess against q's answer in lang and its accepted
// spellings. Exact matches after normalization score VerdictCorrect; a small
// edit distance against any candidate scores VerdictClose.
func MatchAnswer(q Question, lang i18n.Lang, guess string) Verdict {
	variants := answerVariants(normalize(guess))
	if len(variants) == 0 {
		return VerdictWrong
	}
	cands := candidates(q, lang)

	// Stage1 exact
	for _, g := range variants {
		for _, c := range cands {
			if g == c {
				return VerdictCorrect
			}
		}
	}
	// Stage2 fuzzy
	for _, g := range variants {
		for _, c := range cands {
			if closeEnough(g, c) {
				return VerdictClose
			}
		}
	}
	return VerdictWrong
}

// candidates collects every normalized form a guess may be compared against:
// the answer in the player's language, the English answer, and the accepted
// extra spellings, each with and without a leading article.
func candidates(q Question, lang i18n.Lang) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		for _, v := range answerVariants(normalize(s)) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	add(q.Answer[lang])
	add(q.Answer[i18n.English])
	for _, a := range q.Accept {
		add(a)
	}
	return out
}

func closeEnough(a, b string) bool {
	dist := levenshtein.ComputeDistance(a, b)
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return false
	}
	return float64(dist)/float64(maxlen) <= closeRatio
}

// answerVariants returns the normalized string itself plus, when it starts
// with an article, the string with that article dropped.
func answerVariants(norm string) []string {
	if norm == "" {
		return nil
	}
	variants := []string{norm}
	if first, rest, ok := strings.Cut(norm, " "); ok && articles[first] && rest != "" {
		variants = append(variants, rest)
	}
	return variants
}

// normalize lowercases, folds ß to ss, turns punctuation into spaces and
// collapses runs of whitespace.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == 'ß':
			b.WriteString("ss")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

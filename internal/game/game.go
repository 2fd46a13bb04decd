// Package game tracks one playthrough across both boards: which numbers have
// been spun, the round log, and the running score. It is pure bookkeeping;
// the wheel decides numbers and the trivia package grades answers.
package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jask/triviawheel/internal/i18n"
	"github.com/jask/triviawheel/internal/trivia"
)

const (
	pointsEasyCorrect = 10
	pointsHardCorrect = 20
)

// Round is one landed number, graded once the player answers or the clock
// runs out.
type Round struct {
	ID         string
	Difficulty trivia.Difficulty
	Number     int
	Question   trivia.Question
	Began      time.Time
	Answered   time.Time
	Guess      string
	TimedOut   bool
	Verdict    trivia.Verdict
	Points     int
}

// Session is one playthrough. At most one round is open at a time; a number
// enters the used set only when its round resolves, so an abandoned game
// never burns a number.
type Session struct {
	banks   map[trivia.Difficulty]*trivia.Bank
	used    map[trivia.Difficulty]map[int]bool
	rounds  []Round
	score   int
	current *Round
}

// NewSession starts a fresh playthrough over the given banks.
func NewSession(banks ...*trivia.Bank) *Session {
	s := &Session{
		banks: make(map[trivia.Difficulty]*trivia.Bank, len(banks)),
		used:  make(map[trivia.Difficulty]map[int]bool, len(banks)),
	}
	for _, b := range banks {
		s.banks[b.Difficulty()] = b
		s.used[b.Difficulty()] = make(map[int]bool)
	}
	return s
}

// Bank returns the question bank behind one board.
func (s *Session) Bank(d trivia.Difficulty) (*trivia.Bank, bool) {
	b, ok := s.banks[d]
	return b, ok
}

// Begin opens a round for a landed number. It fails if another round is
// open, the board is unknown, or the number has already been played.
func (s *Session) Begin(d trivia.Difficulty, number int) (Round, error) {
	if s.current != nil {
		return Round{}, fmt.Errorf("round %s already open", s.current.ID)
	}
	bank, ok := s.banks[d]
	if !ok {
		return Round{}, fmt.Errorf("no %s board in this session", d)
	}
	q, ok := bank.ByNumber(number)
	if !ok {
		return Round{}, fmt.Errorf("%s board has no number %d", d, number)
	}
	if s.used[d][number] {
		return Round{}, fmt.Errorf("%s number %d already played", d, number)
	}
	s.current = &Round{
		ID:         uuid.NewString(),
		Difficulty: d,
		Number:     number,
		Question:   q,
		Began:      time.Now(),
	}
	return *s.current, nil
}

// Current returns the open round, if any.
func (s *Session) Current() (Round, bool) {
	if s.current == nil {
		return Round{}, false
	}
	return *s.current, true
}

// Resolve grades the open round against guess in the player's language,
// scores it and closes it.
func (s *Session) Resolve(lang i18n.Lang, guess string) (Round, error) {
	return s.finish(func(r *Round) {
		r.Guess = guess
		r.Verdict = trivia.MatchAnswer(r.Question, lang, guess)
	})
}

// Timeout closes the open round as unanswered.
func (s *Session) Timeout() (Round, error) {
	return s.finish(func(r *Round) {
		r.TimedOut = true
		r.Verdict = trivia.VerdictWrong
	})
}

func (s *Session) finish(grade func(*Round)) (Round, error) {
	if s.current == nil {
		return Round{}, fmt.Errorf("no round open")
	}
	r := s.current
	s.current = nil
	grade(r)
	r.Answered = time.Now()
	r.Points = points(r.Difficulty, r.Verdict)
	s.used[r.Difficulty][r.Number] = true
	s.score += r.Points
	s.rounds = append(s.rounds, *r)
	return *r, nil
}

func points(d trivia.Difficulty, v trivia.Verdict) int {
	full := pointsEasyCorrect
	if d == trivia.Hard {
		full = pointsHardCorrect
	}
	switch v {
	case trivia.VerdictCorrect:
		return full
	case trivia.VerdictClose:
		return full / 2
	}
	return 0
}

// Score returns the running total.
func (s *Session) Score() int { return s.score }

// Used lists the played numbers of one board in ascending order.
func (s *Session) Used(d trivia.Difficulty) []int {
	nums := make([]int, 0, len(s.used[d]))
	for n := range s.used[d] {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Remaining returns how many numbers of one board are still in play.
func (s *Session) Remaining(d trivia.Difficulty) int {
	bank, ok := s.banks[d]
	if !ok {
		return 0
	}
	return bank.Count() - len(s.used[d])
}

// Finished reports whether every number on every board has been played.
func (s *Session) Finished() bool {
	for d, bank := range s.banks {
		if len(s.used[d]) < bank.Count() {
			return false
		}
	}
	return true
}

// Rounds returns the round log in play order.
func (s *Session) Rounds() []Round {
	return append([]Round(nil), s.rounds...)
}

// Reset abandons any open round and wipes the playthrough.
func (s *Session) Reset() {
	for d := range s.used {
		s.used[d] = make(map[int]bool)
	}
	s.rounds = nil
	s.score = 0
	s.current = nil
}

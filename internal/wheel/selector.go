// Package wheel implements the spinning-wheel number picker: a uniform draw
// from the not-yet-used numbers of a bounded range, committed to the caller by
// a single deferred callback once the fixed spin animation has run its course.
//
// The selector is UI-agnostic. Renderers read Pool, Spinning and Session to
// draw the dial; the picked number travels only through the completion
// callback. All methods are safe for concurrent use because the completion
// timer fires on its own goroutine.
package wheel

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultTurns    = 5
	DefaultDuration = 4 * time.Second
)

// RNG supplies uniform random integers. Production code uses the auto-seeded
// math/rand/v2 generator; tests inject scripted values.
type RNG interface {
	Intn(n int) int
}

type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

// Config describes one wheel instance.
type Config struct {
	// Min and Max bound the selectable numbers, inclusive. Min > Max yields
	// an empty pool and every trigger is refused.
	Min, Max int
	// Turns is the number of full extra revolutions added to every spin for
	// visual effect. It has no bearing on which number is picked.
	Turns int
	// Duration is the fixed time between a trigger and its completion
	// callback. Constant across spins regardless of pool size.
	Duration time.Duration
	// RNG overrides the random source.
	RNG RNG
	// OnResult receives the picked number exactly once per successful spin.
	OnResult func(n int)
}

// Session is a read-only snapshot of an in-flight spin, taken at trigger time
// and immutable for the life of the spin. Renderers interpolate the dial angle
// between Start and Target over Duration. Labels is the eligible pool frozen
// at trigger time so the wedges on screen stay coherent even if the excluded
// set changes before landing. The pending pick is deliberately absent: it is
// delivered only through the completion callback.
type Session struct {
	Start    float64
	Target   float64
	Began    time.Time
	Duration time.Duration
	Labels   []int
}

// Wedge returns the angular width in degrees of one wedge of this session's
// dial.
func (s Session) Wedge() float64 {
	if len(s.Labels) == 0 {
		return 0
	}
	return 360 / float64(len(s.Labels))
}

// Selector owns the accumulated rotation of one wheel and the at-most-one
// live spin session. The excluded set is a borrowed copy of the caller's
// bookkeeping; the selector never mutates it on its own.
type Selector struct {
	mu       sync.Mutex
	min, max int
	turns    int
	duration time.Duration
	rng      RNG
	onResult func(int)
	excluded map[int]struct{}
	rotation float64
	live     *spin
	closed   bool
}

type spin struct {
	pick    int
	timer   *time.Timer
	session Session
}

// New builds a Selector from cfg, applying DefaultTurns, DefaultDuration and
// the standard RNG where cfg leaves them zero.
func New(cfg Config) *Selector {
	if cfg.Turns <= 0 {
		cfg.Turns = DefaultTurns
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.RNG == nil {
		cfg.RNG = stdRNG{}
	}
	return &Selector{
		min:      cfg.Min,
		max:      cfg.Max,
		turns:    cfg.Turns,
		duration: cfg.Duration,
		rng:      cfg.RNG,
		onResult: cfg.OnResult,
		excluded: make(map[int]struct{}),
	}
}

// SetExcluded replaces the excluded set with a copy of nums. Calling it while
// a spin is in flight is legal: the live session keeps the pool, wedge width
// and pick it froze at trigger time, and only the next spin sees the change.
func (s *Selector) SetExcluded(nums []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded = make(map[int]struct{}, len(nums))
	for _, n := range nums {
		s.excluded[n] = struct{}{}
	}
}

// Pool returns the eligible numbers in ascending order: every integer in
// [Min, Max] not currently excluded.
func (s *Selector) Pool() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poolLocked()
}

func (s *Selector) poolLocked() []int {
	if s.max < s.min {
		return nil
	}
	pool := make([]int, 0, s.max-s.min+1)
	for n := s.min; n <= s.max; n++ {
		if _, used := s.excluded[n]; used {
			continue
		}
		pool = append(pool, n)
	}
	return pool
}

// Spinning reports whether a spin session is live.
func (s *Selector) Spinning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live != nil
}

// Rotation returns the accumulated rotation in degrees. It advances to the
// new target at trigger time; use Session to interpolate the visible angle.
func (s *Selector) Rotation() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotation
}

// Session returns a snapshot of the live spin, or ok=false when idle.
func (s *Selector) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return Session{}, false
	}
	snap := s.live.session
	snap.Labels = append([]int(nil), snap.Labels...)
	return snap, true
}

// TriggerSpin starts a spin session: it freezes the current eligible pool,
// draws one member uniformly, computes the target rotation and schedules the
// completion callback after the configured duration. It reports whether a
// session was started; triggering with an empty pool, while another spin is
// live, or after Close is a silent no-op.
func (s *Selector) TriggerSpin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.live != nil {
		return false
	}
	pool := s.poolLocked()
	n := len(pool)
	if n == 0 {
		return false
	}

	i := s.rng.Intn(n)
	wedge := 360 / float64(n)
	start := s.rotation
	target := start + float64(s.turns)*360 + landingDelta(start, float64(i)*wedge)

	sp := &spin{
		pick: pool[i],
		session: Session{
			Start:    start,
			Target:   target,
			Began:    time.Now(),
			Duration: s.duration,
			Labels:   pool,
		},
	}
	s.live = sp
	s.rotation = target
	sp.timer = time.AfterFunc(s.duration, func() { s.land(sp) })
	return true
}

// land commits sp's result. The session check under the mutex makes delivery
// exactly-once: a session cancelled by Close, or superseded in any way, never
// reaches the callback, and the timer itself fires at most once.
func (s *Selector) land(sp *spin) {
	s.mu.Lock()
	if s.closed || s.live != sp {
		s.mu.Unlock()
		return
	}
	s.live = nil
	cb := s.onResult
	s.mu.Unlock()
	if cb != nil {
		cb(sp.pick)
	}
}

// Close cancels any pending completion and refuses all further triggers. A
// spin whose timer has not yet committed will never invoke the callback; as
// with time.Timer.Stop, a delivery already committed when Close is called may
// still finish on its own goroutine. Close is idempotent.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.live != nil {
		s.live.timer.Stop()
		s.live = nil
	}
}

// landingDelta returns the additional angle in [0, 360) that carries a wheel
// resting at rotation current onto the wedge whose start angle is want, so the
// dial's final position always corresponds to the picked wedge no matter what
// pool sizes earlier spins had.
func landingDelta(current, want float64) float64 {
	delta := math.Mod(want-math.Mod(current, 360)+360, 360)
	return delta
}

package wheel

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

// scriptRNG replays a fixed sequence of draws.
type scriptRNG struct {
	vals []int
	i    int
}

func (r *scriptRNG) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// pcgRNG adapts a seeded generator so statistical tests are reproducible.
type pcgRNG struct{ r *rand.Rand }

func (p pcgRNG) Intn(n int) int { return p.r.IntN(n) }

func waitPick(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion callback")
		return 0
	}
}

func assertNoPick(t *testing.T, ch <-chan int, d time.Duration) {
	t.Helper()
	select {
	case n := <-ch:
		t.Fatalf("unexpected completion callback with %d", n)
	case <-time.After(d):
	}
}

func TestPoolExcludesUsedNumbers(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		excluded []int
		want     []int
	}{
		{"full range", 1, 5, nil, []int{1, 2, 3, 4, 5}},
		{"some used", 1, 5, []int{2, 4}, []int{1, 3, 5}},
		{"all used", 1, 3, []int{1, 2, 3}, nil},
		{"outside range ignored", 1, 3, []int{0, 4, 9}, []int{1, 2, 3}},
		{"single number", 7, 7, nil, []int{7}},
		{"inverted range", 5, 1, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Config{Min: tt.min, Max: tt.max})
			defer s.Close()
			s.SetExcluded(tt.excluded)
			got := s.Pool()
			if len(got) != len(tt.want) {
				t.Fatalf("Pool() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Pool() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestTriggerRefusedOnEmptyPool(t *testing.T) {
	picks := make(chan int, 1)
	s := New(Config{Min: 1, Max: 2, Duration: time.Millisecond, OnResult: func(n int) { picks <- n }})
	defer s.Close()
	s.SetExcluded([]int{1, 2})

	if s.TriggerSpin() {
		t.Fatal("TriggerSpin() = true with empty pool")
	}
	if s.Spinning() {
		t.Fatal("Spinning() = true after refused trigger")
	}
	assertNoPick(t, picks, 50*time.Millisecond)
}

func TestTriggerRefusedOnInvertedRange(t *testing.T) {
	s := New(Config{Min: 10, Max: 1})
	defer s.Close()
	if s.TriggerSpin() {
		t.Fatal("TriggerSpin() = true with min > max")
	}
}

func TestRetriggerDuringSpinIsNoOp(t *testing.T) {
	picks := make(chan int, 4)
	s := New(Config{Min: 1, Max: 6, Duration: 60 * time.Millisecond, OnResult: func(n int) { picks <- n }})
	defer s.Close()

	if !s.TriggerSpin() {
		t.Fatal("first TriggerSpin() = false")
	}
	if s.TriggerSpin() {
		t.Fatal("TriggerSpin() = true while already spinning")
	}
	rot := s.Rotation()

	waitPick(t, picks)
	assertNoPick(t, picks, 100*time.Millisecond)
	if got := s.Rotation(); got != rot {
		t.Fatalf("rejected trigger moved rotation from %v to %v", rot, got)
	}

	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false after previous spin completed")
	}
	waitPick(t, picks)
}

func TestCompletionDeliveredExactlyOnce(t *testing.T) {
	picks := make(chan int, 8)
	s := New(Config{Min: 3, Max: 3, Duration: 40 * time.Millisecond, OnResult: func(n int) { picks <- n }})
	defer s.Close()

	began := time.Now()
	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false")
	}
	if got := waitPick(t, picks); got != 3 {
		t.Fatalf("callback delivered %d, want 3", got)
	}
	if elapsed := time.Since(began); elapsed < 40*time.Millisecond {
		t.Fatalf("callback fired after %v, want at least the 40ms spin duration", elapsed)
	}
	if s.Spinning() {
		t.Fatal("Spinning() = true after completion")
	}
	assertNoPick(t, picks, 120*time.Millisecond)
}

func TestScriptedDrawLandsOnRankedWedge(t *testing.T) {
	for _, idx := range []int{0, 1, 2, 3} {
		picks := make(chan int, 1)
		s := New(Config{
			Min:      10,
			Max:      13,
			Turns:    2,
			Duration: time.Millisecond,
			RNG:      &scriptRNG{vals: []int{idx}},
			OnResult: func(n int) { picks <- n },
		})

		if !s.TriggerSpin() {
			t.Fatalf("idx %d: TriggerSpin() = false", idx)
		}
		sess, ok := s.Session()
		if !ok {
			t.Fatalf("idx %d: no live session after trigger", idx)
		}
		wedge := sess.Wedge()
		if wedge != 90 {
			t.Fatalf("idx %d: Wedge() = %v, want 90", idx, wedge)
		}

		got := waitPick(t, picks)
		if want := 10 + idx; got != want {
			t.Fatalf("idx %d: callback delivered %d, want %d", idx, got, want)
		}
		if spun := sess.Target - sess.Start; spun < 2*360 || spun >= 3*360 {
			t.Fatalf("idx %d: spin spans %v degrees, want [720, 1080)", idx, spun)
		}
		final := math.Mod(sess.Target, 360)
		if want := float64(idx) * wedge; math.Abs(final-want) > 1e-9 {
			t.Fatalf("idx %d: final angle %v, want %v", idx, final, want)
		}
		s.Close()
	}
}

func TestRotationAccumulatesAcrossSpins(t *testing.T) {
	picks := make(chan int, 1)
	s := New(Config{
		Min:      1,
		Max:      8,
		Turns:    3,
		Duration: time.Millisecond,
		RNG:      pcgRNG{rand.New(rand.NewPCG(7, 11))},
		OnResult: func(n int) { picks <- n },
	})
	defer s.Close()

	prev := s.Rotation()
	if prev != 0 {
		t.Fatalf("initial Rotation() = %v, want 0", prev)
	}
	for spin := 0; spin < 6; spin++ {
		if !s.TriggerSpin() {
			t.Fatalf("spin %d: TriggerSpin() = false", spin)
		}
		sess, ok := s.Session()
		if !ok {
			t.Fatalf("spin %d: no live session", spin)
		}
		if sess.Start != prev {
			t.Fatalf("spin %d: session starts at %v, want previous rotation %v", spin, sess.Start, prev)
		}
		pick := waitPick(t, picks)

		rot := s.Rotation()
		if spun := rot - prev; spun < 3*360 {
			t.Fatalf("spin %d: advanced %v degrees, want at least 1080", spin, spun)
		}
		rank := -1
		for i, n := range sess.Labels {
			if n == pick {
				rank = i
			}
		}
		if rank < 0 {
			t.Fatalf("spin %d: pick %d not in frozen labels %v", spin, pick, sess.Labels)
		}
		final := math.Mod(rot, 360)
		if want := float64(rank) * sess.Wedge(); math.Abs(final-want) > 1e-9 {
			t.Fatalf("spin %d: final angle %v, want wedge start %v for pick %d", spin, final, want, pick)
		}
		prev = rot
	}
}

func TestSessionFrozenAgainstExclusionChanges(t *testing.T) {
	picks := make(chan int, 1)
	s := New(Config{Min: 1, Max: 5, Duration: 80 * time.Millisecond, OnResult: func(n int) { picks <- n }})
	defer s.Close()

	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false")
	}
	before, ok := s.Session()
	if !ok {
		t.Fatal("no live session after trigger")
	}
	if len(before.Labels) != 5 {
		t.Fatalf("session froze %d labels, want 5", len(before.Labels))
	}

	s.SetExcluded([]int{1, 2, 3, 4, 5})

	after, ok := s.Session()
	if !ok {
		t.Fatal("live session vanished after SetExcluded")
	}
	if len(after.Labels) != 5 || after.Wedge() != before.Wedge() {
		t.Fatalf("live session changed under SetExcluded: %v -> %v", before.Labels, after.Labels)
	}

	pick := waitPick(t, picks)
	found := false
	for _, n := range before.Labels {
		if n == pick {
			found = true
		}
	}
	if !found {
		t.Fatalf("delivered %d, want a member of the frozen pool %v", pick, before.Labels)
	}

	if pool := s.Pool(); len(pool) != 0 {
		t.Fatalf("Pool() = %v after excluding everything, want empty", pool)
	}
	if s.TriggerSpin() {
		t.Fatal("TriggerSpin() = true with fully excluded pool")
	}
}

func TestCloseSuppressesPendingCallback(t *testing.T) {
	picks := make(chan int, 1)
	s := New(Config{Min: 1, Max: 9, Duration: 80 * time.Millisecond, OnResult: func(n int) { picks <- n }})

	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false")
	}
	s.Close()

	if s.Spinning() {
		t.Fatal("Spinning() = true after Close")
	}
	assertNoPick(t, picks, 200*time.Millisecond)

	s.Close()
	if s.TriggerSpin() {
		t.Fatal("TriggerSpin() = true on a closed selector")
	}
}

func TestSingleNumberPoolStillSpins(t *testing.T) {
	picks := make(chan int, 1)
	s := New(Config{Min: 42, Max: 42, Turns: 4, Duration: 50 * time.Millisecond, OnResult: func(n int) { picks <- n }})
	defer s.Close()

	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false with a one-number pool")
	}
	if !s.Spinning() {
		t.Fatal("Spinning() = false mid-flight")
	}
	sess, _ := s.Session()
	if spun := sess.Target - sess.Start; spun != 4*360 {
		t.Fatalf("one-wedge spin spans %v degrees, want exactly 1440", spun)
	}
	if got := waitPick(t, picks); got != 42 {
		t.Fatalf("callback delivered %d, want 42", got)
	}
}

func TestDrawUniformity(t *testing.T) {
	const trials = 5000
	picks := make(chan int, 1)
	s := New(Config{
		Min:      1,
		Max:      5,
		Duration: time.Nanosecond,
		RNG:      pcgRNG{rand.New(rand.NewPCG(1, 2))},
		OnResult: func(n int) { picks <- n },
	})
	defer s.Close()

	counts := make(map[int]int, 5)
	for i := 0; i < trials; i++ {
		if !s.TriggerSpin() {
			t.Fatalf("trial %d: TriggerSpin() = false", i)
		}
		counts[waitPick(t, picks)]++
	}

	want := trials / 5
	for n := 1; n <= 5; n++ {
		got := counts[n]
		if got < want*8/10 || got > want*12/10 {
			t.Fatalf("number %d drawn %d times over %d trials, want within 20%% of %d", n, got, trials, want)
		}
	}
}

func TestSelectorsAreIndependent(t *testing.T) {
	picks := make(chan int, 1)
	a := New(Config{Min: 1, Max: 3, Duration: time.Millisecond, OnResult: func(n int) { picks <- n }})
	b := New(Config{Min: 1, Max: 3})
	defer a.Close()
	defer b.Close()

	if !a.TriggerSpin() {
		t.Fatal("TriggerSpin() = false")
	}
	if b.Spinning() {
		t.Fatal("second selector reports spinning")
	}
	waitPick(t, picks)
	if got := b.Rotation(); got != 0 {
		t.Fatalf("second selector rotation = %v, want 0", got)
	}
}

func TestDefaultsApplied(t *testing.T) {
	s := New(Config{Min: 1, Max: 4})
	defer s.Close()

	if !s.TriggerSpin() {
		t.Fatal("TriggerSpin() = false")
	}
	sess, ok := s.Session()
	if !ok {
		t.Fatal("no live session after trigger")
	}
	if sess.Duration != DefaultDuration {
		t.Fatalf("session duration = %v, want default %v", sess.Duration, DefaultDuration)
	}
	if spun := sess.Target - sess.Start; spun < DefaultTurns*360 {
		t.Fatalf("default spin spans %v degrees, want at least %v", spun, DefaultTurns*360)
	}
}

package tui

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/triviawheel/internal/wheel"
)

func TestDialAngleEasing(t *testing.T) {
	began := time.Now()
	s := wheel.Session{Start: 0, Target: 720, Began: began, Duration: 4 * time.Second}

	cases := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{2 * time.Second, 630}, // cubic-out at p=0.5 is 0.875
		{4 * time.Second, 720},
		{10 * time.Second, 720},
		{-time.Second, 0},
	}
	for _, tc := range cases {
		got := dialAngle(s, began.Add(tc.at))
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("angle at %v = %v, want %v", tc.at, got, tc.want)
		}
	}
}

func TestDialAngleMonotonic(t *testing.T) {
	began := time.Now()
	s := wheel.Session{Start: 360, Target: 2000, Began: began, Duration: 3 * time.Second}

	prev := dialAngle(s, began)
	for i := 1; i <= 40; i++ {
		got := dialAngle(s, began.Add(time.Duration(i)*100*time.Millisecond))
		if got < prev {
			t.Fatalf("angle decreased at step %d: %v -> %v", i, prev, got)
		}
		prev = got
	}
}

func dialRows(t *testing.T, out string) []string {
	t.Helper()
	return strings.Split(ansi.Strip(out), "\n")
}

func TestRenderDialGeometry(t *testing.T) {
	labels := []int{1, 2, 3, 4, 5, 6, 7, 8}
	size := 15
	rows := dialRows(t, renderDial(labels, 0, size))

	if len(rows) != size+1 {
		t.Fatalf("rows = %d, want %d", len(rows), size+1)
	}
	w := 2*size + 1
	for i, row := range rows {
		if got := len([]rune(row)); got != w {
			t.Fatalf("row %d width = %d, want %d", i, got, w)
		}
	}
	cx := w / 2
	if r := []rune(rows[0]); r[cx] != '▼' {
		t.Fatalf("pointer cell = %q, want ▼ at column %d", string(r[cx]), cx)
	}
}

// At rest after a landing the rotation is an exact multiple of the wedge
// width, and both the hub and the cell under the pointer must show the
// picked number.
func TestRenderDialLandedLabelUnderPointer(t *testing.T) {
	labels := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	size := 17
	wedge := 360.0 / float64(len(labels))
	w := 2*size + 1
	cx := w / 2
	cy := size / 2
	ry := cy - 1
	topRow := cy - int(math.Round(labelRadius*float64(ry))) + 1

	for i, want := range labels {
		rotation := 5*360 + float64(i)*wedge
		rows := dialRows(t, renderDial(labels, rotation, size))

		hub := string([]rune(rows[cy+1])[cx-2 : cx+3])
		if !strings.Contains(hub, strconv.Itoa(want)) {
			t.Fatalf("hub %q at rotation %.1f, want %d", hub, rotation, want)
		}
		under := string([]rune(rows[topRow])[cx-2 : cx+3])
		if !strings.Contains(under, strconv.Itoa(want)) {
			t.Fatalf("cell under pointer %q at rotation %.1f, want %d", under, rotation, want)
		}
	}
}

func TestRenderDialSingleLabel(t *testing.T) {
	size := 13
	out := renderDial([]int{7}, 123.4, size)
	stripped := ansi.Strip(out)

	if strings.Contains(stripped, "•") {
		t.Fatal("separator drawn on a single-wedge wheel")
	}
	rows := strings.Split(stripped, "\n")
	cy := size / 2
	cx := (2*size + 1) / 2
	hub := string([]rune(rows[cy+1])[cx-2 : cx+3])
	if !strings.Contains(hub, "7") {
		t.Fatalf("hub %q, want the only label", hub)
	}
}

func TestRenderDialForcesOddSize(t *testing.T) {
	rows := dialRows(t, renderDial([]int{1, 2, 3}, 0, 12))
	if len(rows) != 14 {
		t.Fatalf("rows = %d, want 14 for an even size bumped to 13", len(rows))
	}
}

func TestRenderDialEmpty(t *testing.T) {
	if out := renderDial(nil, 0, 15); out != "" {
		t.Fatalf("empty label set rendered %q", out)
	}
}

func TestDialSizeClamps(t *testing.T) {
	a := &App{cfg: testConfig()}

	if got := a.dialSize(); got != 21 {
		t.Fatalf("unsized window dial = %d, want configured 21", got)
	}
	a.width = 30
	if got := a.dialSize(); got != minDialSize {
		t.Fatalf("narrow window dial = %d, want floor %d", got, minDialSize)
	}
	a.width = 300
	a.height = 16
	if got := a.dialSize(); got != minDialSize {
		t.Fatalf("short window dial = %d, want floor %d", got, minDialSize)
	}
	a.height = 23
	if got := a.dialSize(); got != 15 {
		t.Fatalf("dial = %d, want 15 from height cap", got)
	}
	a.height = 300
	if got := a.dialSize(); got != 21 {
		t.Fatalf("dial = %d, want configured 21 back", got)
	}
}

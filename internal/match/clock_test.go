package match

import (
	"testing"
	"time"
)

func TestStartClockFirstHalfGate(t *testing.T) {
	e, _ := newTestEngine(t)

	// Empty field: refused.
	if err := e.StartClock(); err != ErrIneligibleStart {
		t.Fatalf("expected ErrIneligibleStart, got %v", err)
	}

	// Six players: still refused.
	for _, id := range e.state.PlayerIDs[:6] {
		if err := e.ToggleField(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.StartClock(); err != ErrIneligibleStart {
		t.Fatalf("expected ErrIneligibleStart with 6 fielded, got %v", err)
	}

	// Seventh player: allowed.
	if err := e.ToggleField(e.state.PlayerIDs[6]); err != nil {
		t.Fatal(err)
	}
	if err := e.StartClock(); err != nil {
		t.Fatalf("StartClock with 7 fielded: %v", err)
	}
	if !e.state.Running {
		t.Error("clock should be running")
	}
}

func TestStartClockEightOnFieldRefused(t *testing.T) {
	e, _ := newTestEngine(t)
	fieldSeven(t, e)

	// Force an illegal 8th entry bypassing the controller; start must
	// still refuse a non-7 lineup in the first half.
	extra := e.state.PlayerIDs[7]
	e.state.OnField[extra] = true
	e.state.Entities[extra].InField = true

	if err := e.StartClock(); err != ErrIneligibleStart {
		t.Fatalf("expected ErrIneligibleStart with 8 fielded, got %v", err)
	}
}

func TestStartClockSecondHalfFree(t *testing.T) {
	e, _ := newTestEngine(t)
	e.state.Half = 2

	if err := e.StartClock(); err != nil {
		t.Fatalf("second half start with empty field: %v", err)
	}
}

func TestFlushMonotonicAndIdempotent(t *testing.T) {
	e, clk := newTestEngine(t)
	fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}

	prev := 0.0
	for i := 0; i < 10; i++ {
		clk.Advance(time.Duration(i) * time.Second)
		e.Tick()
		if e.state.Elapsed < prev {
			t.Fatalf("elapsed went backwards: %v -> %v", prev, e.state.Elapsed)
		}
		if e.state.Elapsed > e.state.HalfLength {
			t.Fatalf("elapsed exceeds half length: %v", e.state.Elapsed)
		}
		prev = e.state.Elapsed
	}

	// Flushing twice at the same instant changes nothing.
	before := e.state.Elapsed
	e.Tick()
	if e.state.Elapsed != before {
		t.Errorf("idempotent flush mutated elapsed: %v -> %v", before, e.state.Elapsed)
	}
}

func TestFlushAccruesPlayingTime(t *testing.T) {
	e, clk := newTestEngine(t)
	ids := fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}

	clk.Advance(90 * time.Second)
	e.Tick()

	for _, id := range ids {
		if got := e.state.Entities[id].TimePlayed; got != 90 {
			t.Errorf("player %s time played = %v, want 90", id, got)
		}
	}
	// Benched players stay at zero.
	benched := e.state.PlayerIDs[8]
	if got := e.state.Entities[benched].TimePlayed; got != 0 {
		t.Errorf("benched player time played = %v, want 0", got)
	}
}

func TestHalfTransitionClamps(t *testing.T) {
	e, clk := newTestEngine(t)
	fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}
	notices := collectNotices(e)

	// Elapsed at 1750, then a 55s delta: clamp at 1800, no overshoot.
	e.state.Elapsed = 1750
	clk.Advance(55 * time.Second)
	e.Tick()

	if e.state.Half != 2 {
		t.Fatalf("expected half 2, got %d", e.state.Half)
	}
	if e.state.Elapsed != 0 {
		t.Fatalf("expected elapsed reset for half 2, got %v", e.state.Elapsed)
	}
	if e.state.Running {
		t.Error("clock should stop at half end")
	}
	if !e.state.StartInstant.IsZero() {
		t.Error("start instant should clear at half end")
	}
	if e.state.LastMinuteAlert {
		t.Error("last-minute alert should reset for the second half")
	}
	if !hasNotice(*notices, NoticeHalfEnd) {
		t.Error("expected a half-end notice")
	}
	if hasNotice(*notices, NoticeMatchEnd) {
		t.Error("match-end notice must not fire after the first half")
	}
}

func TestMatchEndSecondHalf(t *testing.T) {
	e, clk := newTestEngine(t)
	e.state.Half = 2
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}
	notices := collectNotices(e)

	e.state.Elapsed = 1790
	clk.Advance(30 * time.Second)
	e.Tick()

	if e.state.Elapsed != 1800 {
		t.Fatalf("expected clamp at 1800, got %v", e.state.Elapsed)
	}
	if e.state.Half != 2 {
		t.Fatalf("half must stay 2, got %d", e.state.Half)
	}
	if e.state.Running {
		t.Error("clock should stop at match end")
	}
	if !hasNotice(*notices, NoticeMatchEnd) {
		t.Error("expected a match-end notice")
	}
}

func TestLastMinuteAlertFiresOnce(t *testing.T) {
	e, clk := newTestEngine(t)
	fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}
	notices := collectNotices(e)

	e.state.Elapsed = 1730
	clk.Advance(15 * time.Second) // 1745, 55s remaining
	e.Tick()
	clk.Advance(5 * time.Second)
	e.Tick()

	count := 0
	for _, n := range *notices {
		if n.Kind == NoticeLastMinute {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("last-minute alert fired %d times, want 1", count)
	}
}

func TestPauseFlushesAndStops(t *testing.T) {
	e, clk := newTestEngine(t)
	fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}

	clk.Advance(42 * time.Second)
	e.PauseClock()

	if e.state.Running {
		t.Error("clock should be paused")
	}
	if e.state.Elapsed != 42 {
		t.Errorf("elapsed = %v, want 42", e.state.Elapsed)
	}

	// Time does not advance while paused.
	clk.Advance(time.Minute)
	e.Tick()
	if e.state.Elapsed != 42 {
		t.Errorf("elapsed advanced while paused: %v", e.state.Elapsed)
	}
}

func TestCountdownExpiryNotices(t *testing.T) {
	e, clk := newTestEngine(t)
	ids := fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}

	if _, err := e.GiveTwoMinutes(ids[0]); err != nil {
		t.Fatal(err)
	}
	notices := collectNotices(e)

	clk.Advance(119 * time.Second)
	e.Tick()
	if hasNotice(*notices, NoticeSuspensionOver) {
		t.Fatal("suspension-over fired early")
	}

	clk.Advance(2 * time.Second)
	e.Tick()
	if !hasNotice(*notices, NoticeSuspensionOver) {
		t.Fatal("expected suspension-over notice")
	}
	if got := e.state.Entities[ids[0]].TwoActive; got != 0 {
		t.Errorf("two-minute countdown = %v, want 0", got)
	}
}

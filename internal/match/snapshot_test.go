package match

import (
	"testing"
	"time"
)

func TestUndoRestoresSanction(t *testing.T) {
	e, _ := newTestEngine(t)
	ids := fieldSeven(t, e)
	id := ids[0]

	if _, err := e.GiveTwoMinutes(id); err != nil {
		t.Fatal(err)
	}
	if e.state.OnField[id] {
		t.Fatal("precondition: player should be off the field")
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	ent := e.state.Entities[id]
	if ent.TwoActive != 0 || ent.TwoTotal != 0 {
		t.Errorf("suspension survived undo: active=%v total=%d", ent.TwoActive, ent.TwoTotal)
	}
	if !e.state.OnField[id] || !ent.InField {
		t.Error("player not restored to the field")
	}
}

func TestUndoRestoresGoal(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[2]
	zone := 1

	if err := e.RegisterGoal(id, ShotWing, &zone, false); err != nil {
		t.Fatal(err)
	}
	if e.state.ScoreFor[1] != 1 || len(e.state.Goals) != 1 {
		t.Fatal("precondition: goal not recorded")
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.state.ScoreFor[1] != 0 {
		t.Errorf("score after undo = %d, want 0", e.state.ScoreFor[1])
	}
	if len(e.state.Goals) != 0 {
		t.Errorf("goal ledger after undo has %d entries", len(e.state.Goals))
	}
}

func TestUndoSingleSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	players := e.state.PlayerIDs

	if err := e.GiveYellow(players[0]); err != nil {
		t.Fatal(err)
	}
	if err := e.GiveYellow(players[1]); err != nil {
		t.Fatal(err)
	}

	// One slot only: undo reverts the second yellow, the first stands.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.state.Entities[players[0]].Yellow != 1 {
		t.Error("first yellow lost")
	}
	if e.state.Entities[players[1]].Yellow != 0 {
		t.Error("second yellow survived")
	}

	if err := e.Undo(); err != ErrNothingToUndo {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestUndoRestoresClock(t *testing.T) {
	e, clk := newTestEngine(t)
	fieldSeven(t, e)
	if err := e.StartClock(); err != nil {
		t.Fatal(err)
	}
	clk.Advance(40 * time.Second)
	e.Tick()
	if e.state.Elapsed != 40 {
		t.Fatalf("elapsed = %v, want 40", e.state.Elapsed)
	}

	clk.Advance(10 * time.Second)
	if err := e.GiveYellow(e.state.PlayerIDs[0]); err != nil {
		t.Fatal(err)
	}
	if e.state.Elapsed != 50 {
		t.Fatalf("elapsed after flush = %v, want 50", e.state.Elapsed)
	}

	// Undo rolls back to the instant before the yellow, 40s in.
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.state.Elapsed != 40 {
		t.Errorf("elapsed after undo = %v, want 40", e.state.Elapsed)
	}
	if !e.state.Running {
		t.Error("running flag lost on undo")
	}
}

func TestUndoEmitsNotice(t *testing.T) {
	e, _ := newTestEngine(t)
	notices := collectNotices(e)

	if err := e.GiveYellow(e.state.PlayerIDs[0]); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if !hasNotice(*notices, NoticeUndo) {
		t.Error("expected an undo notice")
	}
}

func TestRejectedActionLeavesSlotUntouched(t *testing.T) {
	e, _ := newTestEngine(t)
	players := e.state.PlayerIDs

	if err := e.GiveYellow(players[0]); err != nil {
		t.Fatal(err)
	}
	// A refused duplicate must not overwrite the snapshot slot.
	if err := e.GiveYellow(players[0]); err != ErrAlreadyBooked {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.state.Entities[players[0]].Yellow != 0 {
		t.Error("undo did not revert the accepted yellow")
	}
}

package match

import "testing"

func TestRegisterGoal(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[2]
	notices := collectNotices(e)
	zone := 5

	if err := e.RegisterGoal(id, ShotWing, &zone, false); err != nil {
		t.Fatal(err)
	}
	if e.state.ScoreFor[1] != 1 || e.state.ScoreAgainst[1] != 0 {
		t.Errorf("score = %d-%d, want 1-0", e.state.ScoreFor[1], e.state.ScoreAgainst[1])
	}
	if len(e.state.Goals) != 1 {
		t.Fatalf("goal ledger has %d entries", len(e.state.Goals))
	}
	g := e.state.Goals[0]
	if g.EntityID != id || g.ShotType != ShotWing || g.Zone == nil || *g.Zone != 5 || g.Half != 1 {
		t.Errorf("ledger entry wrong: %+v", g)
	}
	if !hasNotice(*notices, NoticeGoal) {
		t.Error("expected a goal notice")
	}
}

func TestRegisterGoalConceded(t *testing.T) {
	e, _ := newTestEngine(t)
	gk := e.state.PlayerIDs[0]

	if err := e.RegisterGoal(gk, ShotNineMeters, nil, true); err != nil {
		t.Fatal(err)
	}
	if e.state.ScoreAgainst[1] != 1 || e.state.ScoreFor[1] != 0 {
		t.Errorf("score = %d-%d, want 0-1", e.state.ScoreFor[1], e.state.ScoreAgainst[1])
	}
}

func TestRegisterGoalZoneValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[2]
	zone := 3

	// A 7m carries no zone at all.
	if err := e.RegisterGoal(id, ShotSevenMeters, &zone, false); err != ErrZoneNotAllowed {
		t.Errorf("7m with zone: expected ErrZoneNotAllowed, got %v", err)
	}
	// Zone 3 is not a wing zone.
	if err := e.RegisterGoal(id, ShotWing, &zone, false); err != ErrZoneNotAllowed {
		t.Errorf("wing from zone 3: expected ErrZoneNotAllowed, got %v", err)
	}
	if len(e.state.Goals) != 0 || e.state.ScoreFor[1] != 0 {
		t.Error("rejected goal mutated state")
	}

	if err := e.RegisterGoal(id, ShotSevenMeters, nil, false); err != nil {
		t.Errorf("7m without zone refused: %v", err)
	}
}

func TestRegisterGoalClearsPassive(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetPassive(true)

	if err := e.RegisterGoal(e.state.PlayerIDs[2], ShotFirstWave, nil, false); err != nil {
		t.Fatal(err)
	}
	if e.state.Passive {
		t.Error("passive flag survived a goal")
	}
}

func TestRegisterShot(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[3]
	zone := 7

	if err := e.RegisterShot(id, OutcomeSaved, ShotNineMeters, &zone, false); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterShot(id, OutcomeMissed, ShotNineMeters, &zone, false); err != nil {
		t.Fatal(err)
	}
	if len(e.state.Shots) != 2 {
		t.Fatalf("shot ledger has %d entries", len(e.state.Shots))
	}
	if e.state.ScoreFor[1] != 0 {
		t.Error("non-scoring shot moved the score")
	}

	if err := e.RegisterShot(id, "deflected", ShotNineMeters, &zone, false); err == nil {
		t.Error("unknown outcome accepted")
	}
}

func TestSanctionedEntityCannotScore(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[2]

	if _, err := e.GiveRed(id); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterGoal(id, ShotFirstWave, nil, false); err != ErrAlreadyDisqualified {
		t.Errorf("expected ErrAlreadyDisqualified, got %v", err)
	}
}

func TestTechnicalFaultsAndAchievements(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[4]

	if err := e.AddTechnicalFault(id); err != nil {
		t.Fatal(err)
	}
	if err := e.AddTechnicalFault(id); err != nil {
		t.Fatal(err)
	}
	if got := e.state.Entities[id].TechFaults; got != 2 {
		t.Errorf("tech faults = %d, want 2", got)
	}

	e.SetPassive(true)
	if err := e.AddAchievement(id, "roubo de bola"); err != nil {
		t.Fatal(err)
	}
	ent := e.state.Entities[id]
	if len(ent.Achievements) != 1 || ent.Achievements[0].Label != "roubo de bola" {
		t.Errorf("achievements = %+v", ent.Achievements)
	}
	if len(e.state.Timeline) != 1 {
		t.Errorf("timeline has %d events, want 1", len(e.state.Timeline))
	}
	if e.state.Passive {
		t.Error("passive flag survived an achievement")
	}
}

func TestSufferedCounters(t *testing.T) {
	e, _ := newTestEngine(t)
	id := e.state.PlayerIDs[0]

	if err := e.RegisterGoal(id, ShotSixMeters, nil, true); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterShot(id, OutcomeSaved, ShotNineMeters, nil, true); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterShot(id, OutcomeMissed, ShotWing, nil, true); err != nil {
		t.Fatal(err)
	}
	// Own attempts must not leak into the suffered tallies.
	if err := e.RegisterShot(e.state.PlayerIDs[2], OutcomeMissed, ShotWing, nil, false); err != nil {
		t.Fatal(err)
	}

	suf := e.Suffered()
	if suf.ConcededTotal != 1 || suf.SavedTotal != 1 || suf.MissedTotal != 1 {
		t.Errorf("suffered = %+v, want 1/1/1", suf)
	}
	if suf.ConcededFirst != 1 || suf.SavedFirst != 1 || suf.MissedFirst != 1 {
		t.Errorf("suffered first half = %+v, want 1/1/1", suf)
	}
}

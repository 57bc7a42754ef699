package match

import "fmt"

// RegisterGoal appends a goal to the ledger and updates the per-half
// score. Conceded goals count against; everything else counts for. Shot
// types without zone compatibility must be registered with a nil zone.
func (e *Engine) RegisterGoal(id, shotType string, zone *int, conceded bool) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if err := checkZone(shotType, zone); err != nil {
			return err
		}

		e.pushSnapshotLocked("goal " + ent.Name + " (" + shotType + ")")
		e.flushLocked(e.now())

		s := e.state
		entry := LedgerEntry{
			EntityID: id,
			Kind:     LedgerGoal,
			ShotType: shotType,
			Zone:     zone,
			Half:     s.Half,
			Conceded: conceded,
			Elapsed:  int(s.Elapsed),
		}
		s.Goals = append(s.Goals, entry)
		if conceded {
			s.ScoreAgainst[s.Half]++
			e.emitLocked(Notice{
				Kind:     NoticeGoal,
				EntityID: id,
				Message:  fmt.Sprintf("⚠️ Goal conceded - %s%s", shotType, zoneSuffix(zone)),
			})
		} else {
			s.ScoreFor[s.Half]++
			e.emitLocked(Notice{
				Kind:     NoticeGoal,
				EntityID: id,
				Message:  fmt.Sprintf("⚽ Goal - %d %s · %s%s", ent.Number, ent.Name, shotType, zoneSuffix(zone)),
			})
		}
		s.Passive = false
		e.recordLocked(ActionGoal, id, entry)
		return nil
	})
}

// RegisterShot appends a non-scoring shot (saved or missed) to the
// ledger. The score is untouched.
func (e *Engine) RegisterShot(id, outcome, shotType string, zone *int, conceded bool) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if outcome != OutcomeSaved && outcome != OutcomeMissed {
			return &ValidationError{Reason: "unknown shot outcome: " + outcome}
		}
		if err := checkZone(shotType, zone); err != nil {
			return err
		}

		e.pushSnapshotLocked("shot " + outcome + " " + ent.Name + " (" + shotType + ")")
		e.flushLocked(e.now())

		s := e.state
		entry := LedgerEntry{
			EntityID: id,
			Kind:     LedgerShot,
			ShotType: shotType,
			Zone:     zone,
			Outcome:  outcome,
			Half:     s.Half,
			Conceded: conceded,
			Elapsed:  int(s.Elapsed),
		}
		s.Shots = append(s.Shots, entry)

		icon := "❌"
		if outcome == OutcomeSaved {
			icon = "🧤"
		}
		suffix := ""
		if conceded {
			suffix = " (suffered)"
		}
		e.emitLocked(Notice{
			Kind:     NoticeShot,
			EntityID: id,
			Message:  fmt.Sprintf("%s Shot %s%s - %s · %s%s", icon, outcome, suffix, ent.Name, shotType, zoneSuffix(zone)),
		})
		s.Passive = false
		e.recordLocked(ActionShot, id, entry)
		return nil
	})
}

// AddTechnicalFault counts a technical fault against a player.
func (e *Engine) AddTechnicalFault(id string) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		e.pushSnapshotLocked("technical fault " + ent.Name)
		e.flushLocked(e.now())
		ent.TechFaults++
		e.recordLocked(ActionTechFault, id, nil)
		return nil
	})
}

// AddAchievement records a conquest (steal, interception, drawn 2',
// drawn 7m, ...) on the entity and on the match timeline.
func (e *Engine) AddAchievement(id, label string) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		e.pushSnapshotLocked("achievement " + ent.Name)
		e.flushLocked(e.now())

		s := e.state
		at := int(s.Elapsed)
		ent.Achievements = append(ent.Achievements, Achievement{Elapsed: at, Label: label})
		s.Timeline = append(s.Timeline, TimelineEvent{
			Elapsed: at,
			Text:    fmt.Sprintf("%s earned: %s", ent.Name, label),
		})
		s.Passive = false
		e.recordLocked(ActionAchievement, id, map[string]string{"label": label})
		return nil
	})
}

// SetPassive flips the passive-play flag. Registering any goal, shot or
// achievement clears it.
func (e *Engine) SetPassive(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Passive = v
}

// checkZone rejects a zone the shot type is not compatible with. A nil
// zone is always accepted; no-zone shot types accept nothing else.
func checkZone(shotType string, zone *int) error {
	if zone == nil {
		return nil
	}
	if !AllowedZones(shotType)[*zone] {
		return ErrZoneNotAllowed
	}
	return nil
}

func zoneSuffix(zone *int) string {
	if zone == nil {
		return ""
	}
	return fmt.Sprintf(" · zone %d", *zone)
}

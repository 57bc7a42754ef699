package match

import "fmt"

// ForcedSubstitutionRequest is raised when an official is sanctioned
// with 2' or red: the team must withdraw one fielded player and block
// them for the given duration. The caller resolves it with
// ResolveForcedSubstitution once a player has been chosen.
type ForcedSubstitutionRequest struct {
	DurationSeconds int    `json:"durationSeconds"`
	Reason          string `json:"reason"`
}

// PendingForcedSub returns the outstanding forced-substitution request,
// if any.
func (e *Engine) PendingForcedSub() *ForcedSubstitutionRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return nil
	}
	req := *e.pending
	return &req
}

// officialsYellowCapReached applies the configured cap variant.
func (e *Engine) officialsYellowCapReached(ent *Entity) bool {
	if e.cfg.PerOfficialCaps {
		return ent.Yellow >= 1
	}
	return e.state.OfficialsYellowTotal >= 1
}

// officialsTwoCapReached applies the configured cap variant.
func (e *Engine) officialsTwoCapReached(ent *Entity) bool {
	if e.cfg.PerOfficialCaps {
		return ent.TwoTotal >= 1
	}
	return e.state.OfficialsTwoTotal >= 1
}

// GiveYellow books an entity. Officials share a single yellow across the
// whole bench (unless configured per-official); athletes are limited to
// one each and three per team.
func (e *Engine) GiveYellow(id string) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if ent.IsOfficial {
			if e.officialsYellowCapReached(ent) {
				return ErrCollectiveLimitReached
			}
			if ent.Yellow >= 1 {
				return ErrAlreadyBooked
			}
			e.pushSnapshotLocked("yellow official " + ent.Name)
			e.flushLocked(e.now())
			ent.Yellow = 1
			e.state.OfficialsYellowTotal++
			e.emitLocked(Notice{
				Kind:     NoticeSanction,
				EntityID: id,
				Message:  fmt.Sprintf("🟨 Official %s - yellow card", ent.Name),
			})
			e.recordLocked(ActionYellow, id, nil)
			return nil
		}

		if e.state.TeamYellowTotal >= 3 {
			return ErrCollectiveLimitReached
		}
		if ent.Yellow >= 1 {
			return ErrAlreadyBooked
		}
		e.pushSnapshotLocked("yellow " + ent.Name)
		e.flushLocked(e.now())
		ent.Yellow = 1
		e.state.TeamYellowTotal++
		e.emitLocked(Notice{
			Kind:     NoticeSanction,
			EntityID: id,
			Message:  fmt.Sprintf("🟨 %d %s - yellow card (team %d/3)", ent.Number, ent.Name, e.state.TeamYellowTotal),
		})
		e.recordLocked(ActionYellow, id, nil)
		return nil
	})
}

// GiveTwoMinutes applies a 2-minute suspension. The third 2' of an
// athlete disqualifies them and converts into a team penalty; an
// official's 2' always converts into a team penalty and raises a
// forced-substitution request. The returned request is non-nil only for
// official sanctions.
func (e *Engine) GiveTwoMinutes(id string) (*ForcedSubstitutionRequest, error) {
	var req *ForcedSubstitutionRequest
	err := e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if ent.IsOfficial && e.officialsTwoCapReached(ent) {
			// Allowance spent: from here only red remains for officials.
			return ErrCollectiveLimitReached
		}

		e.pushSnapshotLocked("2' " + ent.Name)
		e.flushLocked(e.now())
		e.removeFromFieldLocked(ent)

		if ent.IsOfficial {
			ent.TwoTotal++
			e.state.OfficialsTwoTotal++
			e.state.TeamPenalties = append(e.state.TeamPenalties, 120)
			e.emitLocked(Notice{
				Kind:     NoticeSanction,
				EntityID: id,
				Message:  fmt.Sprintf("⏱️ Official %s - 2' (team serves 2')", ent.Name),
			})
			req = e.raiseForcedSubLocked("official 2'")
			e.recordLocked(ActionTwoMinutes, id, nil)
			return nil
		}

		ent.TwoTotal++
		if ent.TwoTotal >= 3 {
			// Residual countdown is preserved: it still finishes, it just
			// no longer restores eligibility.
			ent.Disqualified = true
			e.state.TeamPenalties = append(e.state.TeamPenalties, 120)
			e.emitLocked(Notice{
				Kind:     NoticeDisqualification,
				EntityID: id,
				Message:  fmt.Sprintf("🟥 %d %s disqualified (3×2'). Team serves +2'", ent.Number, ent.Name),
			})
		} else {
			ent.TwoActive += 120
			e.emitLocked(Notice{
				Kind:     NoticeSanction,
				EntityID: id,
				Message:  fmt.Sprintf("🚫 %d %s - +2' (active %ds)", ent.Number, ent.Name, int(ent.TwoActive)),
			})
		}
		e.recordLocked(ActionTwoMinutes, id, nil)
		return nil
	})
	return req, err
}

// GiveRed disqualifies an entity outright and assigns a team penalty.
// For officials it also raises a forced-substitution request.
func (e *Engine) GiveRed(id string) (*ForcedSubstitutionRequest, error) {
	var req *ForcedSubstitutionRequest
	err := e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}

		e.pushSnapshotLocked("red " + ent.Name)
		e.flushLocked(e.now())
		e.removeFromFieldLocked(ent)

		ent.Disqualified = true
		ent.Red++
		e.state.TeamPenalties = append(e.state.TeamPenalties, 120)

		if ent.IsOfficial {
			e.emitLocked(Notice{
				Kind:     NoticeDisqualification,
				EntityID: id,
				Message:  fmt.Sprintf("🟥 Official %s - sent off (team serves 2')", ent.Name),
			})
			req = e.raiseForcedSubLocked("official red card")
		} else {
			e.emitLocked(Notice{
				Kind:     NoticeDisqualification,
				EntityID: id,
				Message:  fmt.Sprintf("🟥 %d %s - sent off (team serves 2')", ent.Number, ent.Name),
			})
		}
		e.recordLocked(ActionRed, id, nil)
		return nil
	})
	return req, err
}

// raiseForcedSubLocked stores the pending request and emits the matching
// notice. When no player is fielded the request stays pending but is
// reported as unsatisfiable right now.
func (e *Engine) raiseForcedSubLocked(reason string) *ForcedSubstitutionRequest {
	dur := int(e.cfg.ForcedBenchDuration.Seconds())
	req := &ForcedSubstitutionRequest{DurationSeconds: dur, Reason: reason}
	e.pending = req

	if len(e.state.fieldPlayers()) == 0 {
		e.emitLocked(Notice{
			Kind:    NoticeForcedSubNobody,
			Message: "⛔ No fielded player available to withdraw right now",
			Seconds: dur,
		})
	} else {
		e.emitLocked(Notice{
			Kind:    NoticeForcedSub,
			Message: fmt.Sprintf("⛔ Pick one fielded player to withdraw and block for %ds (%s)", dur, reason),
			Seconds: dur,
		})
	}
	out := *req
	return &out
}

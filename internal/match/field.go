package match

import "fmt"

// removeFromFieldLocked withdraws an entity from the field set if
// present. Time must already be flushed by the caller.
func (e *Engine) removeFromFieldLocked(ent *Entity) {
	if e.state.OnField[ent.ID] {
		delete(e.state.OnField, ent.ID)
		ent.InField = false
	}
}

// ToggleField moves a player between bench and field. Officials,
// disqualified players, players serving a 2' and players blocked on the
// forced bench are rejected. Entering is capped by the dynamic field
// capacity. Every toggle re-marks the clock start instant so the new
// field composition is the one accruing time from here on, even while
// paused.
func (e *Engine) ToggleField(id string) error {
	return e.do(func() error {
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.IsOfficial {
			return ErrOfficialNotFieldable
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if ent.TwoActive > 0 {
			return ErrSuspensionActive
		}
		if e.state.ForcedBench[id] > 0 {
			return ErrBenchBlocked
		}

		e.pushSnapshotLocked("field toggle " + ent.Name)
		e.flushLocked(e.now())

		if ent.InField {
			delete(e.state.OnField, id)
			ent.InField = false
		} else {
			if len(e.state.OnField) >= AllowedOnField(e.state) {
				// Capacity is checked after the flush so that expired
				// suspensions count in the player's favor.
				return ErrCapacityExceeded
			}
			e.state.OnField[id] = true
			ent.InField = true
		}

		// Mark the restart point for time accrual under the new lineup.
		e.state.StartInstant = e.now()
		e.recordLocked(ActionFieldToggle, id, map[string]bool{"inField": ent.InField})
		return nil
	})
}

// ResolveForcedSubstitution answers a pending forced-substitution
// request by withdrawing the chosen fielded player and blocking them on
// the bench for the request's duration.
func (e *Engine) ResolveForcedSubstitution(id string) error {
	return e.do(func() error {
		if e.pending == nil {
			return ErrNoPendingRequest
		}
		ent, err := e.entityLocked(id)
		if err != nil {
			return err
		}
		if ent.IsOfficial {
			return ErrOfficialNotFieldable
		}
		if ent.Disqualified {
			return ErrAlreadyDisqualified
		}
		if !e.state.OnField[id] {
			return &ValidationError{Reason: "chosen player is not on the field"}
		}

		req := e.pending
		e.pushSnapshotLocked("withdraw " + ent.Name + " (" + req.Reason + ")")
		e.flushLocked(e.now())

		e.removeFromFieldLocked(ent)
		e.state.ForcedBench[id] += float64(req.DurationSeconds)
		e.pending = nil

		e.emitLocked(Notice{
			Kind:     NoticeSanction,
			EntityID: id,
			Message:  fmt.Sprintf("⛔ %s blocked for %ds", ent.Name, req.DurationSeconds),
			Seconds:  req.DurationSeconds,
		})
		e.recordLocked(ActionForcedSub, id, req)
		return nil
	})
}

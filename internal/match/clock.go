package match

import (
	"fmt"
	"time"
)

// StartClock resumes play. In the first half exactly 7 players must be
// fielded (a goalkeeper among them is not mandatory); the second half
// starts freely.
func (e *Engine) StartClock() error {
	return e.do(func() error {
		s := e.state
		if s.Half == 1 && len(s.OnField) != 7 {
			return ErrIneligibleStart
		}
		s.Running = true
		s.StartInstant = e.now()
		e.recordLocked(ActionClockStart, "", nil)
		return nil
	})
}

// PauseClock flushes time and stops the clock.
func (e *Engine) PauseClock() {
	e.do(func() error {
		if e.state.Running {
			e.flushLocked(e.now())
		}
		e.state.Running = false
		e.recordLocked(ActionClockPause, "", nil)
		return nil
	})
}

// flushLocked re-synchronizes every timer with the wall clock. It is
// idempotent: a second call at the same instant is a no-op. Deltas are
// recomputed from the stored start instant rather than accumulated per
// tick, so irregular tick cadence never drifts the clock.
func (e *Engine) flushLocked(now time.Time) {
	s := e.state
	if !s.Running {
		return
	}
	if s.StartInstant.IsZero() {
		// First flush after a start with no instant recorded yet.
		s.StartInstant = now
		return
	}

	delta := now.Sub(s.StartInstant).Seconds()
	if delta <= 0 {
		return
	}
	s.Elapsed += delta
	s.StartInstant = now

	// Playing time for fielded players.
	for id := range s.OnField {
		if ent := s.Entities[id]; ent != nil && !ent.IsOfficial {
			ent.TimePlayed += delta
		}
	}

	// Player 2' countdowns. Expiry of a disqualified player's residual
	// countdown never revives the player.
	for _, id := range s.PlayerIDs {
		ent := s.Entities[id]
		if ent.TwoActive <= 0 {
			continue
		}
		ent.TwoActive -= delta
		if ent.TwoActive <= 0 {
			ent.TwoActive = 0
			if ent.Disqualified {
				e.emitLocked(Notice{
					Kind:     NoticeSuspensionOver,
					EntityID: id,
					Message:  fmt.Sprintf("✅ Inferiority tied to %d %s is over (still disqualified)", ent.Number, ent.Name),
				})
			} else {
				e.emitLocked(Notice{
					Kind:     NoticeSuspensionOver,
					EntityID: id,
					Message:  fmt.Sprintf("✅ %d %s may re-enter (2' over)", ent.Number, ent.Name),
				})
			}
		}
	}

	// Team penalty countdowns. Finished entries are dropped.
	kept := s.TeamPenalties[:0]
	for _, t := range s.TeamPenalties {
		if t <= 0 {
			continue
		}
		t -= delta
		if t <= 0 {
			e.emitLocked(Notice{Kind: NoticeTeamPenaltyOver, Message: "✅ Team 2' penalty is over"})
			continue
		}
		kept = append(kept, t)
	}
	s.TeamPenalties = kept

	// Forced-bench blocks.
	for id, secs := range s.ForcedBench {
		if secs <= 0 {
			delete(s.ForcedBench, id)
			continue
		}
		secs -= delta
		if secs <= 0 {
			delete(s.ForcedBench, id)
			name := id
			if ent := s.Entities[id]; ent != nil {
				name = ent.Name
			}
			e.emitLocked(Notice{
				Kind:     NoticeBenchBlockOver,
				EntityID: id,
				Message:  fmt.Sprintf("✅ Bench block over - %s may re-enter", name),
			})
			continue
		}
		s.ForcedBench[id] = secs
	}

	// Last-minute alert, once per half.
	if rem := int(s.Remaining()); s.Running && rem <= 60 && !s.LastMinuteAlert {
		e.emitLocked(Notice{
			Kind:    NoticeLastMinute,
			Message: fmt.Sprintf("⏰ Last minute! %ds left", rem),
			Seconds: rem,
		})
		s.LastMinuteAlert = true
	}

	// Half end: clamp, never overshoot.
	if s.Elapsed >= s.HalfLength {
		s.Elapsed = s.HalfLength
		s.Running = false
		e.emitLocked(Notice{
			Kind:    NoticeHalfEnd,
			Message: fmt.Sprintf("⏱️ End of half %d", s.Half),
		})
		if s.Half == 1 {
			s.Half = 2
			s.Elapsed = 0
			s.StartInstant = time.Time{}
			s.LastMinuteAlert = false
		} else {
			e.emitLocked(Notice{Kind: NoticeMatchEnd, Message: "🏁 End of the match"})
		}
	}
}

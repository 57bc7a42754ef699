package match

import (
	"fmt"
	"time"
)

// Snapshot is a deep copy of the mutable subset of the match state,
// taken immediately before a mutating action. Only one snapshot is
// retained, giving a single level of undo.
type Snapshot struct {
	Label string

	Entities    map[string]*Entity
	OnField     map[string]bool
	ForcedBench map[string]float64

	TeamPenalties []float64

	TeamYellowTotal      int
	OfficialsYellowTotal int
	OfficialsTwoTotal    int

	ScoreFor     [3]int
	ScoreAgainst [3]int

	Goals    []LedgerEntry
	Shots    []LedgerEntry
	Timeline []TimelineEvent

	Running         bool
	StartInstant    time.Time
	Elapsed         float64
	Half            int
	LastMinuteAlert bool
	Passive         bool
}

// pushSnapshotLocked captures the current state, replacing any snapshot
// taken earlier. Two mutating actions in a row make the first
// unrecoverable.
func (e *Engine) pushSnapshotLocked(label string) {
	s := e.state
	snap := &Snapshot{
		Label:                label,
		Entities:             make(map[string]*Entity, len(s.Entities)),
		OnField:              make(map[string]bool, len(s.OnField)),
		ForcedBench:          make(map[string]float64, len(s.ForcedBench)),
		TeamPenalties:        append([]float64(nil), s.TeamPenalties...),
		TeamYellowTotal:      s.TeamYellowTotal,
		OfficialsYellowTotal: s.OfficialsYellowTotal,
		OfficialsTwoTotal:    s.OfficialsTwoTotal,
		ScoreFor:             s.ScoreFor,
		ScoreAgainst:         s.ScoreAgainst,
		Goals:                append([]LedgerEntry(nil), s.Goals...),
		Shots:                append([]LedgerEntry(nil), s.Shots...),
		Timeline:             append([]TimelineEvent(nil), s.Timeline...),
		Running:              s.Running,
		StartInstant:         s.StartInstant,
		Elapsed:              s.Elapsed,
		Half:                 s.Half,
		LastMinuteAlert:      s.LastMinuteAlert,
		Passive:              s.Passive,
	}
	for id, ent := range s.Entities {
		snap.Entities[id] = ent.Clone()
	}
	for id := range s.OnField {
		snap.OnField[id] = true
	}
	for id, secs := range s.ForcedBench {
		snap.ForcedBench[id] = secs
	}
	e.snapshot = snap
}

// Undo restores the state captured before the most recent mutating
// action and clears the snapshot slot. There is no redo.
func (e *Engine) Undo() error {
	return e.do(func() error {
		snap := e.snapshot
		if snap == nil {
			return ErrNothingToUndo
		}
		s := e.state
		s.Entities = snap.Entities
		s.OnField = snap.OnField
		s.ForcedBench = snap.ForcedBench
		s.TeamPenalties = snap.TeamPenalties
		s.TeamYellowTotal = snap.TeamYellowTotal
		s.OfficialsYellowTotal = snap.OfficialsYellowTotal
		s.OfficialsTwoTotal = snap.OfficialsTwoTotal
		s.ScoreFor = snap.ScoreFor
		s.ScoreAgainst = snap.ScoreAgainst
		s.Goals = snap.Goals
		s.Shots = snap.Shots
		s.Timeline = snap.Timeline
		s.Running = snap.Running
		s.StartInstant = snap.StartInstant
		s.Elapsed = snap.Elapsed
		s.Half = snap.Half
		s.LastMinuteAlert = snap.LastMinuteAlert
		s.Passive = snap.Passive
		e.snapshot = nil

		e.emitLocked(Notice{
			Kind:    NoticeUndo,
			Message: fmt.Sprintf("↩️ Undone: %s", snap.Label),
		})
		e.recordLocked(ActionUndo, "", map[string]string{"label": snap.Label})
		return nil
	})
}

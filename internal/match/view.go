package match

// EntityView is a JSON-friendly copy of one entity for the presentation
// layer, enriched with derived flags the board needs.
type EntityView struct {
	ID           string        `json:"id"`
	Number       int           `json:"number"`
	Name         string        `json:"name"`
	Position     string        `json:"position"`
	Official     bool          `json:"official"`
	Goalkeeper   bool          `json:"goalkeeper"`
	InField      bool          `json:"inField"`
	MinutesShown int           `json:"minutes"` // whole minutes played, capped at 60
	Yellow       int           `json:"yellow"`
	TwoTotal     int           `json:"twoTotal"`
	TwoActive    int           `json:"twoActive"`
	Red          int           `json:"red"`
	Disqualified bool          `json:"disqualified"`
	TechFaults   int           `json:"techFaults"`
	BenchSeconds int           `json:"benchSeconds"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// StateView is the full presentation snapshot broadcast to clients.
type StateView struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
	Date  string `json:"date"`
	Place string `json:"place"`

	Running   bool    `json:"running"`
	Half      int     `json:"half"`
	Elapsed   float64 `json:"elapsed"` // live value including the running delta
	Remaining float64 `json:"remaining"`

	Score    ScoreSummary `json:"score"`
	Suffered SufferedSummary `json:"suffered"`

	OnFieldCount   int         `json:"onFieldCount"`
	AllowedOnField int         `json:"allowedOnField"`
	FieldStatus    FieldStatus `json:"fieldStatus"`
	Passive        bool        `json:"passive"`

	TeamYellowTotal      int       `json:"teamYellowTotal"`
	OfficialsYellowTotal int       `json:"officialsYellowTotal"`
	OfficialsTwoTotal    int       `json:"officialsTwoTotal"`
	TeamPenalties        []float64 `json:"teamPenalties"`

	PendingForcedSub *ForcedSubstitutionRequest `json:"pendingForcedSub,omitempty"`

	Players   []EntityView `json:"players"`
	Officials []EntityView `json:"officials"`

	GoalCount int `json:"goalCount"`
	ShotCount int `json:"shotCount"`
}

// View assembles the presentation snapshot. Elapsed includes the delta
// since the last flush when the clock is running, so displays stay live
// without mutating state.
func (e *Engine) View() StateView {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	elapsed := s.Elapsed
	if s.Running && !s.StartInstant.IsZero() {
		if d := e.now().Sub(s.StartInstant).Seconds(); d > 0 {
			elapsed += d
		}
	}
	if elapsed > s.HalfLength {
		elapsed = s.HalfLength
	}

	v := StateView{
		TeamA:     s.TeamA,
		TeamB:     s.TeamB,
		Date:      s.Date,
		Place:     s.Place,
		Running:   s.Running,
		Half:      s.Half,
		Elapsed:   elapsed,
		Remaining: s.HalfLength - elapsed,
		Score: ScoreSummary{
			ForFirst:      s.ScoreFor[1],
			ForSecond:     s.ScoreFor[2],
			ForTotal:      s.ScoreFor[1] + s.ScoreFor[2],
			AgainstFirst:  s.ScoreAgainst[1],
			AgainstSecond: s.ScoreAgainst[2],
			AgainstTotal:  s.ScoreAgainst[1] + s.ScoreAgainst[2],
		},
		OnFieldCount:         len(s.OnField),
		AllowedOnField:       AllowedOnField(s),
		FieldStatus:          s.FieldStatus(),
		Passive:              s.Passive,
		TeamYellowTotal:      s.TeamYellowTotal,
		OfficialsYellowTotal: s.OfficialsYellowTotal,
		OfficialsTwoTotal:    s.OfficialsTwoTotal,
		TeamPenalties:        append([]float64(nil), s.TeamPenalties...),
		GoalCount:            len(s.Goals),
		ShotCount:            len(s.Shots),
	}
	v.Suffered = e.sufferedLocked()

	if e.pending != nil {
		req := *e.pending
		v.PendingForcedSub = &req
	}

	for _, id := range s.PlayerIDs {
		v.Players = append(v.Players, e.entityViewLocked(id))
	}
	for _, id := range s.OfficialIDs {
		v.Officials = append(v.Officials, e.entityViewLocked(id))
	}
	return v
}

func (e *Engine) entityViewLocked(id string) EntityView {
	ent := e.state.Entities[id]
	mins := int(ent.TimePlayed) / 60
	if mins > 60 {
		mins = 60
	}
	return EntityView{
		ID:           ent.ID,
		Number:       ent.Number,
		Name:         ent.Name,
		Position:     ent.Position,
		Official:     ent.IsOfficial,
		Goalkeeper:   ent.IsGoalkeeper(),
		InField:      ent.InField,
		MinutesShown: mins,
		Yellow:       ent.Yellow,
		TwoTotal:     ent.TwoTotal,
		TwoActive:    int(ent.TwoActive),
		Red:          ent.Red,
		Disqualified: ent.Disqualified,
		TechFaults:   ent.TechFaults,
		BenchSeconds: int(e.state.ForcedBench[id]),
		Achievements: append([]Achievement(nil), ent.Achievements...),
	}
}

// sufferedLocked is Suffered without re-locking, for View.
func (e *Engine) sufferedLocked() SufferedSummary {
	var out SufferedSummary
	for _, g := range e.state.Goals {
		if !g.Conceded {
			continue
		}
		out.ConcededTotal++
		if g.Half == 1 {
			out.ConcededFirst++
		} else {
			out.ConcededSecond++
		}
	}
	for _, sh := range e.state.Shots {
		if !sh.Conceded {
			continue
		}
		switch sh.Outcome {
		case OutcomeSaved:
			out.SavedTotal++
			if sh.Half == 1 {
				out.SavedFirst++
			} else {
				out.SavedSecond++
			}
		case OutcomeMissed:
			out.MissedTotal++
			if sh.Half == 1 {
				out.MissedFirst++
			} else {
				out.MissedSecond++
			}
		}
	}
	return out
}

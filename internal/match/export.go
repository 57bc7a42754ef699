package match

// EntityRecord is the flat per-entity row exposed for downstream
// serialization (CSV, JSON, spreadsheets). The engine is indifferent to
// the format the reporting layer picks.
type EntityRecord struct {
	ID               string  `json:"id"`
	Official         bool    `json:"official"`
	Number           int     `json:"number"`
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	SecondsPlayed    float64 `json:"secondsPlayed"`
	InField          bool    `json:"inField"`
	Yellow           int     `json:"yellow"`
	TwoTotal         int     `json:"twoTotal"`
	TwoActiveSeconds int     `json:"twoActiveSeconds"`
	Red              int     `json:"red"`
	Disqualified     bool    `json:"disqualified"`
	TechFaults       int     `json:"techFaults"`
	BenchSeconds     int     `json:"benchSeconds"`
}

// ScoreSummary is the per-half and total score table.
type ScoreSummary struct {
	ForFirst      int `json:"forFirst"`
	ForSecond     int `json:"forSecond"`
	ForTotal      int `json:"forTotal"`
	AgainstFirst  int `json:"againstFirst"`
	AgainstSecond int `json:"againstSecond"`
	AgainstTotal  int `json:"againstTotal"`
}

// SufferedSummary counts suffered events per half: conceded goals plus
// saved and missed shots registered against the goalkeeper.
type SufferedSummary struct {
	ConcededFirst  int `json:"concededFirst"`
	ConcededSecond int `json:"concededSecond"`
	ConcededTotal  int `json:"concededTotal"`
	SavedFirst     int `json:"savedFirst"`
	SavedSecond    int `json:"savedSecond"`
	SavedTotal     int `json:"savedTotal"`
	MissedFirst    int `json:"missedFirst"`
	MissedSecond   int `json:"missedSecond"`
	MissedTotal    int `json:"missedTotal"`
}

// ExportRecords returns every entity as a flat record (players first,
// then officials, both in roster order) plus copies of the goal and shot
// ledgers. This is the complete contract with the reporting layer.
func (e *Engine) ExportRecords() (entities []EntityRecord, goals, shots []LedgerEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	ids := make([]string, 0, len(s.PlayerIDs)+len(s.OfficialIDs))
	ids = append(ids, s.PlayerIDs...)
	ids = append(ids, s.OfficialIDs...)

	entities = make([]EntityRecord, 0, len(ids))
	for _, id := range ids {
		ent := s.Entities[id]
		rec := EntityRecord{
			ID:               ent.ID,
			Official:         ent.IsOfficial,
			Number:           ent.Number,
			Name:             ent.Name,
			Position:         ent.Position,
			InField:          ent.InField,
			Yellow:           ent.Yellow,
			TwoTotal:         ent.TwoTotal,
			TwoActiveSeconds: int(ent.TwoActive),
			Red:              ent.Red,
			Disqualified:     ent.Disqualified,
			TechFaults:       ent.TechFaults,
			BenchSeconds:     int(s.ForcedBench[id]),
		}
		if !ent.IsOfficial {
			rec.SecondsPlayed = ent.TimePlayed
		}
		entities = append(entities, rec)
	}

	goals = append([]LedgerEntry(nil), s.Goals...)
	shots = append([]LedgerEntry(nil), s.Shots...)
	return entities, goals, shots
}

// Score returns the per-half score table.
func (e *Engine) Score() ScoreSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	return ScoreSummary{
		ForFirst:      s.ScoreFor[1],
		ForSecond:     s.ScoreFor[2],
		ForTotal:      s.ScoreFor[1] + s.ScoreFor[2],
		AgainstFirst:  s.ScoreAgainst[1],
		AgainstSecond: s.ScoreAgainst[2],
		AgainstTotal:  s.ScoreAgainst[1] + s.ScoreAgainst[2],
	}
}

// Suffered tallies conceded goals and suffered saved/missed shots per
// half from the ledger.
func (e *Engine) Suffered() SufferedSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sufferedLocked()
}

// Timeline returns a copy of the match timeline.
func (e *Engine) Timeline() []TimelineEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]TimelineEvent(nil), e.state.Timeline...)
}

package match

import "time"

// Roster is the already-validated roster handed to the engine at match
// init. Parsing spreadsheets/files is someone else's job (internal/roster).
type Roster struct {
	TeamA string
	TeamB string
	Date  string
	Place string

	Players   []RosterPlayer
	Officials []RosterOfficial
}

// RosterPlayer is one row of the athlete sheet.
type RosterPlayer struct {
	Number   int
	Name     string
	Position string
}

// RosterOfficial is one row of the officials sheet.
type RosterOfficial struct {
	Name string
	Role string
}

// LedgerKind distinguishes the two ledger record families.
type LedgerKind string

const (
	LedgerGoal LedgerKind = "goal"
	LedgerShot LedgerKind = "shot"
)

// LedgerEntry is one append-only record of the event ledger. Goals and
// shots share the shape; Outcome is set only for shots.
type LedgerEntry struct {
	EntityID string     `json:"entityId"`
	Kind     LedgerKind `json:"kind"`
	ShotType string     `json:"shotType"`
	Zone     *int       `json:"zone,omitempty"`
	Outcome  string     `json:"outcome,omitempty"` // saved | missed
	Half     int        `json:"half"`
	Conceded bool       `json:"conceded"`
	Elapsed  int        `json:"elapsed"` // match seconds at registration
}

// TimelineEvent is a free-text entry on the match timeline (achievements
// and similar color commentary for the summary tab).
type TimelineEvent struct {
	Elapsed int    `json:"elapsed"`
	Text    string `json:"text"`
}

// FieldStatus is the derived numerical situation of the team.
type FieldStatus string

const (
	StatusEquality    FieldStatus = "equality"
	StatusShorthanded FieldStatus = "shorthanded"
	StatusSevenSix    FieldStatus = "7x6" // 7 on field, none of them a goalkeeper
)

// MatchState is the complete mutable state of one match session. It is
// owned by the Engine and mutated only through engine operations; there
// are no ambient globals.
type MatchState struct {
	TeamA string
	TeamB string
	Date  string
	Place string

	Entities    map[string]*Entity
	PlayerIDs   []string // roster order, players
	OfficialIDs []string // roster order, officials

	// Clock. StartInstant is the wall-clock instant corresponding to the
	// stored Elapsed while Running; zero when unset.
	Running         bool
	StartInstant    time.Time
	Elapsed         float64
	Half            int
	HalfLength      float64
	LastMinuteAlert bool

	OnField map[string]bool
	Passive bool

	// Team-level penalty countdowns, one 120s entry per team sanction.
	// Insertion order preserved; entries are dropped once they hit zero.
	TeamPenalties []float64

	// Collective sanction counters.
	TeamYellowTotal      int // athletes, max 3
	OfficialsYellowTotal int // officials, max 1 shared
	OfficialsTwoTotal    int // officials, max 1 shared

	// Forced-bench blocks: entity id -> remaining seconds.
	ForcedBench map[string]float64

	// Scores indexed by half (1, 2).
	ScoreFor     [3]int
	ScoreAgainst [3]int

	Goals    []LedgerEntry
	Shots    []LedgerEntry
	Timeline []TimelineEvent
}

func newMatchState(r Roster, halfLength float64) *MatchState {
	s := &MatchState{
		TeamA:       r.TeamA,
		TeamB:       r.TeamB,
		Date:        r.Date,
		Place:       r.Place,
		Entities:    make(map[string]*Entity),
		OnField:     make(map[string]bool),
		ForcedBench: make(map[string]float64),
		Half:        1,
		HalfLength:  halfLength,
	}
	for _, p := range r.Players {
		e := newPlayer(p.Number, p.Name, p.Position)
		s.Entities[e.ID] = e
		s.PlayerIDs = append(s.PlayerIDs, e.ID)
	}
	for _, o := range r.Officials {
		e := newOfficial(o.Name, o.Role)
		s.Entities[e.ID] = e
		s.OfficialIDs = append(s.OfficialIDs, e.ID)
	}
	return s
}

// FieldStatus derives the current numerical situation: any running
// suspension or team penalty means shorthanded; 7 fielded players with
// no goalkeeper among them is the 7x6 setup.
func (s *MatchState) FieldStatus() FieldStatus {
	if len(s.OnField) == 7 {
		anyGK := false
		for id := range s.OnField {
			if e := s.Entities[id]; e != nil && e.IsGoalkeeper() {
				anyGK = true
				break
			}
		}
		if !anyGK {
			return StatusSevenSix
		}
	}
	if AllowedOnField(s) < 7 {
		return StatusShorthanded
	}
	return StatusEquality
}

// fieldPlayers returns the ids of non-official entities currently on the
// field, in roster order.
func (s *MatchState) fieldPlayers() []string {
	var out []string
	for _, id := range s.PlayerIDs {
		if s.OnField[id] {
			out = append(out, id)
		}
	}
	return out
}

// Remaining returns the seconds left in the current half.
func (s *MatchState) Remaining() float64 {
	if rem := s.HalfLength - s.Elapsed; rem > 0 {
		return rem
	}
	return 0
}

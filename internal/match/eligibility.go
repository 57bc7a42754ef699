package match

// Shot types as they appear on the scorekeeper's board. The labels are
// the club's own vocabulary and double as stable identifiers in exports.
const (
	ShotNineMeters   = "9m"
	ShotSixMeters    = "6m"
	ShotBreakthrough = "Penetração"
	ShotFirstWave    = "1 Vaga"
	ShotSecondWave   = "2 Vaga"
	ShotThirdWave    = "3 Vaga"
	ShotEmptyGoal    = "Baliza Aberta"
	ShotSevenMeters  = "7m"
	ShotPivot        = "Pivot"
	ShotWing         = "Ponta"
	ShotKeeperGoal   = "Golo GR"
)

// GoalChoices lists the shot types offered when registering a goal or
// shot, in board order.
var GoalChoices = []string{
	ShotNineMeters, ShotSixMeters, ShotBreakthrough,
	ShotFirstWave, ShotSecondWave, ShotThirdWave,
	ShotEmptyGoal, ShotSevenMeters, ShotPivot, ShotWing,
}

// Shot outcomes for RegisterShot.
const (
	OutcomeSaved  = "saved"
	OutcomeMissed = "missed"
)

// zoneSpec encodes the zone compatibility of a shot type: an explicit
// set, every zone, or no zone at all (the caller must not prompt).
type zoneSpec struct {
	all   bool
	none  bool
	zones []int
}

var zoneCompat = map[string]zoneSpec{
	ShotWing:         {zones: []int{1, 5}},
	ShotPivot:        {zones: []int{2, 3, 4}},
	ShotBreakthrough: {zones: []int{2, 3, 4}},
	ShotSixMeters:    {zones: []int{2, 3, 4}},
	ShotNineMeters:   {zones: []int{6, 7, 8}},
	ShotEmptyGoal:    {none: true},
	ShotSevenMeters:  {none: true},
	ShotKeeperGoal:   {none: true},
	ShotFirstWave:    {all: true},
	ShotSecondWave:   {all: true},
	ShotThirdWave:    {all: true},
}

// AllowedZones returns the court zones (1..8) compatible with a shot
// type. An empty map means the shot type carries no zone and the caller
// must register it with a nil zone. Unknown types allow every zone.
func AllowedZones(shotType string) map[int]bool {
	spec, ok := zoneCompat[shotType]
	if !ok {
		spec = zoneSpec{all: true}
	}
	out := make(map[int]bool)
	switch {
	case spec.none:
	case spec.all:
		for z := 1; z <= 8; z++ {
			out[z] = true
		}
	default:
		for _, z := range spec.zones {
			out[z] = true
		}
	}
	return out
}

// AllowedOnField computes the dynamic field capacity: 7 minus every
// active numerical disadvantage (player suspensions still counting down
// plus team penalties), floored at 3.
func AllowedOnField(s *MatchState) int {
	active := 0
	for _, e := range s.Entities {
		if !e.IsOfficial && e.TwoActive > 0 {
			active++
		}
	}
	for _, t := range s.TeamPenalties {
		if t > 0 {
			active++
		}
	}
	if n := 7 - active; n > 3 {
		return n
	}
	return 3
}

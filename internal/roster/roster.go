// Package roster loads the team sheet from a YAML file and turns it
// into the engine's roster input. The file is written once before the
// match by whoever manages the squad; the engine never touches it again.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"courtside/internal/match"
)

// File mirrors the on-disk YAML layout.
type File struct {
	Team struct {
		Home string `yaml:"home"`
		Away string `yaml:"away"`
	} `yaml:"team"`
	Date  string `yaml:"date"`
	Place string `yaml:"place"`

	Players []struct {
		Number   int    `yaml:"number"`
		Name     string `yaml:"name"`
		Position string `yaml:"position"`
	} `yaml:"players"`

	Officials []struct {
		Name string `yaml:"name"`
		Role string `yaml:"role"`
	} `yaml:"officials"`
}

// Load reads and validates a roster file.
func Load(path string) (match.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return match.Roster{}, fmt.Errorf("reading roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML roster bytes and validates the result.
func Parse(data []byte) (match.Roster, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return match.Roster{}, fmt.Errorf("parsing roster: %w", err)
	}

	r := match.Roster{
		TeamA: f.Team.Home,
		TeamB: f.Team.Away,
		Date:  f.Date,
		Place: f.Place,
	}
	for _, p := range f.Players {
		r.Players = append(r.Players, match.RosterPlayer{
			Number: p.Number, Name: p.Name, Position: p.Position,
		})
	}
	for _, o := range f.Officials {
		r.Officials = append(r.Officials, match.RosterOfficial{
			Name: o.Name, Role: o.Role,
		})
	}

	if err := validate(r); err != nil {
		return match.Roster{}, err
	}
	return r, nil
}

func validate(r match.Roster) error {
	if r.TeamA == "" {
		return fmt.Errorf("roster: team.home is required")
	}
	if len(r.Players) == 0 {
		return fmt.Errorf("roster: at least one player is required")
	}

	seen := make(map[int]string, len(r.Players))
	for _, p := range r.Players {
		if p.Name == "" {
			return fmt.Errorf("roster: player number %d has no name", p.Number)
		}
		if p.Number <= 0 {
			return fmt.Errorf("roster: player %q needs a positive shirt number", p.Name)
		}
		if prev, dup := seen[p.Number]; dup {
			return fmt.Errorf("roster: shirt number %d used by both %q and %q", p.Number, prev, p.Name)
		}
		seen[p.Number] = p.Name
	}
	for _, o := range r.Officials {
		if o.Name == "" {
			return fmt.Errorf("roster: official with empty name")
		}
	}
	return nil
}

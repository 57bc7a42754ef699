// Package report turns the engine's export contract into files the
// club actually circulates after a match: a CSV per sheet and a single
// JSON document with everything.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"courtside/internal/match"
)

// Document is the full post-match report as one JSON payload.
type Document struct {
	TeamA    string                `json:"teamA"`
	TeamB    string                `json:"teamB"`
	Date     string                `json:"date"`
	Place    string                `json:"place"`
	Score    match.ScoreSummary    `json:"score"`
	Suffered match.SufferedSummary `json:"suffered"`
	Entities []match.EntityRecord  `json:"entities"`
	Goals    []match.LedgerEntry   `json:"goals"`
	Shots    []match.LedgerEntry   `json:"shots"`
	Timeline []match.TimelineEvent `json:"timeline"`
}

// Source is the slice of the engine the report needs.
type Source interface {
	View() match.StateView
	Score() match.ScoreSummary
	Suffered() match.SufferedSummary
	Timeline() []match.TimelineEvent
	ExportRecords() ([]match.EntityRecord, []match.LedgerEntry, []match.LedgerEntry)
}

// Build assembles the report document from a live engine.
func Build(e Source) Document {
	entities, goals, shots := e.ExportRecords()
	v := e.View()
	return Document{
		TeamA:    v.TeamA,
		TeamB:    v.TeamB,
		Date:     v.Date,
		Place:    v.Place,
		Score:    e.Score(),
		Suffered: e.Suffered(),
		Entities: entities,
		Goals:    goals,
		Shots:    shots,
		Timeline: e.Timeline(),
	}
}

// WriteJSON renders the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var entityHeader = []string{
	"number", "name", "position", "official", "seconds_played",
	"yellow", "two_total", "two_active_s", "red", "disqualified",
	"tech_faults", "bench_s",
}

// WriteEntitiesCSV renders the per-entity sheet, players first then
// officials, matching the order of the export contract.
func WriteEntitiesCSV(w io.Writer, entities []match.EntityRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entityHeader); err != nil {
		return err
	}
	for _, r := range entities {
		row := []string{
			strconv.Itoa(r.Number),
			r.Name,
			r.Position,
			strconv.FormatBool(r.Official),
			fmt.Sprintf("%.0f", r.SecondsPlayed),
			strconv.Itoa(r.Yellow),
			strconv.Itoa(r.TwoTotal),
			strconv.Itoa(r.TwoActiveSeconds),
			strconv.Itoa(r.Red),
			strconv.FormatBool(r.Disqualified),
			strconv.Itoa(r.TechFaults),
			strconv.Itoa(r.BenchSeconds),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var ledgerHeader = []string{
	"kind", "entity_id", "shot_type", "zone", "outcome", "half",
	"conceded", "elapsed_s",
}

// WriteLedgerCSV renders goal and shot entries into one sheet.
func WriteLedgerCSV(w io.Writer, entries []match.LedgerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, en := range entries {
		zone := ""
		if en.Zone != nil {
			zone = strconv.Itoa(*en.Zone)
		}
		row := []string{
			string(en.Kind),
			en.EntityID,
			en.ShotType,
			zone,
			en.Outcome,
			strconv.Itoa(en.Half),
			strconv.FormatBool(en.Conceded),
			strconv.Itoa(en.Elapsed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

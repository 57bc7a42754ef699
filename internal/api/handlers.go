package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"courtside/internal/match"
	"courtside/internal/report"
)

// Handler methods for routerHandlers. These serve both the standalone
// router (for tests) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.View())
}

func (h *routerHandlers) handleGetScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Score())
}

func (h *routerHandlers) handleGetSuffered(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Suffered())
}

func (h *routerHandlers) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Timeline())
}

func (h *routerHandlers) handleClockStart(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.StartClock(); err != nil {
		RecordAction("clock_start", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("clock_start", true)
	writeJSON(w, map[string]bool{"running": true})
}

func (h *routerHandlers) handleClockPause(w http.ResponseWriter, r *http.Request) {
	h.engine.PauseClock()
	RecordAction("clock_pause", true)
	writeJSON(w, map[string]bool{"running": false})
}

type entityRequest struct {
	EntityID string `json:"entityId"`
}

func decodeEntityID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req entityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return "", false
	}
	if req.EntityID == "" {
		writeError(w, "entityId is required", http.StatusBadRequest)
		return "", false
	}
	return req.EntityID, true
}

func (h *routerHandlers) handleYellow(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	if err := h.engine.GiveYellow(id); err != nil {
		RecordAction("yellow", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("yellow", true)
	writeJSON(w, map[string]bool{"applied": true})
}

func (h *routerHandlers) handleTwoMinutes(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	req, err := h.engine.GiveTwoMinutes(id)
	if err != nil {
		RecordAction("two_minutes", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("two_minutes", true)
	writeJSON(w, map[string]interface{}{
		"applied":   true,
		"forcedSub": req,
	})
}

func (h *routerHandlers) handleRed(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	req, err := h.engine.GiveRed(id)
	if err != nil {
		RecordAction("red", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("red", true)
	writeJSON(w, map[string]interface{}{
		"applied":   true,
		"forcedSub": req,
	})
}

func (h *routerHandlers) handleFieldToggle(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	if err := h.engine.ToggleField(id); err != nil {
		RecordAction("field_toggle", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("field_toggle", true)
	v := h.engine.View()
	UpdateOnFieldCount(v.OnFieldCount)
	writeJSON(w, map[string]interface{}{
		"onFieldCount":   v.OnFieldCount,
		"allowedOnField": v.AllowedOnField,
	})
}

func (h *routerHandlers) handleForcedSubResolve(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	if err := h.engine.ResolveForcedSubstitution(id); err != nil {
		RecordAction("forced_sub", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("forced_sub", true)
	writeJSON(w, map[string]bool{"resolved": true})
}

type shotRequest struct {
	EntityID string `json:"entityId"`
	ShotType string `json:"shotType"`
	Zone     *int   `json:"zone"`
	Outcome  string `json:"outcome"` // shots only
	Conceded bool   `json:"conceded"`
}

func (h *routerHandlers) handleGoal(w http.ResponseWriter, r *http.Request) {
	var req shotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.engine.RegisterGoal(req.EntityID, req.ShotType, req.Zone, req.Conceded); err != nil {
		RecordAction("goal", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("goal", true)
	writeJSON(w, h.engine.Score())
}

func (h *routerHandlers) handleShot(w http.ResponseWriter, r *http.Request) {
	var req shotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.engine.RegisterShot(req.EntityID, req.Outcome, req.ShotType, req.Zone, req.Conceded); err != nil {
		RecordAction("shot", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("shot", true)
	writeJSON(w, map[string]bool{"recorded": true})
}

func (h *routerHandlers) handleTechFault(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeEntityID(w, r)
	if !ok {
		return
	}
	if err := h.engine.AddTechnicalFault(id); err != nil {
		RecordAction("tech_fault", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("tech_fault", true)
	writeJSON(w, map[string]bool{"recorded": true})
}

func (h *routerHandlers) handleAchievement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntityID string `json:"entityId"`
		Label    string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Label == "" {
		writeError(w, "label is required", http.StatusBadRequest)
		return
	}
	if err := h.engine.AddAchievement(req.EntityID, req.Label); err != nil {
		RecordAction("achievement", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("achievement", true)
	writeJSON(w, map[string]bool{"recorded": true})
}

func (h *routerHandlers) handlePassive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.engine.SetPassive(req.Active)
	writeJSON(w, map[string]bool{"passive": req.Active})
}

func (h *routerHandlers) handleUndo(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Undo(); err != nil {
		RecordAction("undo", false)
		writeEngineError(w, err)
		return
	}
	RecordAction("undo", true)
	writeJSON(w, h.engine.View())
}

func (h *routerHandlers) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	doc := report.Build(h.engine)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="match.json"`)
	if err := report.WriteJSON(w, doc); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *routerHandlers) handleExportEntitiesCSV(w http.ResponseWriter, r *http.Request) {
	entities, _, _ := h.engine.ExportRecords()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="entities.csv"`)
	if err := report.WriteEntitiesCSV(w, entities); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *routerHandlers) handleExportLedgerCSV(w http.ResponseWriter, r *http.Request) {
	_, goals, shots := h.engine.ExportRecords()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	if err := report.WriteLedgerCSV(w, append(goals, shots...)); err != nil {
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeEngineError maps engine errors onto HTTP statuses: unknown ids
// are 404, rule rejections 422, state preconditions 409.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, match.ErrUnknownEntity):
		writeError(w, err.Error(), http.StatusNotFound)
	case match.IsValidation(err):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	case match.IsState(err):
		writeError(w, err.Error(), http.StatusConflict)
	default:
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

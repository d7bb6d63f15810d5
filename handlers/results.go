// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/food-vote/cliparse"
	"github.com/danielhkuo/food-vote/middleware"
	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/phase"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /rooms/{id}/results
// Computes standings from the current ballots. Nothing is persisted: a
// duplicated maximum is reported as a tie, zero ballots as no winner.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	room, err := roomByID(h.db, roomID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Room not found")
		return
	}
	if err != nil {
		slog.Error("failed to query room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	votes, err := h.votedSubmissionIDs(roomID)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	menus, err := h.menuLabels(roomID)
	if err != nil {
		slog.Error("failed to query submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ranked := phase.Rank(phase.Tally(votes))
	leaders := phase.Leaders(ranked)

	standings := make([]models.Standing, len(ranked))
	for i, c := range ranked {
		standings[i] = models.Standing{
			SubmissionID: c.SubmissionID,
			Menu:         menus[c.SubmissionID],
			Votes:        c.Votes,
		}
	}

	response := models.ResultsResponse{
		Phase:     room.Phase,
		Standings: standings,
	}

	switch len(leaders) {
	case 0:
		// No ballots yet; no winner to report
	case 1:
		response.Winner = &standings[0]
	default:
		response.Tie = true
		response.TiedWith = leaders
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// votedSubmissionIDs returns one element per ballot in the room.
func (h *ResultsHandler) votedSubmissionIDs(roomID string) ([]string, error) {
	rows, err := h.db.Query(`
		SELECT submission_id FROM vote WHERE room_id = $1
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// menuLabels retrieves menu text per submission for the standings view.
func (h *ResultsHandler) menuLabels(roomID string) (map[string]string, error) {
	rows, err := h.db.Query(`
		SELECT id, menu FROM submission WHERE room_id = $1
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := make(map[string]string)
	for rows.Next() {
		var id, menu string
		if err := rows.Scan(&id, &menu); err != nil {
			return nil, err
		}
		labels[id] = menu
	}

	return labels, rows.Err()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/food-vote/cliparse"
	"github.com/danielhkuo/food-vote/middleware"
	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/realtime"
)

type SubmissionHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	broker *realtime.Broker
}

func NewSubmissionHandler(db *sql.DB, cfg cliparse.Config, broker *realtime.Broker) *SubmissionHandler {
	return &SubmissionHandler{db: db, cfg: cfg, broker: broker}
}

// SubmitMenu handles POST /rooms/{id}/submissions
func (h *SubmissionHandler) SubmitMenu(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var req models.SubmitMenuRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Nickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}
	if strings.TrimSpace(req.Menu) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "menu is required")
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

	if !room.AllowSubmissions {
		middleware.ErrorResponse(w, http.StatusForbidden, "Submissions are closed")
		return
	}

	submissionID := uuid.NewString()
	now := time.Now()

	_, err = h.db.Exec(`
		INSERT INTO submission (id, room_id, nickname, menu, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, submissionID, roomID, req.Nickname, req.Menu, now)

	if err != nil {
		slog.Error("failed to insert submission", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit menu")
		return
	}

	// Submitting also marks the contributor as a participant
	_, err = h.db.Exec(`
		INSERT INTO participant (room_id, nickname, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, nickname) DO NOTHING
	`, roomID, req.Nickname, now)

	if err != nil {
		slog.Error("failed to insert participant", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit menu")
		return
	}

	slog.Info("menu submitted", "room_id", roomID, "submission_id", submissionID, "nickname", req.Nickname)
	h.broker.Publish(roomID, realtime.Event{Name: realtime.EventSubmission, Data: req.Menu})

	// Threshold re-check; a failure here leaves the submission recorded
	// and the next intake event catches the transition up
	if err := evaluateAfterSubmission(h.db, h.broker, room); err != nil {
		slog.Error("failed to evaluate submission threshold", "error", err, "room_id", roomID)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.OKResponse{OK: true})
}

// ListSubmissions handles GET /rooms/{id}/submissions
// Returns submissions newest first.
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, nickname, menu
		FROM submission
		WHERE room_id = $1
		ORDER BY created_at DESC, id DESC
	`, roomID)

	if err != nil {
		slog.Error("failed to query submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	submissions := []models.SubmissionItem{}
	for rows.Next() {
		var item models.SubmissionItem
		if err := rows.Scan(&item.ID, &item.Nickname, &item.Menu); err != nil {
			slog.Error("failed to scan submission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		submissions = append(submissions, item)
	}

	middleware.JSONResponse(w, http.StatusOK, submissions)
}

// DeleteSubmission handles DELETE /submissions/{id}
// Unconditional delete by id; the host UI is the only caller.
func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := r.PathValue("id")
	if submissionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "submission_id is required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM submission WHERE id = $1`, submissionID)
	if err != nil {
		slog.Error("failed to delete submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete submission")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete submission")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}

	slog.Info("submission deleted", "submission_id", submissionID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

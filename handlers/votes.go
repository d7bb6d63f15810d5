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

type VoteHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	broker *realtime.Broker
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config, broker *realtime.Broker) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg, broker: broker}
}

// isDuplicateKey recognizes unique constraint violations from both
// supported drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// CastVote handles POST /rooms/{id}/votes
// One ballot per (room, nickname); a second attempt fails regardless of
// the chosen submission.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Nickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}
	if strings.TrimSpace(req.SubmissionID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "submission_id is required")
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

	// Best-effort pre-check; the UNIQUE constraint on (room_id, nickname)
	// backstops a race between two requests from the same voter
	var exists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE room_id = $1 AND nickname = $2
		)
	`, roomID, req.Nickname).Scan(&exists)

	if err != nil {
		slog.Error("failed to check existing vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if exists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Already voted")
		return
	}

	voteID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO vote (id, room_id, nickname, submission_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, roomID, req.Nickname, req.SubmissionID, time.Now())

	if err != nil {
		if isDuplicateKey(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Already voted")
			return
		}
		slog.Error("failed to insert vote", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "room_id", roomID, "nickname", req.Nickname, "submission_id", req.SubmissionID)
	h.broker.Publish(roomID, realtime.Event{Name: realtime.EventVote, Data: req.SubmissionID})

	if err := evaluateAfterVote(h.db, h.broker, room); err != nil {
		slog.Error("failed to evaluate vote threshold", "error", err, "room_id", roomID)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.OKResponse{OK: true})
}

// GetVoteCounts handles GET /rooms/{id}/votes/counts
// Returns submission_id → ballot count, visible in every phase.
func (h *VoteHandler) GetVoteCounts(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT submission_id, COUNT(*)
		FROM vote
		WHERE room_id = $1
		GROUP BY submission_id
	`, roomID)

	if err != nil {
		slog.Error("failed to query vote counts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var submissionID string
		var count int
		if err := rows.Scan(&submissionID, &count); err != nil {
			slog.Error("failed to scan vote count", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		counts[submissionID] = count
	}

	middleware.JSONResponse(w, http.StatusOK, counts)
}

// GetVoteRecords handles GET /rooms/{id}/votes
// Returns who voted for what, in ballot order.
func (h *VoteHandler) GetVoteRecords(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT nickname, submission_id
		FROM vote
		WHERE room_id = $1
		ORDER BY created_at, id
	`, roomID)

	if err != nil {
		slog.Error("failed to query vote records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var rec models.VoteRecord
		if err := rows.Scan(&rec.Nickname, &rec.SubmissionID); err != nil {
			slog.Error("failed to scan vote record", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		records = append(records, rec)
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/danielhkuo/food-vote/auth"
	"github.com/danielhkuo/food-vote/cliparse"
	"github.com/danielhkuo/food-vote/middleware"
	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/phase"
	"github.com/danielhkuo/food-vote/realtime"
)

type RoomHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	broker *realtime.Broker
}

func NewRoomHandler(db *sql.DB, cfg cliparse.Config, broker *realtime.Broker) *RoomHandler {
	return &RoomHandler{db: db, cfg: cfg, broker: broker}
}

// isHost reports whether a requester nickname matches the room's host.
// The comparison folds names the same way distinct counting does.
func isHost(room models.Room, nickname string) bool {
	return phase.Fold(nickname) == phase.Fold(room.HostNickname)
}

func (h *RoomHandler) joinURL(roomID string) string {
	return h.cfg.BaseURL + "/room/" + roomID
}

// CreateRoom handles POST /rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if strings.TrimSpace(req.HostNickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "host_nickname is required")
		return
	}

	roomID := uuid.NewString()
	shareSlug := auth.GenerateShareSlug(roomID, h.cfg.SlugSalt)
	now := time.Now()

	// New rooms wait for the host to open submissions
	_, err := h.db.Exec(`
		INSERT INTO room (id, title, host_nickname, phase, allow_submissions, share_slug, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
	`, roomID, req.Title, req.HostNickname, models.PhaseWaiting, shareSlug, now)

	if err != nil {
		slog.Error("failed to insert room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	// The host is the first participant
	_, err = h.db.Exec(`
		INSERT INTO participant (room_id, nickname, joined_at)
		VALUES ($1, $2, $3)
	`, roomID, req.HostNickname, now)

	if err != nil {
		slog.Error("failed to insert host participant", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create room")
		return
	}

	slog.Info("room created", "room_id", roomID, "host", req.HostNickname)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRoomResponse{
		RoomID:  roomID,
		JoinURL: h.joinURL(roomID),
	})
}

// GetRoom handles GET /rooms/{id}
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT nickname FROM participant WHERE room_id = $1 ORDER BY joined_at, nickname
	`, roomID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	participants := []string{}
	for rows.Next() {
		var nickname string
		if err := rows.Scan(&nickname); err != nil {
			slog.Error("failed to scan participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		participants = append(participants, nickname)
	}

	detail := models.RoomDetail{
		Room:         room,
		Participants: participants,
	}
	if room.Deadline != nil {
		detail.DeadlineIn = humanize.Time(*room.Deadline)
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// EditTitle handles PATCH /rooms/{id}/title
// Host only, and only while submissions are open.
func (h *RoomHandler) EditTitle(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var req models.EditTitleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.NewTitle) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "new_title is required")
		return
	}
	if strings.TrimSpace(req.Nickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
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

	if !isHost(room, req.Nickname) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the host can edit the title")
		return
	}

	if room.Phase != models.PhaseSubmitting {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Title can only be edited while submissions are open")
		return
	}

	// Guard the phase again in the write: the room may have advanced
	// between the read above and this update
	res, err := h.db.Exec(`
		UPDATE room SET title = $1 WHERE id = $2 AND phase = $3
	`, req.NewTitle, roomID, models.PhaseSubmitting)
	if err != nil {
		slog.Error("failed to update title", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to edit title")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to edit title")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Title can only be edited while submissions are open")
		return
	}

	slog.Info("room title edited", "room_id", roomID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// MarkReady handles POST /rooms/{id}/ready
// Adds the nickname to the room's participant set. Re-marking is a no-op.
func (h *RoomHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var req models.ReadyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Nickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}

	if _, err := roomByID(h.db, roomID); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "Room not found")
			return
		}
		slog.Error("failed to query room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO participant (room_id, nickname, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, nickname) DO NOTHING
	`, roomID, req.Nickname, time.Now())

	if err != nil {
		slog.Error("failed to insert participant", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark ready")
		return
	}

	slog.Info("participant ready", "room_id", roomID, "nickname", req.Nickname)
	h.broker.Publish(roomID, realtime.Event{Name: realtime.EventParticipant, Data: req.Nickname})

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// StartVoting handles POST /rooms/{id}/start
// Host action that opens submissions and snapshots the participant
// count as the auto-advance denominator.
func (h *RoomHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var req models.StartVotingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Nickname) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
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

	if !isHost(room, req.Nickname) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the host can start voting")
		return
	}

	count, err := participantCount(h.db, roomID)
	if err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Conditional write: only a waiting room can open submissions, so a
	// double-start cannot overwrite the snapshot
	res, err := h.db.Exec(`
		UPDATE room
		SET phase = $1, allow_submissions = TRUE, expected_participant_count = $2
		WHERE id = $3 AND phase = $4
	`, models.PhaseSubmitting, count, roomID, models.PhaseWaiting)
	if err != nil {
		slog.Error("failed to start voting", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start voting")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start voting")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has already been started")
		return
	}

	slog.Info("submissions opened", "room_id", roomID, "expected_participants", count)
	h.broker.Publish(roomID, realtime.Event{Name: realtime.EventPhase, Data: models.PhaseSubmitting})

	middleware.JSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// GetRoomQR handles GET /rooms/{id}/qr
// Renders the room's join URL as a PNG for scan-to-join.
func (h *RoomHandler) GetRoomQR(w http.ResponseWriter, r *http.Request) {
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

	png, err := qrcode.Encode(h.joinURL(room.ID), qrcode.Medium, 256)
	if err != nil {
		slog.Error("failed to encode QR code", "error", err, "room_id", roomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write QR response", "error", err)
	}
}

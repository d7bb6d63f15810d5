// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/food-vote/auth"
	"github.com/danielhkuo/food-vote/cliparse"
	"github.com/danielhkuo/food-vote/db"
	"github.com/danielhkuo/food-vote/models"
)

// SetupTestDB creates an in-memory SQLite database with the full schema.
// Each call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3344,
		DatabaseType: "sqlite",
		DatabaseURL:  ":memory:",
		SlugSalt:     "test-slug-salt",
		BaseURL:      "http://localhost:3344",
	}
}

// CreateTestRoom creates a room in the given phase and returns its ID.
// The host is registered as the first participant. For rooms past the
// waiting phase, allow_submissions is open and expected holds the
// participant-count snapshot (pass nil for no auto-advance target).
func CreateTestRoom(t *testing.T, conn *sql.DB, cfg cliparse.Config, phase, host string, expected *int) string {
	t.Helper()

	roomID := uuid.NewString()
	slug := auth.GenerateShareSlug(roomID, cfg.SlugSalt)
	now := time.Now()

	allowSubmissions := phase == models.PhaseSubmitting

	_, err := conn.Exec(`
		INSERT INTO room (id, title, host_nickname, phase, allow_submissions, expected_participant_count, share_slug, created_at)
		VALUES ($1, 'Test Room', $2, $3, $4, $5, $6, $7)
	`, roomID, host, phase, allowSubmissions, expected, slug, now)
	if err != nil {
		t.Fatalf("Failed to create test room: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO participant (room_id, nickname, joined_at)
		VALUES ($1, $2, $3)
	`, roomID, host, now)
	if err != nil {
		t.Fatalf("Failed to create host participant: %v", err)
	}

	return roomID
}

// AddTestParticipant marks a nickname ready in a room
func AddTestParticipant(t *testing.T, conn *sql.DB, roomID, nickname string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO participant (room_id, nickname, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id, nickname) DO NOTHING
	`, roomID, nickname, time.Now())
	if err != nil {
		t.Fatalf("Failed to add test participant: %v", err)
	}
}

// AddTestSubmission inserts a menu submission and returns its ID
func AddTestSubmission(t *testing.T, conn *sql.DB, roomID, nickname, menu string) string {
	t.Helper()

	submissionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO submission (id, room_id, nickname, menu, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, submissionID, roomID, nickname, menu, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}

	return submissionID
}

// CastTestVote inserts a ballot for a voter
func CastTestVote(t *testing.T, conn *sql.DB, roomID, nickname, submissionID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, room_id, nickname, submission_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), roomID, nickname, submissionID, time.Now())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req := httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		return req
	}
	return httptest.NewRequest(method, path, nil)
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

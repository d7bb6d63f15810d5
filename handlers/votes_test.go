// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/realtime"
	"github.com/danielhkuo/food-vote/testutil"
)

func castVote(t *testing.T, handler *VoteHandler, roomID, nickname, submissionID string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/rooms/"+roomID+"/votes", models.CastVoteRequest{
		Nickname:     nickname,
		SubmissionID: submissionID,
	})
	req.SetPathValue("id", roomID)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)
	return w
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	subID := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")

	w := castVote(t, handler, roomID, "Bob", subID)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE room_id = $1`, roomID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 vote, got %d", count)
	}
}

func TestCastVote_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)

	tests := []struct {
		name         string
		nickname     string
		submissionID string
	}{
		{"missing nickname", "", "sub-1"},
		{"missing submission", "Bob", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := castVote(t, handler, roomID, tt.nickname, tt.submissionID)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestCastVote_RoomNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewVoteHandler(db, testutil.GetTestConfig(), realtime.NewBroker())

	w := castVote(t, handler, "missing", "Bob", "sub-1")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCastVote_DuplicateRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	sushi := testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")

	testutil.AssertStatus(t, castVote(t, handler, roomID, "Bob", pizza), http.StatusCreated)

	// A second ballot is rejected even for a different submission
	w := castVote(t, handler, roomID, "Bob", sushi)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Already voted" {
		t.Errorf("Expected 'Already voted', got '%s'", resp.Message)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE room_id = $1`, roomID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 vote after rejection, got %d", count)
	}
}

func TestCastVote_AdvancesToResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	sushi := testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")

	// Two distinct submitters; results open once both have voted
	testutil.AssertStatus(t, castVote(t, handler, roomID, "Alice", sushi), http.StatusCreated)

	room, err := roomByID(db, roomID)
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	if room.Phase != models.PhaseVoting {
		t.Fatalf("Expected room still voting after 1 of 2 ballots, got %s", room.Phase)
	}

	testutil.AssertStatus(t, castVote(t, handler, roomID, "Bob", pizza), http.StatusCreated)

	room, err = roomByID(db, roomID)
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	if room.Phase != models.PhaseResults {
		t.Errorf("Expected room in results after all submitters voted, got %s", room.Phase)
	}
}

func TestCastVote_NonSubmitterBallotsCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")

	// Carol never submitted. Her ballot alone does not close voting:
	// the threshold waits on the submitters themselves
	testutil.AssertStatus(t, castVote(t, handler, roomID, "Carol", pizza), http.StatusCreated)

	room, err := roomByID(db, roomID)
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	if room.Phase != models.PhaseVoting {
		t.Fatalf("Expected room still voting, got %s", room.Phase)
	}

	// One more distinct voter reaches the submitter count of 2
	testutil.AssertStatus(t, castVote(t, handler, roomID, "Alice", pizza), http.StatusCreated)

	room, err = roomByID(db, roomID)
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	if room.Phase != models.PhaseResults {
		t.Errorf("Expected room in results, got %s", room.Phase)
	}
}

func TestGetVoteCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	sushi := testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")

	testutil.CastTestVote(t, db, roomID, "Alice", pizza)
	testutil.CastTestVote(t, db, roomID, "Bob", pizza)
	testutil.CastTestVote(t, db, roomID, "Carol", sushi)

	req := testutil.MakeRequest("GET", "/rooms/"+roomID+"/votes/counts", nil)
	req.SetPathValue("id", roomID)
	w := httptest.NewRecorder()

	handler.GetVoteCounts(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var counts map[string]int
	testutil.AssertJSON(t, w, &counts)

	if counts[pizza] != 2 {
		t.Errorf("Expected 2 votes for pizza, got %d", counts[pizza])
	}
	if counts[sushi] != 1 {
		t.Errorf("Expected 1 vote for sushi, got %d", counts[sushi])
	}
}

func TestGetVoteRecords(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVoteHandler(db, cfg, realtime.NewBroker())

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")

	testutil.CastTestVote(t, db, roomID, "Alice", pizza)
	testutil.CastTestVote(t, db, roomID, "Bob", pizza)

	req := testutil.MakeRequest("GET", "/rooms/"+roomID+"/votes", nil)
	req.SetPathValue("id", roomID)
	w := httptest.NewRecorder()

	handler.GetVoteRecords(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var records []models.VoteRecord
	testutil.AssertJSON(t, w, &records)

	if len(records) != 2 {
		t.Fatalf("Expected 2 vote records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Nickname == "" || rec.SubmissionID != pizza {
			t.Errorf("Unexpected vote record: %+v", rec)
		}
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/testutil"
)

func getResults(t *testing.T, handler *ResultsHandler, roomID string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("GET", "/rooms/"+roomID+"/results", nil)
	req.SetPathValue("id", roomID)
	w := httptest.NewRecorder()

	handler.GetResults(w, req)
	return w
}

func TestGetResults_Winner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseResults, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	sushi := testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")

	testutil.CastTestVote(t, db, roomID, "Alice", pizza)
	testutil.CastTestVote(t, db, roomID, "Bob", pizza)
	testutil.CastTestVote(t, db, roomID, "Carol", sushi)

	w := getResults(t, handler, roomID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Phase != models.PhaseResults {
		t.Errorf("Expected phase results, got %s", resp.Phase)
	}
	if resp.Tie {
		t.Error("Expected no tie")
	}
	if resp.Winner == nil {
		t.Fatal("Expected a winner")
	}
	if resp.Winner.SubmissionID != pizza || resp.Winner.Votes != 2 || resp.Winner.Menu != "Pizza" {
		t.Errorf("Unexpected winner: %+v", resp.Winner)
	}

	if len(resp.Standings) != 2 {
		t.Fatalf("Expected 2 standings, got %d", len(resp.Standings))
	}
	if resp.Standings[0].SubmissionID != pizza || resp.Standings[1].SubmissionID != sushi {
		t.Errorf("Standings out of order: %+v", resp.Standings)
	}
}

func TestGetResults_Tie(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseResults, "Alice", nil)
	pizza := testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")
	sushi := testutil.AddTestSubmission(t, db, roomID, "Bob", "Sushi")
	tacos := testutil.AddTestSubmission(t, db, roomID, "Carol", "Tacos")

	// 2-2-1: pizza and sushi tie at the top
	testutil.CastTestVote(t, db, roomID, "Alice", pizza)
	testutil.CastTestVote(t, db, roomID, "Bob", pizza)
	testutil.CastTestVote(t, db, roomID, "Carol", sushi)
	testutil.CastTestVote(t, db, roomID, "Dave", sushi)
	testutil.CastTestVote(t, db, roomID, "Eve", tacos)

	w := getResults(t, handler, roomID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Tie {
		t.Error("Expected a tie")
	}
	if resp.Winner != nil {
		t.Errorf("Expected no winner on a tie, got %+v", resp.Winner)
	}
	if len(resp.TiedWith) != 2 {
		t.Errorf("Expected 2 tied submissions, got %v", resp.TiedWith)
	}

	tied := map[string]bool{}
	for _, id := range resp.TiedWith {
		tied[id] = true
	}
	if !tied[pizza] || !tied[sushi] {
		t.Errorf("Expected pizza and sushi tied, got %v", resp.TiedWith)
	}
}

func TestGetResults_NoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	roomID := testutil.CreateTestRoom(t, db, cfg, models.PhaseVoting, "Alice", nil)
	testutil.AddTestSubmission(t, db, roomID, "Alice", "Pizza")

	w := getResults(t, handler, roomID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Winner != nil {
		t.Errorf("Expected no winner without ballots, got %+v", resp.Winner)
	}
	if resp.Tie {
		t.Error("Expected no tie without ballots")
	}
	if len(resp.Standings) != 0 {
		t.Errorf("Expected empty standings, got %+v", resp.Standings)
	}
}

func TestGetResults_RoomNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, testutil.GetTestConfig())

	w := getResults(t, handler, "missing")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

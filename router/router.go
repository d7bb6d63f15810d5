// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/food-vote/cliparse"
	"github.com/danielhkuo/food-vote/handlers"
	"github.com/danielhkuo/food-vote/middleware"
	"github.com/danielhkuo/food-vote/realtime"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, broker *realtime.Broker) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roomHandler := handlers.NewRoomHandler(db, cfg, broker)
	submissionHandler := handlers.NewSubmissionHandler(db, cfg, broker)
	voteHandler := handlers.NewVoteHandler(db, cfg, broker)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Room management
	mux.HandleFunc("POST /rooms", middleware.WithLogging(roomHandler.CreateRoom))
	mux.HandleFunc("GET /rooms/{id}", middleware.WithLogging(roomHandler.GetRoom))
	mux.HandleFunc("PATCH /rooms/{id}/title", middleware.WithLogging(roomHandler.EditTitle))
	mux.HandleFunc("POST /rooms/{id}/ready", middleware.WithLogging(roomHandler.MarkReady))
	mux.HandleFunc("POST /rooms/{id}/start", middleware.WithLogging(roomHandler.StartVoting))
	mux.HandleFunc("GET /rooms/{id}/qr", middleware.WithLogging(roomHandler.GetRoomQR))

	// Menu submissions
	mux.HandleFunc("POST /rooms/{id}/submissions", middleware.WithLogging(submissionHandler.SubmitMenu))
	mux.HandleFunc("GET /rooms/{id}/submissions", middleware.WithLogging(submissionHandler.ListSubmissions))
	mux.HandleFunc("DELETE /submissions/{id}", middleware.WithLogging(submissionHandler.DeleteSubmission))

	// Voting
	mux.HandleFunc("POST /rooms/{id}/votes", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("GET /rooms/{id}/votes/counts", middleware.WithLogging(voteHandler.GetVoteCounts))
	mux.HandleFunc("GET /rooms/{id}/votes", middleware.WithLogging(voteHandler.GetVoteRecords))

	// Results
	mux.HandleFunc("GET /rooms/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Event stream; not wrapped in WithLogging since it holds the
	// connection open for the lifetime of the client
	mux.HandleFunc("GET /rooms/{id}/events", roomHandler.Events)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("food-vote API v1"))
	})

	return mux
}

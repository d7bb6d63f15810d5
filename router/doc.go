// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Food Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, broker)

# Endpoints

Health:

	GET /health

Room management:

	POST  /rooms             - Create room
	GET   /rooms/{id}        - Room info, participants, deadline
	PATCH /rooms/{id}/title  - Rename (host, submitting phase only)
	POST  /rooms/{id}/ready  - Join the room
	POST  /rooms/{id}/start  - Open submissions (host only)
	GET   /rooms/{id}/qr     - Join link as PNG QR code

Menu submissions:

	POST   /rooms/{id}/submissions - Submit a menu
	GET    /rooms/{id}/submissions - List submissions
	DELETE /submissions/{id}       - Remove a submission

Voting and results:

	POST /rooms/{id}/votes        - Cast a ballot
	GET  /rooms/{id}/votes/counts - Votes per submission
	GET  /rooms/{id}/votes        - Who voted for what
	GET  /rooms/{id}/results      - Standings and winner

Real-time:

	GET /rooms/{id}/events - SSE stream of room updates

# Handler Initialization

The router creates handler instances with dependency injection:

	roomHandler := handlers.NewRoomHandler(db, cfg, broker)
	submissionHandler := handlers.NewSubmissionHandler(db, cfg, broker)
	voteHandler := handlers.NewVoteHandler(db, cfg, broker)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

Mutating handlers receive the broker so they can publish room events.
*/
package router

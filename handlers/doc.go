// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Food Vote API.

# Handler Types

Each handler is a struct with database, config, and broker dependencies:

  - RoomHandler: Room lifecycle (create, read, rename, ready, start, QR, events)
  - SubmissionHandler: Menu intake and host-side removal
  - VoteHandler: Ballot casting and vote retrieval
  - ResultsHandler: Standings and winner computation

Handlers are created via constructor functions:

	roomHandler := handlers.NewRoomHandler(db, cfg, broker)

# Room Lifecycle

Rooms progress through four phases: waiting → submitting → voting → results

	POST /rooms                   → CreateRoom
	POST /rooms/{id}/ready        → MarkReady (joins the room)
	POST /rooms/{id}/start        → StartVoting (host only, opens submissions)
	POST /rooms/{id}/submissions  → SubmitMenu
	POST /rooms/{id}/votes        → CastVote

The submitting → voting and voting → results transitions are automatic.
After each submission and each ballot the handlers re-check the room's
thresholds (see transition.go) and advance the phase when the count of
distinct submitters or voters reaches the target. Transitions are applied
with a conditional UPDATE guarded on the expected prior phase, so two
concurrent requests crossing a threshold produce exactly one advance.

# Participant Identity

Participants are identified by nickname only. Nicknames are compared
case-insensitively after trimming whitespace ("Alice" and " alice " are
the same person), including the host check for host-only operations.

# Real-Time Updates

Every mutation publishes an event to the room's SSE stream:

	GET /rooms/{id}/events → Events

Clients may also poll the GET endpoints; the stream is best-effort.
*/
package handlers

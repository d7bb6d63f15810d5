// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRoomRequest: title, host_nickname
  - EditTitleRequest: new_title, nickname
  - ReadyRequest: nickname
  - StartVotingRequest: nickname
  - SubmitMenuRequest: nickname, menu
  - CastVoteRequest: nickname, submission_id

# Response Types

Types for JSON responses:

  - CreateRoomResponse: room_id, join_url
  - OKResponse / SuccessResponse: plain acknowledgements
  - ResultsResponse: standings, winner, tie
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Room: room metadata and lifecycle state
  - RoomDetail: room plus participants and a humanized deadline
  - Submission: a proposed menu tied to a contributor
  - VoteRecord: one ballot (nickname → submission)
  - Standing: per-submission vote count for results

# Constants

Phase values, in lifecycle order:

	PhaseWaiting    = "waiting"
	PhaseSubmitting = "submitting"
	PhaseVoting     = "voting"
	PhaseResults    = "results"
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Room phase constants. Phases only ever advance in this order.
const (
	PhaseWaiting    = "waiting"
	PhaseSubmitting = "submitting"
	PhaseVoting     = "voting"
	PhaseResults    = "results"
)

// Request types

type CreateRoomRequest struct {
	Title        string `json:"title"`
	HostNickname string `json:"host_nickname"`
}

type EditTitleRequest struct {
	NewTitle string `json:"new_title"`
	Nickname string `json:"nickname"`
}

type ReadyRequest struct {
	Nickname string `json:"nickname"`
}

type StartVotingRequest struct {
	Nickname string `json:"nickname"`
}

type SubmitMenuRequest struct {
	Nickname string `json:"nickname"`
	Menu     string `json:"menu"`
}

type CastVoteRequest struct {
	Nickname     string `json:"nickname"`
	SubmissionID string `json:"submission_id"`
}

// Response types

type CreateRoomResponse struct {
	RoomID  string `json:"room_id"`
	JoinURL string `json:"join_url"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// Domain types

type Room struct {
	ID                       string     `json:"id"`
	Title                    string     `json:"title"`
	HostNickname             string     `json:"host_nickname"`
	Phase                    string     `json:"phase"`
	AllowSubmissions         bool       `json:"allow_submissions"`
	ExpectedParticipantCount *int       `json:"expected_participant_count,omitempty"`
	ShareSlug                string     `json:"share_slug"`
	Deadline                 *time.Time `json:"deadline,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

type RoomDetail struct {
	Room         Room     `json:"room"`
	Participants []string `json:"participants"`
	// DeadlineIn is a human-readable rendering of the deadline
	// ("4 minutes from now"), present only while a deadline is set.
	DeadlineIn string `json:"deadline_in,omitempty"`
}

type Submission struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Nickname  string    `json:"nickname"`
	Menu      string    `json:"menu"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmissionItem is the list-view projection of a submission.
type SubmissionItem struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Menu     string `json:"menu"`
}

type VoteRecord struct {
	Nickname     string `json:"nickname"`
	SubmissionID string `json:"submission_id"`
}

// Results types

type Standing struct {
	SubmissionID string `json:"submission_id"`
	Menu         string `json:"menu"`
	Votes        int    `json:"votes"`
}

type ResultsResponse struct {
	Phase     string     `json:"phase"`
	Standings []Standing `json:"standings"`
	Winner    *Standing  `json:"winner,omitempty"`
	Tie       bool       `json:"tie"`
	TiedWith  []string   `json:"tied_with,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

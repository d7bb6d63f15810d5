// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package phase

import (
	"strings"
	"time"

	"github.com/danielhkuo/food-vote/models"
)

// VotingWindow is the advisory deadline granted when a room enters the
// voting phase. The server never forces a transition on expiry; clients
// use the deadline for countdown display only.
const VotingWindow = 5 * time.Minute

// order maps each phase to its position in the lifecycle.
var order = map[string]int{
	models.PhaseWaiting:    0,
	models.PhaseSubmitting: 1,
	models.PhaseVoting:     2,
	models.PhaseResults:    3,
}

// CanTransition reports whether moving from one phase to the next is a
// legal single forward step. Phases never skip and never regress.
func CanTransition(from, to string) bool {
	a, okA := order[from]
	b, okB := order[to]
	return okA && okB && b == a+1
}

// Fold normalizes a nickname for distinct-count purposes: surrounding
// whitespace is trimmed and the result is lowercased, so "Alice" and
// " alice " count as one contributor.
func Fold(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}

// Decision describes the outcome of evaluating a room after an intake
// event. When Advance is false the other fields are zero.
type Decision struct {
	Advance          bool
	From             string
	To               string
	Deadline         *time.Time
	CloseSubmissions bool
}

// AfterSubmission decides whether a submitting-phase room should open
// voting. The trigger is every expected participant having submitted:
// distinctSubmitters is the number of distinct folded contributor names
// recorded, and expected is the participant-count snapshot taken when
// the host opened submissions. Rooms without a snapshot never
// auto-advance.
func AfterSubmission(currentPhase string, expected *int, distinctSubmitters int, now time.Time) Decision {
	if currentPhase != models.PhaseSubmitting || expected == nil {
		return Decision{}
	}
	if distinctSubmitters < *expected {
		return Decision{}
	}

	deadline := now.Add(VotingWindow)
	return Decision{
		Advance:          true,
		From:             models.PhaseSubmitting,
		To:               models.PhaseVoting,
		Deadline:         &deadline,
		CloseSubmissions: true,
	}
}

// AfterVote decides whether a voting-phase room should reveal results.
// The denominator is the distinct submitter count, not the participant
// snapshot: results open once everyone who suggested a menu has voted.
// A room with no submissions never advances here.
func AfterVote(currentPhase string, distinctVoters, distinctSubmitters int) Decision {
	if currentPhase != models.PhaseVoting {
		return Decision{}
	}
	if distinctSubmitters == 0 || distinctVoters < distinctSubmitters {
		return Decision{}
	}

	return Decision{
		Advance: true,
		From:    models.PhaseVoting,
		To:      models.PhaseResults,
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package phase contains the room lifecycle decisions and vote tallying.

Everything here is pure: functions take a snapshot of room state plus
freshly computed aggregate counts and return a Decision. All persistence
and all count queries live with the callers in package handlers, which
apply a Decision with a conditional UPDATE guarded on the expected
pre-transition phase. Applying the same Decision twice is therefore a
no-op on the second application.

# Lifecycle

Rooms move strictly forward:

	waiting → submitting → voting → results

  - waiting → submitting: host action only (start voting); snapshots the
    participant count as the submission denominator.
  - submitting → voting: AfterSubmission, when every expected participant
    has a submission on record. Sets a 5 minute advisory deadline and
    closes submissions.
  - voting → results: AfterVote, when every distinct submitter has cast
    a ballot.

Contributor names are folded (trimmed, lowercased) before distinct
counting so formatting differences do not inflate the numerator.

# Tallying

Tally / Rank / Leaders compute the presentation-side winner: votes per
submission, descending. A duplicated maximum is a tie and Leaders
returns all tied submissions.
*/
package phase

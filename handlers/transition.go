// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/danielhkuo/food-vote/models"
	"github.com/danielhkuo/food-vote/phase"
	"github.com/danielhkuo/food-vote/realtime"
)

// roomByID loads a room snapshot. Returns sql.ErrNoRows when absent.
func roomByID(db *sql.DB, id string) (models.Room, error) {
	var room models.Room
	var expected sql.NullInt64
	var slug sql.NullString
	var deadline sql.NullTime

	err := db.QueryRow(`
		SELECT id, title, host_nickname, phase, allow_submissions,
		       expected_participant_count, share_slug, deadline, created_at
		FROM room
		WHERE id = $1
	`, id).Scan(
		&room.ID, &room.Title, &room.HostNickname, &room.Phase,
		&room.AllowSubmissions, &expected, &slug, &deadline, &room.CreatedAt,
	)
	if err != nil {
		return models.Room{}, err
	}

	if expected.Valid {
		n := int(expected.Int64)
		room.ExpectedParticipantCount = &n
	}
	if slug.Valid {
		room.ShareSlug = slug.String
	}
	if deadline.Valid {
		t := deadline.Time
		room.Deadline = &t
	}

	return room, nil
}

func participantCount(db *sql.DB, roomID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM participant WHERE room_id = $1
	`, roomID).Scan(&count)
	return count, err
}

// distinctSubmitterCount counts contributors with names folded the same
// way as phase.Fold, so "Bob" and " bob " are one submitter.
func distinctSubmitterCount(db *sql.DB, roomID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(DISTINCT LOWER(TRIM(nickname))) FROM submission WHERE room_id = $1
	`, roomID).Scan(&count)
	return count, err
}

func distinctVoterCount(db *sql.DB, roomID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(DISTINCT LOWER(TRIM(nickname))) FROM vote WHERE room_id = $1
	`, roomID).Scan(&count)
	return count, err
}

// evaluateAfterSubmission re-checks the submitting→voting threshold for
// a room after a new submission was recorded.
func evaluateAfterSubmission(db *sql.DB, broker *realtime.Broker, room models.Room) error {
	submitters, err := distinctSubmitterCount(db, room.ID)
	if err != nil {
		return err
	}

	decision := phase.AfterSubmission(room.Phase, room.ExpectedParticipantCount, submitters, time.Now())
	return applyTransition(db, broker, room.ID, decision)
}

// evaluateAfterVote re-checks the voting→results threshold for a room
// after a new ballot was recorded.
func evaluateAfterVote(db *sql.DB, broker *realtime.Broker, room models.Room) error {
	voters, err := distinctVoterCount(db, room.ID)
	if err != nil {
		return err
	}
	submitters, err := distinctSubmitterCount(db, room.ID)
	if err != nil {
		return err
	}

	decision := phase.AfterVote(room.Phase, voters, submitters)
	return applyTransition(db, broker, room.ID, decision)
}

// applyTransition writes a phase decision with a conditional UPDATE
// guarded on the expected pre-transition phase. Two intake events
// racing to apply the same decision cannot double-trigger: the loser
// matches zero rows and the room (deadline included) is untouched.
func applyTransition(db *sql.DB, broker *realtime.Broker, roomID string, d phase.Decision) error {
	if !d.Advance {
		return nil
	}

	var res sql.Result
	var err error
	if d.CloseSubmissions {
		res, err = db.Exec(`
			UPDATE room
			SET phase = $1, deadline = $2, allow_submissions = FALSE
			WHERE id = $3 AND phase = $4
		`, d.To, *d.Deadline, roomID, d.From)
	} else {
		res, err = db.Exec(`
			UPDATE room
			SET phase = $1
			WHERE id = $2 AND phase = $3
		`, d.To, roomID, d.From)
	}
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Lost the race or already past d.From; nothing to do
		return nil
	}

	slog.Info("room phase advanced", "room_id", roomID, "from", d.From, "to", d.To)
	broker.Publish(roomID, realtime.Event{Name: realtime.EventPhase, Data: d.To})
	return nil
}

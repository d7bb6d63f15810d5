// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/food-vote/cliparse"
)

// Open connects to the database named by the config. Postgres uses
// lib/pq; sqlite uses the pure-Go modernc driver so no cgo is needed.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	switch cfg.DatabaseType {
	case "postgres":
		return sql.Open("postgres", cfg.DatabaseURL)
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", cfg.DatabaseURL)
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers anyway; one pooled conn avoids
		// spurious SQLITE_BUSY under concurrent handlers
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL below is deliberately portable between postgres and sqlite:
// no NOW() defaults (timestamps are always written by the application)
// and no dialect-specific types. submission.room_id and vote.room_id
// are by-value references without FK constraints; orphaned rows are
// accepted and never satisfy any room's thresholds.
const schema = `
-- Rooms
CREATE TABLE IF NOT EXISTS room (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    host_nickname TEXT NOT NULL,
    phase TEXT NOT NULL DEFAULT 'waiting' CHECK (phase IN ('waiting', 'submitting', 'voting', 'results')),
    allow_submissions BOOLEAN NOT NULL DEFAULT FALSE,
    expected_participant_count INTEGER,
    share_slug TEXT UNIQUE,
    deadline TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_room_share_slug ON room(share_slug);
CREATE INDEX IF NOT EXISTS idx_room_phase ON room(phase);

-- Participants (the room document's nickname set, one row per member)
CREATE TABLE IF NOT EXISTS participant (
    room_id TEXT NOT NULL REFERENCES room(id) ON DELETE CASCADE,
    nickname TEXT NOT NULL,
    joined_at TIMESTAMP NOT NULL,
    PRIMARY KEY (room_id, nickname)
);

CREATE INDEX IF NOT EXISTS idx_participant_room_id ON participant(room_id);

-- Submissions
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    nickname TEXT NOT NULL,
    menu TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_room_id ON submission(room_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL,
    nickname TEXT NOT NULL,
    submission_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (room_id, nickname)
);

CREATE INDEX IF NOT EXISTS idx_vote_room_id ON vote(room_id);
`

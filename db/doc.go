// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles driver selection and database schema creation.

# Opening a Connection

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg) // "postgres" (lib/pq) or "sqlite" (modernc)

The test suite runs entirely on in-memory sqlite; production deployments
use postgres.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes.

# Tables

  - room: room metadata, phase, submission gate, deadline
  - participant: the room's nickname set (one row per member)
  - submission: menu suggestions per room
  - vote: one ballot per (room, nickname)

# Relationships

	room 1──* participant   (FK, cascade)
	room 1──* submission    (by value, no FK)
	room 1──* vote          (by value, no FK)
	submission 1──* vote    (by value, no FK)

Submissions and votes reference their room by value only: a row with an
unknown room_id is accepted and simply never counts toward any room's
thresholds.

# Placeholders

Queries use $1..$N placeholders, which lib/pq binds by number and the
sqlite driver binds by order of first appearance. Placeholders must
therefore appear in ascending order within each statement and must not
repeat.
*/
package db

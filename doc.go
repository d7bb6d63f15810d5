// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Food Vote API server.

Food Vote is a small real-time group-decision service: a host opens a
room, participants join, suggest menus, vote, and see the result. Rooms
move through a fixed lifecycle (waiting → submitting → voting → results)
driven by participant, submission, and vote counts.

# Starting the Server

The server reads configuration from environment variables (a .env file
is honored in development) or CLI flags:

	DATABASE_URL=postgres://... SLUG_SALT=... go run main.go

Or with flags:

	go run main.go -p 3344 -t sqlite -d food-vote.db -slug-salt dev

# Configuration

Required settings:

  - SLUG_SALT (-slug-salt): Secret for share slug HMAC

Optional settings:

  - PORT (-p): Server port (default: 3344)
  - DATABASE_TYPE (-t): "postgres" or "sqlite" (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: food-vote.db for sqlite)
  - BASE_URL (-base-url): Public base URL used in join links and QR codes

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (rooms, submissions, votes, results)
  - phase: room lifecycle decisions and vote tallying (pure logic)
  - realtime: per-room SSE broker for push updates
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response types
  - auth: ID generation and share slugs
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

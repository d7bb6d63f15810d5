// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

CLI flags take precedence over environment variables; defaults apply
last:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Settings

  - -p / PORT: server port (default 3344)
  - -t / DATABASE_TYPE: "sqlite" (default) or "postgres"
  - -d / DATABASE_URL: connection string; required for postgres,
    defaults to food-vote.db for sqlite
  - -slug-salt / SLUG_SALT: share slug HMAC secret (required)
  - -base-url / BASE_URL: public base URL for join links and QR codes
    (defaults to http://localhost:<port>)
*/
package cliparse

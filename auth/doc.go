// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides share slug generation.

Host authority in this system is the self-reported nickname recorded at
room creation; there are no credentials. The only derived artifact is
the room's share slug, an HMAC of the room ID under a server-side salt,
base62 encoded for clean URLs:

	slug := auth.GenerateShareSlug(roomID, cfg.SlugSalt)

Slugs are deterministic, so the same room and salt always produce the
same join link.
*/
package auth

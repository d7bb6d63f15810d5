// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

  - WithLogging: slog request/completion logging around a HandlerFunc
  - JSONResponse / ErrorResponse: JSON envelope writers
  - ParseJSONBody: request body decoding
  - CORS: permissive cross-origin support for the web client
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr resolution

ErrorResponse pairs the standard status text with a caller-provided
message:

	middleware.ErrorResponse(w, http.StatusForbidden, "Only the host can start voting")
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime implements a per-room publish/subscribe broker backing
the SSE endpoint.

Handlers publish after every state-changing write:

	broker.Publish(roomID, realtime.Event{Name: realtime.EventPhase, Data: "voting"})

and the events handler subscribes one channel per connected client.
Delivery is best effort: sends never block, and clients that fall
behind recover through the normal polling endpoints.
*/
package realtime

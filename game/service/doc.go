// Package service routes inbound command envelopes into game sessions and
// fans the resulting events back out.
//
// The Router is the seam between the transport layer and the game engine:
// connection handlers feed it decoded envelopes, it resolves (or lazily
// creates) the target session through the registry, executes the command
// under the session's lock, and hands the produced events to the
// dispatcher, which unicasts to a single connection or broadcasts to the
// whole session.
//
// Event sinks registered on the router observe every outbound envelope.
// This is the boundary the presentation layer consumes: the websocket
// feed subscribes here rather than hooking into the game engine.
//
// Unknown command tags, malformed payloads, and rule violations are all
// logged and swallowed; nothing on this path ever produces an error frame
// for the client.
package service

// Package session provides the process-wide registry of game sessions and
// live connections, plus the dispatcher that fans outbound envelopes to
// them.
//
// The registry maps game ids to engine sessions and connection ids to
// their write handles. Sessions are created lazily on first reference,
// so two connections racing to join the same new game always end up in
// the same session, and are never removed; a finished game's memory is
// reclaimed only at process exit. Connections, by contrast, come and go:
// the transport layer registers a connection when it is accepted and
// removes it when its read loop exits.
//
// The dispatcher resolves connection ids at send time. A unicast to a
// connection that has since disappeared is silently dropped, and a failed
// write to one broadcast recipient never blocks delivery to the rest.
package session

// Package tcpserver is the primary client transport: a TLS TCP listener
// speaking the length-prefixed JSON protocol from the protocol package.
//
// Each accepted connection runs a single read goroutine that decodes
// frames and hands the envelopes to the command router. The connection is
// registered with the session registry under a generated uuid so the
// dispatcher can route unicasts and broadcasts back to it. Writes from
// different goroutines are serialized per connection.
//
// The error model follows the protocol's: zero and negative length
// prefixes are treated as keepalives inside ReadFrame, malformed JSON
// bodies are logged and skipped without dropping the client, and only
// transport-level failures terminate a connection.
package tcpserver

// Package protocol defines the wire protocol shared by the Boardwalk
// server and its clients.
//
// The protocol package implements:
//   - The tagged envelope exchanged over the wire (game id + type + payload)
//   - Length-prefixed framing over a byte stream
//   - The inbound command and outbound event payload shapes
//
// Wire Format:
//
// Every message is a frame: a 4-byte little-endian unsigned length prefix
// followed by exactly that many UTF-8 bytes of JSON. The JSON object is the
// envelope:
//
//	{"GameId": "g1", "Type": "JoinGame", "Data": {"Name": "alice"}}
//
// Frames with a declared length of zero (or one that overflows into a
// negative int32) carry no body and are skipped; clients use them as
// keepalive probes. A malformed body or an unknown type tag is not a
// framing error; the reader surfaces the raw bytes and the caller decides
// to log and move on, keeping the connection open.
//
// Concurrency:
//
// WriteFrame issues a single Write call per frame so that callers holding a
// per-connection write lock never interleave bytes from concurrent frames.
package protocol

package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single frame body. A peer declaring a larger frame
// is misbehaving and gets its connection torn down.
const MaxFrameSize = 1 << 20

// EncodeFrame returns the complete wire bytes for env: the 4-byte
// little-endian length prefix followed by the JSON body. Broadcasts encode
// once and hand the same bytes to every recipient.
func EncodeFrame(env *Envelope) ([]byte, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	frame := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(body)))
	copy(frame[4:], body)
	return frame, nil
}

// WriteFrame encodes env and writes it as a single frame. The prefix and
// body go out in one Write call so frames from writers serialized by a
// per-connection lock never interleave.
func WriteFrame(w io.Writer, env *Envelope) error {
	frame, err := EncodeFrame(env)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// ReadFrame blocks until the next complete frame body has been read from r.
//
// It returns io.EOF when the stream ends cleanly at a frame boundary.
// A stream that ends mid-prefix or mid-body is a failed connection and
// yields io.ErrUnexpectedEOF. Declared lengths of zero or below are
// keepalive probes and are skipped without surfacing to the caller.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [4]byte
	for {
		if _, err := io.ReadFull(r, prefix[:]); err != nil {
			// io.ReadFull retries short reads internally; io.EOF here
			// means zero bytes arrived, a clean end of stream.
			return nil, err
		}

		length := int32(binary.LittleEndian.Uint32(prefix[:]))
		if length <= 0 {
			continue
		}
		if length > MaxFrameSize {
			return nil, fmt.Errorf("frame of %d bytes exceeds limit of %d", length, MaxFrameSize)
		}

		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("short frame body: %w", err)
		}
		return body, nil
	}
}

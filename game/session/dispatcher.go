package session

import (
	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/game/engine"
	"github.com/castlebay/boardwalk/protocol"
)

// Dispatcher writes outbound envelopes through registered connections.
type Dispatcher struct {
	registry *Manager
	logger   *zap.SugaredLogger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Manager, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Unicast sends env to one connection. An unknown id or a failed write is
// dropped: the connection is either gone or about to be reaped by its own
// read loop.
func (d *Dispatcher) Unicast(connID string, env *protocol.Envelope) {
	conn, err := d.registry.ResolveConn(connID)
	if err != nil {
		d.logger.Debugw("dropping unicast to unresolved connection", "conn", connID, "type", env.Type)
		return
	}

	frame, err := protocol.EncodeFrame(env)
	if err != nil {
		d.logger.Errorw("failed to encode envelope", "type", env.Type, "error", err)
		return
	}

	if err := conn.WriteFrame(frame); err != nil {
		d.logger.Debugw("failed unicast write", "conn", connID, "type", env.Type, "error", err)
	}
}

// Broadcast sends env to every connection in the session's player list,
// in join order. The envelope is serialized once; a write failure to one
// recipient never blocks delivery to the rest.
//
// The caller holds the session lock, so the player list is stable for the
// duration of the fan-out.
func (d *Dispatcher) Broadcast(sess *engine.Session, env *protocol.Envelope) {
	frame, err := protocol.EncodeFrame(env)
	if err != nil {
		d.logger.Errorw("failed to encode envelope", "type", env.Type, "error", err)
		return
	}

	for _, p := range sess.Players {
		conn, err := d.registry.ResolveConn(p.ID)
		if err != nil {
			continue
		}
		if err := conn.WriteFrame(frame); err != nil {
			d.logger.Debugw("failed broadcast write", "conn", p.ID, "type", env.Type, "error", err)
		}
	}
}

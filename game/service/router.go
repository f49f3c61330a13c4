package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/game/engine"
	"github.com/castlebay/boardwalk/game/session"
	"github.com/castlebay/boardwalk/protocol"
)

// maxPlayerNameLen bounds display names; anything longer is a misbehaving
// client and the join is ignored.
const maxPlayerNameLen = 32

// Dispatcher delivers outbound envelopes to connections.
type Dispatcher interface {
	Unicast(connID string, env *protocol.Envelope)
	Broadcast(sess *engine.Session, env *protocol.Envelope)
}

// EventSink observes every outbound envelope the router produces.
// Publish is called while the originating session's lock is held, so
// implementations must not block.
type EventSink interface {
	Publish(gameID string, env *protocol.Envelope)
}

// Router dispatches inbound commands into the session owning the target
// game and sends the produced events through the dispatcher.
type Router struct {
	registry   *session.Manager
	dispatcher Dispatcher
	sinks      []EventSink
	logger     *zap.SugaredLogger
}

// NewRouter creates a router over the given registry and dispatcher.
func NewRouter(registry *session.Manager, dispatcher Dispatcher, logger *zap.SugaredLogger) *Router {
	return &Router{
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// AddSink registers an observer for outbound envelopes. Must be called
// before the router starts receiving commands.
func (r *Router) AddSink(sink EventSink) {
	r.sinks = append(r.sinks, sink)
}

// HandleEnvelope executes one decoded command from connID. The session's
// lock is held from command execution through dispatch, so a session's
// outbound frames are totally ordered even when its players act
// concurrently.
func (r *Router) HandleEnvelope(connID string, env *protocol.Envelope) {
	if !protocol.KnownCommand(env.Type) {
		r.logger.Debugw("ignoring unknown command tag", "conn", connID, "type", env.Type)
		return
	}
	if env.GameID == "" {
		r.logger.Debugw("ignoring command without game id", "conn", connID, "type", env.Type)
		return
	}

	sess := r.registry.GetOrCreate(env.GameID)
	sess.Lock()
	defer sess.Unlock()

	var res engine.Result
	switch env.Type {
	case protocol.TypeJoinGame:
		var payload protocol.JoinGamePayload
		if err := env.DecodeData(&payload); err != nil {
			r.logger.Debugw("ignoring malformed payload", "conn", connID, "type", env.Type, "error", err)
			return
		}
		name := strings.TrimSpace(payload.Name)
		if name == "" || len(name) > maxPlayerNameLen {
			r.logger.Debugw("ignoring join with invalid name", "conn", connID, "name", payload.Name)
			return
		}
		res = sess.HandleJoin(connID, name)

	case protocol.TypeStartGame:
		res = sess.HandleStart(connID)

	case protocol.TypeRollDice:
		res = sess.HandleRoll(connID)

	case protocol.TypeBuyProperty:
		var payload protocol.BuyPropertyPayload
		if err := env.DecodeData(&payload); err != nil {
			r.logger.Debugw("ignoring malformed payload", "conn", connID, "type", env.Type, "error", err)
			return
		}
		res = sess.HandleBuy(connID, payload.PropertyName)

	case protocol.TypePayRent:
		var payload protocol.PayRentPayload
		if err := env.DecodeData(&payload); err != nil {
			r.logger.Debugw("ignoring malformed payload", "conn", connID, "type", env.Type, "error", err)
			return
		}
		res = sess.HandlePayRent(connID, payload.PropertyName, payload.RentPrice)

	case protocol.TypeEndGame:
		res = sess.HandleEnd(connID)
	}

	if !res.Applied {
		r.logger.Debugw("command ignored", "conn", connID, "game", env.GameID, "type", env.Type, "reason", res.Reason)
	}
	r.dispatch(sess, res.Events)
}

func (r *Router) dispatch(sess *engine.Session, events []engine.Event) {
	for _, ev := range events {
		out, err := protocol.NewEnvelope(sess.GameID, ev.Type, ev.Payload)
		if err != nil {
			r.logger.Errorw("failed to encode event", "game", sess.GameID, "type", ev.Type, "error", err)
			continue
		}

		if ev.IsBroadcast() {
			r.dispatcher.Broadcast(sess, out)
		} else {
			r.dispatcher.Unicast(ev.Target, out)
		}
		for _, sink := range r.sinks {
			sink.Publish(sess.GameID, out)
		}
	}
}

package main

import (
	"chat-relay/chaterror"

	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// Router pushes messages to live sessions. It only ever reads the registry;
// session lifecycle stays with each connection's handler.
type Router struct {
	sessions *SessionManager
	logger   *slog.Logger
}

func NewRouter(sessions *SessionManager, logger *slog.Logger) *Router {
	return &Router{
		sessions: sessions,
		logger:   logger,
	}
}

// Broadcast delivers text to every online user except exclude. Delivery is
// best-effort: a dead recipient is disconnected so its own handler runs
// cleanup, and the remaining recipients still get the message.
func (r *Router) Broadcast(text, exclude string) {
	for username, session := range r.sessions.Snapshot() {
		if username == exclude {
			continue
		}

		if err := session.Send(text); err != nil {
			r.logger.Error("could not deliver broadcast", "to", username, "err", err.Error())
			deliveryFailures.Inc()
			session.Disconnect()
			continue
		}
		messagesRelayed.WithLabelValues("broadcast").Inc()
	}
}

// SendTo delivers text to exactly the named user. Returns ErrNotOnline when
// the user has no live session; a failed write disconnects the recipient and
// is reported to the caller.
func (r *Router) SendTo(target, text string) error {
	session := r.sessions.Get(target)
	if session == nil {
		return chaterror.ErrNotOnline
	}

	if err := session.Send(text); err != nil {
		deliveryFailures.Inc()
		session.Disconnect()
		return errors.Wrapf(err, "could not deliver message to %s", target)
	}

	messagesRelayed.WithLabelValues("private").Inc()
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"chat-relay/chat"
	"chat-relay/chaterror"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// Commands and pushed messages are single lines; anything longer than this is
// a protocol violation and terminates the connection.
const maxLineBytes = 8 * 1024

// Handler runs the command loop for one client connection: read a line,
// parse it, act on the registry or the router, reply.
type Handler struct {
	store          CredentialStore
	sessionManager *SessionManager
	router         *Router
}

func NewHandler(store CredentialStore, sm *SessionManager, router *Router) *Handler {
	return &Handler{
		store:          store,
		sessionManager: sm,
		router:         router,
	}
}

// Handle owns conn until the client quits, the peer disconnects, or an I/O
// error occurs. Cleanup runs exactly once on every exit path: the registry
// entry (if the user logged in) is removed and the connection is closed.
func (h *Handler) Handle(conn net.Conn, logger *slog.Logger) {
	connLogger := logger.With("session_id", uuid.New(), "ip", conn.RemoteAddr().String())
	connLogger.Info("New Connection")
	connectionsActive.Inc()

	session := chat.NewSession(conn, connLogger)
	defer func() {
		if session.Username != "" {
			h.sessionManager.Remove(session.Username)
		}
		session.Disconnect()
		connectionsActive.Dec()
		connLogger.Info("Disconnected", "username", session.Username)
	}()

	ctx := context.Background()
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024), maxLineBytes)

	for scanner.Scan() {
		cmd := chat.ParseCommand(scanner.Text())
		if closed := h.dispatch(ctx, session, cmd); closed {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		connLogger.Error("Read error", "err", err.Error())
	}
}

// dispatch runs one command. The returned bool reports whether the
// connection should close.
func (h *Handler) dispatch(ctx context.Context, session *chat.Session, cmd chat.Command) bool {
	switch cmd.Kind {
	case chat.KindRegister:
		h.handleRegister(ctx, session, cmd)

	case chat.KindLogin:
		h.handleLogin(ctx, session, cmd)

	case chat.KindOnline:
		h.reply(session, "Online users: "+strings.Join(h.sessionManager.Online(), ", "))

	case chat.KindMessage:
		if session.Username == "" {
			h.reply(session, "ERROR: Please log in first.")
			return false
		}
		h.router.Broadcast(fmt.Sprintf("%s: %s", session.Username, cmd.Text), session.Username)

	case chat.KindPrivate:
		if session.Username == "" {
			h.reply(session, "ERROR: Please log in first.")
			return false
		}
		text := fmt.Sprintf("Private from %s: %s", session.Username, cmd.Text)
		if err := h.router.SendTo(cmd.User, text); err != nil {
			if !errors.Is(err, chaterror.ErrNotOnline) {
				session.Logger.Error("could not deliver private message", "to", cmd.User, "err", err.Error())
			}
			h.reply(session, "ERROR: User not online.")
		}

	case chat.KindQuit:
		h.reply(session, "Goodbye!")
		return true

	default:
		h.reply(session, "ERROR: Unknown command.")
	}

	return false
}

func (h *Handler) handleRegister(ctx context.Context, session *chat.Session, cmd chat.Command) {
	exists, err := h.store.Exists(ctx, cmd.User)
	if err != nil {
		session.Logger.Error("could not check for existing user", "username", cmd.User, "err", err.Error())
		h.reply(session, "ERROR: Registration failed.")
		return
	}
	if exists {
		h.reply(session, "ERROR: Username already exists.")
		return
	}

	// Create rechecks under the store's own uniqueness guarantee, so two
	// concurrent registrations of the same name cannot both pass.
	if err := h.store.Create(ctx, cmd.User, cmd.Secret); err != nil {
		if errors.Is(err, chaterror.ErrUserExists) {
			h.reply(session, "ERROR: Username already exists.")
			return
		}
		session.Logger.Error("could not create user", "username", cmd.User, "err", err.Error())
		h.reply(session, "ERROR: Registration failed.")
		return
	}

	session.Logger.Info("Registered user", "username", cmd.User)
	h.reply(session, "Registration successful.")
}

func (h *Handler) handleLogin(ctx context.Context, session *chat.Session, cmd chat.Command) {
	ok, err := h.store.Verify(ctx, cmd.User, cmd.Secret)
	if err != nil {
		session.Logger.Error("could not verify credentials", "username", cmd.User, "err", err.Error())
		h.reply(session, "ERROR: Invalid credentials.")
		return
	}
	if !ok {
		h.reply(session, "ERROR: Invalid credentials.")
		return
	}

	if err := h.sessionManager.Register(cmd.User, session); err != nil {
		h.reply(session, "ERROR: User already logged in.")
		return
	}

	// Re-login on the same connection swaps the identity; the old registry
	// entry must not linger.
	if prev := session.Username; prev != "" && prev != cmd.User {
		h.sessionManager.Remove(prev)
	}
	session.Username = cmd.User

	session.Logger.Info("Authenticated user", "username", cmd.User)
	h.reply(session, "Login successful.")
}

// reply pushes one line back to the originating client. A failed reply means
// the peer is gone; the read loop notices on its next iteration, so here it
// is only logged.
func (h *Handler) reply(session *chat.Session, text string) {
	if err := session.Send(text); err != nil {
		session.Logger.Error("could not send reply", "err", err.Error())
	}
}

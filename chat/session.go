package chat

import (
	"net"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

// Session is the live binding between one client connection and, once the
// user has logged in, a username.
//
// The owning handler is the only goroutine that reads from the connection,
// but the router writes to it from other handlers' goroutines when delivering
// broadcasts and private messages. Writes are therefore serialized so a
// pushed message cannot interleave with a direct reply on the wire.
type Session struct {
	conn      net.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once

	// Username is empty until a successful LOGIN.
	Username string
	Logger   *slog.Logger
}

func NewSession(conn net.Conn, logger *slog.Logger) *Session {
	return &Session{
		conn:   conn,
		Logger: logger,
	}
}

func (s *Session) RemoteAddr() net.Addr {
	return s.conn.RemoteAddr()
}

// Send writes one protocol line to the client.
func (s *Session) Send(text string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := s.conn.Write(append([]byte(text), '\n'))
	return errors.Wrap(err, "could not write to client connection")
}

// Disconnect releases the underlying connection. Safe to call more than
// once; the connection is closed exactly once.
func (s *Session) Disconnect() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}

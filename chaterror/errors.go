package chaterror

import "github.com/pkg/errors"

// Sentinel errors shared between the registry, the router and the command
// dispatcher.
var (
	// ErrAlreadyOnline means the username already has a live session.
	ErrAlreadyOnline = errors.New("user already logged in")

	// ErrNotOnline means the named user has no live session.
	ErrNotOnline = errors.New("user not online")

	// ErrUserExists means the username is already taken in the credential
	// store.
	ErrUserExists = errors.New("username already exists")
)

func FetchingUser(err error, username string) error {
	return errors.Wrapf(err, "could not fetch user with username %s", username)
}

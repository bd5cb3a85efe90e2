package main

import (
	"context"

	"chat-relay/chaterror"
	"chat-relay/models"

	"github.com/uptrace/bun"
	"golang.org/x/exp/slog"
)

// CredentialStore is the durable username/password mapping. The handler only
// depends on these three operations, so tests can substitute an in-memory
// fake for the database-backed implementation.
type CredentialStore interface {
	// Create registers a new account, failing with ErrUserExists when the
	// username is taken. An existing credential is never overwritten.
	Create(ctx context.Context, username, password string) error

	// Verify reports whether the username/password pair is valid. An
	// unknown username is not an error, just a false.
	Verify(ctx context.Context, username, password string) (bool, error)

	// Exists reports whether the username is registered.
	Exists(ctx context.Context, username string) (bool, error)
}

type dbCredentialStore struct {
	db     *bun.DB
	logger *slog.Logger
}

// NewCredentialStore returns a CredentialStore persisting users through bun.
func NewCredentialStore(db *bun.DB, logger *slog.Logger) CredentialStore {
	return &dbCredentialStore{db: db, logger: logger}
}

func (s *dbCredentialStore) Create(ctx context.Context, username, password string) error {
	existing, err := models.UserByUsername(ctx, s.db, username)
	if err != nil {
		return chaterror.FetchingUser(err, username)
	}
	if existing != nil {
		return chaterror.ErrUserExists
	}

	_, err = models.CreateUser(ctx, s.db, username, password)
	return err
}

func (s *dbCredentialStore) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := models.UserByUsername(ctx, s.db, username)
	if err != nil {
		return false, chaterror.FetchingUser(err, username)
	}
	if user == nil || !user.CheckPassword(password) {
		return false, nil
	}

	if err := user.Touch(ctx, s.db); err != nil {
		s.logger.Error("could not record user activity", "username", username, "err", err.Error())
	}
	return true, nil
}

func (s *dbCredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	user, err := models.UserByUsername(ctx, s.db, username)
	if err != nil {
		return false, chaterror.FetchingUser(err, username)
	}
	return user != nil, nil
}

package models

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// User is one registered account. Password holds a bcrypt hash, never the
// plaintext. Usernames are unique across all time, independent of whether the
// user is currently online.
type User struct {
	bun.BaseModel `bun:"table:users"`
	Username      string    `bun:",pk"`
	Password      string    `bun:",notnull"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	LastSeenAt    time.Time `bun:",nullzero"`
}

// CreateUser hashes the password and inserts the account.
func CreateUser(ctx context.Context, db *bun.DB, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}

	user := &User{
		Username: username,
		Password: string(hash),
	}

	if _, err := db.NewInsert().Model(user).Exec(ctx, user); err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}

	return user, nil
}

// UserByUsername returns the account, or nil without an error when no such
// account exists.
func UserByUsername(ctx context.Context, db *bun.DB, username string) (*User, error) {
	user := new(User)
	if err := db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx, user); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not fetch user")
	}
	return user, nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (u *User) Update(ctx context.Context, db *bun.DB, cols ...string) error {
	q := db.NewUpdate().Model(u).WherePK()

	if len(cols) > 0 {
		q = q.Column(cols...)
	}

	if _, err := q.Exec(ctx); err != nil {
		return errors.Wrap(err, "could not update user")
	}
	return nil
}

// Touch records that the user was just active.
func (u *User) Touch(ctx context.Context, db *bun.DB) error {
	u.LastSeenAt = time.Now()
	return u.Update(ctx, db, "last_seen_at")
}

package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("could not hash password: %s", err)
	}

	user := &User{Username: "alice", Password: string(hash)}

	if !user.CheckPassword("pw1") {
		t.Error("expected the stored hash to match the original password")
	}
	if user.CheckPassword("pw2") {
		t.Error("expected a wrong password to be rejected")
	}
	if user.CheckPassword("") {
		t.Error("expected an empty password to be rejected")
	}
}

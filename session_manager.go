package main

import (
	"sort"
	"sync"

	"chat-relay/chat"
	"chat-relay/chaterror"
)

// SessionManager maps usernames to live sessions. It is the single source of
// truth for who is online and the only shared mutable state between
// connection handlers, so every access goes through its mutex. The lock is
// held only for the map operation itself, never across a socket write.
type SessionManager struct {
	sessions map[string]*chat.Session
	mutex    *sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*chat.Session),
		mutex:    &sync.RWMutex{},
	}
}

// Register inserts the session, failing with ErrAlreadyOnline when the
// username already has a live one. At most one session per username exists at
// any instant.
func (sm *SessionManager) Register(username string, session *chat.Session) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, ok := sm.sessions[username]; ok {
		return chaterror.ErrAlreadyOnline
	}
	sm.sessions[username] = session
	sessionsOnline.Set(float64(len(sm.sessions)))
	return nil
}

// Remove drops the username's session. Removing an absent username is a
// no-op, so the cleanup path may run unconditionally.
func (sm *SessionManager) Remove(username string) {
	sm.mutex.Lock()
	delete(sm.sessions, username)
	sessionsOnline.Set(float64(len(sm.sessions)))
	sm.mutex.Unlock()
}

// Get returns the username's session, or nil when the user is not online.
func (sm *SessionManager) Get(username string) *chat.Session {
	sm.mutex.RLock()
	s := sm.sessions[username]
	sm.mutex.RUnlock()
	return s
}

func (sm *SessionManager) IsOnline(username string) bool {
	return sm.Get(username) != nil
}

// Online returns a sorted point-in-time snapshot of the online usernames.
func (sm *SessionManager) Online() []string {
	sm.mutex.RLock()
	names := make([]string, 0, len(sm.sessions))
	for username := range sm.sessions {
		names = append(names, username)
	}
	sm.mutex.RUnlock()

	sort.Strings(names)
	return names
}

// Snapshot copies the registry so callers can iterate and write to sessions
// without holding the lock.
func (sm *SessionManager) Snapshot() map[string]*chat.Session {
	sm.mutex.RLock()
	snapshot := make(map[string]*chat.Session, len(sm.sessions))
	for username, session := range sm.sessions {
		snapshot[username] = session
	}
	sm.mutex.RUnlock()
	return snapshot
}

package main

import (
	"bufio"
	"net"
	"testing"
	"time"

	"chat-relay/chat"
	"chat-relay/chaterror"

	"github.com/pkg/errors"
)

// testPeer is one fake client: the server half wrapped in a session plus a
// reader draining the client half into a channel.
type testPeer struct {
	session *chat.Session
	client  net.Conn
	lines   chan string
}

func newTestPeer(t *testing.T) *testPeer {
	server, client := net.Pipe()
	p := &testPeer{
		session: chat.NewSession(server, discardLogger()),
		client:  client,
		lines:   make(chan string, 16),
	}

	go func() {
		scanner := bufio.NewScanner(client)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		close(p.lines)
	}()

	t.Cleanup(func() {
		p.session.Disconnect()
		p.client.Close()
	})
	return p
}

func (p *testPeer) next(t *testing.T) string {
	t.Helper()
	select {
	case line, ok := <-p.lines:
		if !ok {
			t.Fatal("stream closed while waiting for a line")
		}
		return line
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a line")
	}
	return ""
}

func (p *testPeer) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case line, ok := <-p.lines:
		if ok {
			t.Errorf("expected no delivery but got %q", line)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRouterBroadcastExcludesSender(t *testing.T) {
	sm := NewSessionManager()
	router := NewRouter(sm, discardLogger())

	alice := newTestPeer(t)
	bob := newTestPeer(t)
	carol := newTestPeer(t)
	sm.Register("alice", alice.session)
	sm.Register("bob", bob.session)
	sm.Register("carol", carol.session)

	router.Broadcast("alice: hi", "alice")

	if want, got := "alice: hi", bob.next(t); want != got {
		t.Errorf("expected bob to get %q but got %q", want, got)
	}
	if want, got := "alice: hi", carol.next(t); want != got {
		t.Errorf("expected carol to get %q but got %q", want, got)
	}
	alice.expectNothing(t)
}

func TestRouterSendTo(t *testing.T) {
	sm := NewSessionManager()
	router := NewRouter(sm, discardLogger())

	alice := newTestPeer(t)
	bob := newTestPeer(t)
	sm.Register("alice", alice.session)
	sm.Register("bob", bob.session)

	if err := router.SendTo("bob", "Private from alice: secret"); err != nil {
		t.Fatalf("could not send to bob: %s", err)
	}

	if want, got := "Private from alice: secret", bob.next(t); want != got {
		t.Errorf("expected bob to get %q but got %q", want, got)
	}
	alice.expectNothing(t)
}

func TestRouterSendToOffline(t *testing.T) {
	sm := NewSessionManager()
	router := NewRouter(sm, discardLogger())

	alice := newTestPeer(t)
	sm.Register("alice", alice.session)

	if err := router.SendTo("eve", "hi"); !errors.Is(err, chaterror.ErrNotOnline) {
		t.Errorf("expected ErrNotOnline but got %v", err)
	}
	alice.expectNothing(t)
}

// One dead recipient must not stop delivery to the rest.
func TestRouterBroadcastSurvivesDeadRecipient(t *testing.T) {
	sm := NewSessionManager()
	router := NewRouter(sm, discardLogger())

	dead := newTestPeer(t)
	bob := newTestPeer(t)
	sm.Register("dead", dead.session)
	sm.Register("bob", bob.session)

	// Kill the peer without telling the registry, like an abrupt
	// disconnect the handler has not noticed yet.
	dead.session.Disconnect()
	dead.client.Close()

	router.Broadcast("alice: hi", "alice")

	if want, got := "alice: hi", bob.next(t); want != got {
		t.Errorf("expected bob to get %q but got %q", want, got)
	}
}

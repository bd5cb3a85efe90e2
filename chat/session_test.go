package chat

import (
	"bufio"
	"io"
	"net"
	"sort"
	"sync"
	"testing"

	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionSendAppendsNewline(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	s := NewSession(server, testLogger())
	defer s.Disconnect()

	go func() {
		if err := s.Send("hello"); err != nil {
			t.Errorf("could not send: %s", err)
		}
	}()

	line, err := bufio.NewReader(client).ReadString('\n')
	if err != nil {
		t.Fatalf("could not read from client side: %s", err)
	}
	if want := "hello\n"; line != want {
		t.Errorf("expected %q but got %q", want, line)
	}
}

// Concurrent senders share one connection during broadcasts, so lines from
// different goroutines must never interleave on the wire.
func TestSessionSendSerializesWrites(t *testing.T) {
	const perSender = 50

	server, client := net.Pipe()
	s := NewSession(server, testLogger())
	defer s.Disconnect()

	var wg sync.WaitGroup
	lines := []string{"aaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbb", "cccccccccccccccc"}
	for _, line := range lines {
		wg.Add(1)
		go func(line string) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				if err := s.Send(line); err != nil {
					t.Errorf("could not send %q: %s", line, err)
					return
				}
			}
		}(line)
	}

	got := make([]string, 0, perSender*len(lines))
	scanner := bufio.NewScanner(client)
	for i := 0; i < perSender*len(lines); i++ {
		if !scanner.Scan() {
			t.Fatalf("stream ended after %d lines: %v", i, scanner.Err())
		}
		got = append(got, scanner.Text())
	}
	wg.Wait()

	counts := make(map[string]int)
	for _, line := range got {
		counts[line]++
	}

	var keys []string
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) != len(lines) {
		t.Fatalf("expected %d distinct lines but got %d: %v", len(lines), len(keys), keys)
	}
	for _, line := range lines {
		if counts[line] != perSender {
			t.Errorf("expected %d copies of %q but got %d", perSender, line, counts[line])
		}
	}
}

func TestSessionDisconnectIdempotent(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	s := NewSession(server, testLogger())
	if err := s.Disconnect(); err != nil {
		t.Errorf("first disconnect failed: %s", err)
	}
	if err := s.Disconnect(); err != nil {
		t.Errorf("second disconnect failed: %s", err)
	}

	if err := s.Send("hello"); err == nil {
		t.Error("expected a send on a closed session to fail")
	}
}

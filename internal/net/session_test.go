package net

import (
	"bufio"
	"net"
	"strings"
	"testing"

	"github.com/peterkuimelis/kittens/internal/log"
)

// fakeClient answers frames on the far side of a pipe.
func fakeClient(t *testing.T, conn net.Conn, replies ...string) <-chan []string {
	t.Helper()
	received := make(chan []string, 1)
	go func() {
		defer close(received)
		r := bufio.NewReader(conn)
		var frames []string
		for _, reply := range replies {
			frame, err := readFrame(r)
			if err != nil {
				t.Errorf("client read: %v", err)
				return
			}
			frames = append(frames, frame)
			if strings.HasPrefix(frame, QueryMarker) {
				if err := writeFrame(conn, reply); err != nil {
					t.Errorf("client write: %v", err)
					return
				}
			}
		}
		received <- frames
	}()
	return received
}

func TestSessionQueryRoundTrip(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	received := fakeClient(t, client, "alice")
	s := NewSession(server)
	got, err := s.Query("Enter your name")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "alice" {
		t.Fatalf("reply = %q, want alice", got)
	}
	frames := <-received
	if frames[0] != QueryMarker+"Enter your name" {
		t.Fatalf("client saw %q, want marked query", frames[0])
	}
}

func TestSessionQueryNumberRequeriesOnGarbage(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	_ = fakeClient(t, client, "kaboom", "9", "2")
	s := NewSession(server)
	got, err := s.QueryNumber("Pick", 1, 5)
	if err != nil {
		t.Fatalf("query number: %v", err)
	}
	if got != 2 {
		t.Fatalf("number = %d, want 2", got)
	}
}

func TestSessionNotifyEscapesNewlines(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	done := make(chan string, 1)
	go func() {
		r := bufio.NewReader(client)
		line, err := r.ReadString('\n')
		if err != nil {
			t.Errorf("client read: %v", err)
		}
		done <- line
	}()

	s := NewSession(server)
	s.Notify(log.Info("Your initial hand is \n1: DEFUSE\n"))
	wire := <-done
	if strings.Count(wire, "\n") != 1 {
		t.Fatalf("notify frame spans lines: %q", wire)
	}
	if !strings.Contains(wire, ";;;") {
		t.Fatalf("newlines not escaped: %q", wire)
	}
}

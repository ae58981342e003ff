package net

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/log"
)

// Session adapts one client connection to the game's UserInterface. The
// mutex spans a full query round-trip, so a straggling reply to a
// previous prompt cannot be mistaken for the answer to the next one.
type Session struct {
	id   uuid.UUID
	conn net.Conn
	r    *bufio.Reader

	mu sync.Mutex
}

func NewSession(conn net.Conn) *Session {
	return &Session{
		id:   uuid.New(),
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Notify pushes the event frame without waiting for anything back.
func (s *Session) Notify(event log.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFrame(s.conn, event.String()); err != nil {
		logrus.WithError(err).WithField("session", s.id).Warn("notify failed")
	}
}

// Query sends a marked prompt and blocks for the reply line.
func (s *Session) Query(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roundTrip(prompt)
}

func (s *Session) roundTrip(prompt string) (string, error) {
	if err := writeFrame(s.conn, QueryMarker+prompt); err != nil {
		return "", err
	}
	reply, err := readFrame(s.r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// QueryNumber re-queries until the client sends a number in [min, max].
func (s *Session) QueryNumber(prompt string, min, max int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		reply, err := s.roundTrip(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(reply)
		if err != nil || n < min || n > max {
			continue
		}
		return n, nil
	}
}

// QueryNumberTimeout ignores the timeout: enforcing per-prompt deadlines
// over a shared connection would desynchronize the frame stream. The
// engine's own veto deadline still applies; a late reply just loses.
func (s *Session) QueryNumberTimeout(prompt string, min, max int, timeout time.Duration, fallback int) (int, error) {
	return s.QueryNumber(prompt, min, max)
}

// QueryNumbers re-queries until every comma-separated token is a number
// in [0, max]. An empty reply is an empty selection.
func (s *Session) QueryNumbers(prompt string, max int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		reply, err := s.roundTrip(prompt)
		if err != nil {
			return nil, err
		}
		if reply == "" {
			return nil, nil
		}
		numbers, ok := parseReplyNumbers(reply, max)
		if !ok {
			continue
		}
		return numbers, nil
	}
}

func (s *Session) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func parseReplyNumbers(reply string, max int) ([]int, bool) {
	var numbers []int
	for _, token := range strings.Split(reply, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 0 || n > max {
			return nil, false
		}
		numbers = append(numbers, n)
	}
	return numbers, true
}

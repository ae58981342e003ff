package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/game"
	"github.com/peterkuimelis/kittens/internal/log"
)

// acceptPoll bounds each Accept call so registration can notice a
// canceled context.
const acceptPoll = 2 * time.Second

// Registry accepts client connections and turns them into players. Each
// host creates its own Registry; nothing here is process-global.
type Registry struct {
	ln net.Listener
}

// Listen opens the registration listener on the given address.
func Listen(addr string) (*Registry, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	logrus.WithField("addr", ln.Addr().String()).Info("listening for players")
	return &Registry{ln: ln}, nil
}

// Addr returns the bound listener address.
func (r *Registry) Addr() net.Addr {
	return r.ln.Addr()
}

// RegisterPlayers accepts connections until count players have completed
// the name handshake. Handshakes run concurrently, so a slow client does
// not block the ones behind it.
func (r *Registry) RegisterPlayers(ctx context.Context, count int) ([]*game.Player, error) {
	registered := make(chan *game.Player, count)
	accepted := 0
	for accepted < count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if d, ok := r.ln.(*net.TCPListener); ok {
			if err := d.SetDeadline(time.Now().Add(acceptPoll)); err != nil {
				return nil, fmt.Errorf("set accept deadline: %w", err)
			}
		}
		conn, err := r.ln.Accept()
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				continue
			}
			return nil, fmt.Errorf("accept: %w", err)
		}
		accepted++
		go handshake(conn, registered)
	}

	players := make([]*game.Player, 0, count)
	for len(players) < count {
		select {
		case p := <-registered:
			players = append(players, p)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return players, nil
}

func handshake(conn net.Conn, registered chan<- *game.Player) {
	session := NewSession(conn)
	entry := logrus.WithFields(logrus.Fields{
		"session": session.ID(),
		"remote":  conn.RemoteAddr().String(),
	})
	entry.Info("new connection established")

	name, err := session.Query("Enter your name")
	if err != nil {
		entry.WithError(err).Error("handshake failed")
		_ = session.Close()
		return
	}
	session.Notify(log.Info("Welcome " + name))
	entry.WithField("player", name).Info("player joined")
	registered <- game.NewHumanPlayer(name, session)
}

// Close stops accepting new connections. Registered sessions stay open.
func (r *Registry) Close() error {
	if err := r.ln.Close(); err != nil {
		return fmt.Errorf("close registry: %w", err)
	}
	return nil
}

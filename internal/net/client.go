package net

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/game"
	"github.com/peterkuimelis/kittens/internal/log"
)

// Join connects to a host and plays through the given UI until the host
// sends the end-of-game marker. The client is a dumb frame pump: all
// game logic stays on the host.
func Join(ctx context.Context, addr string, ui game.UserInterface) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("join %s: %w", addr, err)
	}
	defer conn.Close()
	logrus.WithField("addr", addr).Info("connected to host")

	endFrame := log.System(game.EndOfGameMarker).String()
	r := bufio.NewReader(conn)
	for {
		frame, err := readFrame(r)
		if err != nil {
			return fmt.Errorf("connection to host lost: %w", err)
		}
		if strings.HasPrefix(frame, QueryMarker) {
			reply, err := ui.Query(strings.TrimPrefix(frame, QueryMarker))
			if err != nil {
				return fmt.Errorf("read reply: %w", err)
			}
			if err := writeFrame(conn, reply); err != nil {
				return err
			}
			continue
		}
		event, err := log.Parse(frame)
		if err != nil {
			logrus.WithError(err).Warn("dropping malformed frame")
			continue
		}
		ui.Notify(event)
		if frame == endFrame {
			return nil
		}
	}
}

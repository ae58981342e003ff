// Package net carries games over plain TCP. Every message is one
// newline-terminated text frame; queries are marked so the client knows
// when a reply is expected. The grammar is deliberately line-based:
// any telnet-like client can play.
package net

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	// QueryMarker prefixes frames that demand a reply line.
	QueryMarker = "QUERY: "

	// newlineToken stands in for newlines inside a frame, keeping the
	// one-frame-per-line invariant.
	newlineToken = ";;;"
)

func escapeFrame(s string) string {
	return strings.ReplaceAll(s, "\n", newlineToken)
}

func unescapeFrame(s string) string {
	return strings.ReplaceAll(s, newlineToken, "\n")
}

// writeFrame sends one escaped, newline-terminated frame.
func writeFrame(w io.Writer, text string) error {
	if _, err := fmt.Fprintf(w, "%s\n", escapeFrame(text)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readFrame reads one frame, stripping the terminator and unescaping
// embedded newlines.
func readFrame(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}
	return unescapeFrame(strings.TrimRight(line, "\r\n")), nil
}

// Package cli implements the local terminal front-end for human players.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/kittens/internal/log"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Terminal is a line-oriented console UI. A single reader goroutine owns
// the input stream; prompts are serialized with a mutex so concurrent
// askers (the veto window) cannot interleave their reads.
type Terminal struct {
	out io.Writer

	mu    sync.Mutex
	lines chan string
	done  chan struct{}
}

// NewTerminal starts the reader goroutine over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go t.readLoop(in)
	return t
}

func (t *Terminal) readLoop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case t.lines <- scanner.Text():
		case <-t.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logrus.WithError(err).Error("terminal input closed")
	}
	close(t.lines)
}

// Notify prints the event colored by severity.
func (t *Terminal) Notify(event log.GameEvent) {
	fmt.Fprintf(t.out, "%s%s%s\n", severityColor(event.Severity), event.Description, colorReset)
}

func severityColor(s log.Severity) string {
	switch s {
	case log.SeveritySystem:
		return colorYellow
	case log.SeverityError:
		return colorRed
	default:
		return colorGreen
	}
}

// Query prints the prompt and blocks for one input line.
func (t *Terminal) Query(prompt string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ask(prompt)
}

func (t *Terminal) ask(prompt string) (string, error) {
	fmt.Fprintf(t.out, "%s\n>", prompt)
	line, ok := <-t.lines
	if !ok {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// QueryNumber re-prompts until the answer is a number in [min, max].
func (t *Terminal) QueryNumber(prompt string, min, max int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		line, err := t.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < min || n > max {
			fmt.Fprintf(t.out, "%sPlease enter a number between %d and %d%s\n", colorRed, min, max, colorReset)
			continue
		}
		return n, nil
	}
}

// QueryNumberTimeout behaves like QueryNumber but gives up after the
// timeout and returns the fallback. Used for the veto prompt, where the
// engine will not wait forever.
func (t *Terminal) QueryNumberTimeout(prompt string, min, max int, timeout time.Duration, fallback int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s\n>", prompt)
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case line, ok := <-t.lines:
			if !ok {
				return 0, io.EOF
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil || n < min || n > max {
				fmt.Fprintf(t.out, "%sPlease enter a number between %d and %d%s\n>", colorRed, min, max, colorReset)
				continue
			}
			return n, nil
		case <-timer.C:
			fmt.Fprintf(t.out, " %d\n", fallback)
			return fallback, nil
		}
	}
}

// QueryNumbers reads a comma- or space-separated list of numbers, each
// in [0, max]. An empty line means an empty selection; any invalid token
// re-prompts.
func (t *Terminal) QueryNumbers(prompt string, max int) ([]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for {
		line, err := t.ask(prompt)
		if err != nil {
			return nil, err
		}
		if line == "" {
			return nil, nil
		}
		numbers, ok := parseNumberList(line, max)
		if !ok {
			fmt.Fprintf(t.out, "%sPlease enter numbers between 0 and %d%s\n", colorRed, max, colorReset)
			continue
		}
		return numbers, nil
	}
}

// Close stops the reader goroutine. Pending asks fail with io.EOF once
// the input drains.
func (t *Terminal) Close() error {
	close(t.done)
	return nil
}

func parseNumberList(line string, max int) ([]int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var numbers []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > max {
			return nil, false
		}
		numbers = append(numbers, n)
	}
	return numbers, true
}

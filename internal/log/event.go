package log

import (
	"fmt"
	"strings"
)

// Severity classifies a GameEvent for presentation purposes.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySystem
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySystem:
		return "SYSTEM"
	case SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseSeverity maps a wire token back to its Severity.
func ParseSeverity(token string) (Severity, error) {
	switch token {
	case "INFO":
		return SeverityInfo, nil
	case "SYSTEM":
		return SeveritySystem, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q", token)
	}
}

// GameEvent is the sole notification unit delivered to players: a
// description paired with a severity.
type GameEvent struct {
	Description string
	Severity    Severity
}

func Info(description string) GameEvent {
	return GameEvent{Description: description, Severity: SeverityInfo}
}

func System(description string) GameEvent {
	return GameEvent{Description: description, Severity: SeveritySystem}
}

func Error(description string) GameEvent {
	return GameEvent{Description: description, Severity: SeverityError}
}

// String renders the single-line wire form "SEVERITY: description".
// Embedded newlines are escaped one layer up, by the frame codec.
func (e GameEvent) String() string {
	return e.Severity.String() + ": " + e.Description
}

// Parse rebuilds a GameEvent from its wire form.
func Parse(s string) (GameEvent, error) {
	parts := strings.SplitN(s, ": ", 2)
	if len(parts) != 2 {
		return GameEvent{}, fmt.Errorf("invalid game event %q", s)
	}
	sev, err := ParseSeverity(parts[0])
	if err != nil {
		return GameEvent{}, fmt.Errorf("invalid game event %q: %w", s, err)
	}
	return GameEvent{Description: parts[1], Severity: sev}, nil
}

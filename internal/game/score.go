package game

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Result is one row of the scoreboard: a player's name and the number of
// players still active when they left the game. Lower is better.
type Result struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}

// Scoreboard accumulates results during a game and persists them as a
// JSON file. An empty path disables persistence.
type Scoreboard struct {
	path    string
	results []Result
}

func NewScoreboard(path string) *Scoreboard {
	return &Scoreboard{path: path}
}

func (s *Scoreboard) Add(playerName string, score int) {
	s.results = append(s.results, Result{PlayerName: playerName, Score: score})
}

// Results returns the recorded results sorted by score, best first.
func (s *Scoreboard) Results() []Result {
	results := make([]Result, len(s.results))
	copy(results, s.results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// Render formats the scoreboard in insertion order for broadcasting.
func (s *Scoreboard) Render() string {
	var b strings.Builder
	b.WriteString("<---- SCOREBOARD ---->\n")
	for _, r := range s.results {
		fmt.Fprintf(&b, "%d\t\t%s\n", r.Score, r.PlayerName)
	}
	b.WriteString("<---- ********** ---->\n")
	return b.String()
}

// Write persists the sorted results to the scoreboard file, replacing
// whatever was there. A scoreboard without a path writes nothing.
func (s *Scoreboard) Write() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.Results())
	if err != nil {
		return fmt.Errorf("marshal scoreboard: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write scoreboard: %w", err)
	}
	return nil
}

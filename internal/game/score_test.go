package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScoreboardResultsSorted(t *testing.T) {
	s := NewScoreboard("")
	s.Add("carol", 3)
	s.Add("alice", 1)
	s.Add("bob", 2)

	results := s.Results()
	want := []Result{
		{PlayerName: "alice", Score: 1},
		{PlayerName: "bob", Score: 2},
		{PlayerName: "carol", Score: 3},
	}
	if len(results) != len(want) {
		t.Fatalf("results = %d, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("results[%d] = %+v, want %+v", i, results[i], want[i])
		}
	}
}

func TestScoreboardRender(t *testing.T) {
	s := NewScoreboard("")
	s.Add("bob", 2)
	s.Add("alice", 1)

	rendered := s.Render()
	if !strings.HasPrefix(rendered, "<---- SCOREBOARD ---->\n") {
		t.Fatalf("render missing header:\n%s", rendered)
	}
	if !strings.Contains(rendered, "2\t\tbob\n") || !strings.Contains(rendered, "1\t\talice\n") {
		t.Fatalf("render missing rows:\n%s", rendered)
	}
	// render keeps insertion order, not score order
	if strings.Index(rendered, "bob") > strings.Index(rendered, "alice") {
		t.Fatalf("render reordered rows:\n%s", rendered)
	}
}

func TestScoreboardWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoreboard.json")
	s := NewScoreboard(path)
	s.Add("bob", 2)
	s.Add("alice", 1)
	if err := s.Write(); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) != 2 || results[0].PlayerName != "alice" {
		t.Fatalf("file holds %+v, want alice first", results)
	}
}

func TestScoreboardWithoutPathWritesNothing(t *testing.T) {
	s := NewScoreboard("")
	s.Add("alice", 1)
	if err := s.Write(); err != nil {
		t.Fatalf("write: %v", err)
	}
}

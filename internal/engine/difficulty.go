package engine

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty represents the AI difficulty level. Levels differ only in
// think time.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultySettings = map[Difficulty]struct {
	name  string
	think time.Duration
	elo   int
}{
	Easy:   {"Easy", 500 * time.Millisecond, 800},
	Medium: {"Medium", 1500 * time.Millisecond, 1400},
	Hard:   {"Hard", 3 * time.Second, 1800},
}

// ThinkTime returns the search budget per move.
func (d Difficulty) ThinkTime() time.Duration {
	if s, ok := difficultySettings[d]; ok {
		return s.think
	}
	return DefaultThinkTime
}

// EstimatedElo returns a rough playing strength for the level.
func (d Difficulty) EstimatedElo() int {
	return difficultySettings[d].elo
}

// String returns e.g. "Easy (0.5s)".
func (d Difficulty) String() string {
	s, ok := difficultySettings[d]
	if !ok {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return fmt.Sprintf("%s (%.1fs)", s.name, s.think.Seconds())
}

// ParseDifficulty accepts a level name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for d, set := range difficultySettings {
		if strings.EqualFold(s, set.name) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

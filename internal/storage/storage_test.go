package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/trilltino/xfchess/internal/engine"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != engine.Medium {
			t.Errorf("Expected medium difficulty")
		}
		if prefs.HashMB != engine.DefaultHashMB {
			t.Errorf("Expected default hash size, got %d", prefs.HashMB)
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	is := is.New(t)
	s := openTestStorage(t)

	first, err := s.IsFirstLaunch()
	is.NoErr(err)
	is.True(first)
	is.NoErr(s.MarkFirstLaunchComplete())
	first, err = s.IsFirstLaunch()
	is.NoErr(err)
	is.True(!first)

	prefs, err := s.LoadPreferences()
	is.NoErr(err)
	is.Equal(prefs.Difficulty, engine.Medium) // defaults before anything is saved

	prefs.Difficulty = engine.Hard
	prefs.PlayerColor = "black"
	is.NoErr(s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	is.NoErr(err)
	is.Equal(loaded.Difficulty, engine.Hard)
	is.Equal(loaded.PlayerColor, "black")
}

func TestRecordGame(t *testing.T) {
	is := is.New(t)
	s := openTestStorage(t)

	results := []GameResult{
		{Won: true, Difficulty: engine.Easy, Duration: time.Minute},
		{Won: true, Difficulty: engine.Hard, Duration: time.Minute},
		{Draw: true, Difficulty: engine.Hard, Duration: time.Minute},
		{Difficulty: engine.Medium, Duration: time.Minute},
	}
	for _, r := range results {
		is.NoErr(s.RecordGame(r))
	}

	stats, err := s.LoadStats()
	is.NoErr(err)
	is.Equal(stats.GamesPlayed, 4)
	is.Equal(stats.Wins, 2)
	is.Equal(stats.Draws, 1)
	is.Equal(stats.Losses, 1)
	is.Equal(stats.LongestWinStrk, 2)
	is.Equal(stats.CurrentStreak, 0)
	is.Equal(stats.WinsByDiff["hard"], 1)
	is.Equal(stats.TotalPlayTime, 4*time.Minute)
}

func TestGames(t *testing.T) {
	is := is.New(t)
	s := openTestStorage(t)

	older := &GameRecord{White: "xfchess", Black: "Player", Moves: []string{"e2e4", "e7e5"}, PlayedAt: time.Now().Add(-time.Hour)}
	newer := &GameRecord{White: "Player", Black: "xfchess", Moves: []string{"d2d4"}, Result: WhiteWins}
	is.NoErr(s.SaveGame(newer))
	is.NoErr(s.SaveGame(older))
	is.True(older.ID != "" && older.ID != newer.ID)
	is.Equal(older.Result, Unfinished)

	got, err := s.LoadGame(newer.ID)
	is.NoErr(err)
	is.Equal(got.Moves, []string{"d2d4"})
	is.Equal(got.Result, WhiteWins)

	games, err := s.ListGames()
	is.NoErr(err)
	is.Equal(len(games), 2)
	is.Equal(games[0].ID, older.ID)

	is.NoErr(s.DeleteGame(older.ID))
	_, err = s.LoadGame(older.ID)
	is.True(errors.Is(err, ErrGameNotFound))
}

func TestGamePGN(t *testing.T) {
	rec := &GameRecord{
		White:    "xfchess",
		Black:    "xfchess",
		Moves:    []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		Result:   BlackWins,
		PlayedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	pgn, err := rec.PGN()
	if err != nil {
		t.Fatal(err)
	}
	t.Log(pgn)
	for _, want := range []string{`[White "xfchess"]`, "f3", "Qh4#", "0-1"} {
		if !strings.Contains(pgn, want) {
			t.Errorf("PGN missing %q", want)
		}
	}

	rec.Moves = append(rec.Moves, "a2a5")
	if _, err := rec.PGN(); err == nil {
		t.Error("expected an error for an illegal move")
	}
}

func TestDataPaths(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	t.Setenv(DataDirEnv, dir)

	got, err := GetDataDir()
	is.NoErr(err)
	is.Equal(got, dir)

	dbDir, err := GetDatabaseDir()
	is.NoErr(err)
	is.True(strings.HasPrefix(dbDir, dir))

	s, err := NewStorage()
	is.NoErr(err)
	is.NoErr(s.SavePreferences(DefaultPreferences()))
	is.NoErr(s.Close())

	// Reopening the same directory sees the saved data.
	s, err = Open(dbDir)
	is.NoErr(err)
	defer s.Close()
	prefs, err := s.LoadPreferences()
	is.NoErr(err)
	is.Equal(prefs.Username, "Player")
}

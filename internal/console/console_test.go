package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/trilltino/xfchess/internal/engine"
	"github.com/trilltino/xfchess/internal/storage"
)

func runScript(t *testing.T, cfg Config, script string) string {
	t.Helper()
	var out bytes.Buffer
	if cfg.Engine.HashMB == 0 {
		cfg.Engine.HashMB = 1
	}
	c, err := New(&out, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{"fen", "fen\n", []string{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"}},
		{"move", "move e2e4\nhistory\nstate\n", []string{"e2e4\n", "Black to move, playing"}},
		{"bare move", "e2e4\ne7e5\nhistory\n", []string{"e2e4 e7e5"}},
		{"illegal", "e2e5\n", []string{"illegal move"}},
		{"wrong color", "e7e5\n", []string{"other side"}},
		{"unknown", "castle\n", []string{`error: unknown command "castle"`}},
		{"perft", "perft 2\n", []string{"perft 2: 400 nodes"}},
		{"board", "d\n", []string{"8 r n b q k b n r", "  a b c d e f g h"}},
		{"level", "level hard\nlevel\n", []string{"level Hard (3.0s)", "about 1800 Elo"}},
		{"bad level", "level extreme\n", []string{"error:"}},
		{"time", "time 250\n", []string{"think time 250ms"}},
		{"new fen", "new 4k3/8/8/8/8/8/4P3/4K3 b\nfen\n", []string{"4k3/8/8/8/8/8/4P3/4K3 b - - 0 1"}},
		{"quit stops", "quit\nfen\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runScript(t, Config{}, tt.script)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if tt.want == nil && out != "" {
				t.Errorf("expected no output, got:\n%s", out)
			}
		})
	}
}

func TestEngineMates(t *testing.T) {
	is := is.New(t)
	store, err := storage.Open("")
	is.NoErr(err)
	defer store.Close()

	script := "color black\nnew 6k1/5ppp/8/8/8/8/8/3R2K1 w\ngo 300\nstats\n"
	out := runScript(t, Config{Store: store, Engine: engine.Options{ThinkTime: 300e6}}, script)
	t.Log(out)
	is.True(strings.Contains(out, "bestmove d1d8"))
	is.True(strings.Contains(out, "checkmate, White wins"))
	is.True(strings.Contains(out, "info depth 1"))

	games, err := store.ListGames()
	is.NoErr(err)
	is.Equal(len(games), 1)
	is.Equal(games[0].Result, storage.WhiteWins)
	is.Equal(games[0].White, "xfchess")

	stats, err := store.LoadStats()
	is.NoErr(err)
	is.Equal(stats.GamesPlayed, 1)
	is.Equal(stats.Losses, 1)

	prefs, err := store.LoadPreferences()
	is.NoErr(err)
	is.Equal(prefs.PlayerColor, "Black")
}

func TestAutoReply(t *testing.T) {
	out := runScript(t, Config{AutoReply: true}, "time 50\ne2e4\nhistory\n")
	if !strings.Contains(out, "bestmove") {
		t.Fatalf("engine did not answer:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	history := strings.Fields(lines[len(lines)-1])
	if len(history) != 2 || history[0] != "e2e4" {
		t.Errorf("history = %v", history)
	}
}

func TestPGN(t *testing.T) {
	out := runScript(t, Config{}, "f2f3\ne7e5\ng2g4\nd8h4\npgn\n")
	for _, want := range []string{"checkmate, Black wins", "Qh4#", `[Result "0-1"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGamesListsShortIDs(t *testing.T) {
	is := is.New(t)
	store, err := storage.Open("")
	is.NoErr(err)
	defer store.Close()

	is.NoErr(store.SaveGame(&storage.GameRecord{ID: "g1", White: "Player", Black: "xfchess", Moves: []string{"e2e4"}}))
	is.NoErr(store.SaveGame(&storage.GameRecord{White: "xfchess", Black: "Player"}))

	out := runScript(t, Config{Store: store}, "games\nnew\nnew\n")
	t.Log(out)
	is.True(strings.Contains(out, "g1 "))
	is.True(strings.Contains(out, "Player vs xfchess * (1 moves"))
	is.Equal(strings.Count(out, " vs "), 2)
}

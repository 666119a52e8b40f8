package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	store, err := Open("~/.circlepop/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	home, _ := os.UserHomeDir()
	if _, err := os.Stat(filepath.Join(home, ".circlepop", "scores.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("circlepop4", "ann", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("circlepop3", "ann", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("circlepop4", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].Player != "ann" {
		t.Errorf("Unexpected entry: %+v", scores[0])
	}

	other, err := store.TopScores("circlepop3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 circlepop3 score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("circlepop4", "", (i+1)*100)
	}

	scores, err := store.TopScores("circlepop4", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.AllScores("circlepop4")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("circlepop5")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty variant, got %d", high)
	}

	store.SaveScore("circlepop5", "", 100)
	store.SaveScore("circlepop5", "", 300)
	store.SaveScore("circlepop5", "", 200)

	high, err = store.HighScore("circlepop5")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveGame(t *testing.T) {
	store := openTestStore(t)

	records := []GameRecord{
		{GameID: "circlepop4", Player: "ann", Score: 120, MovesUsed: 30, LargestGroup: 9, TotalCleared: 140, Seed: 1, EndReason: "out_of_moves"},
		{GameID: "circlepop4", Player: "bob", Score: 80, MovesUsed: 22, LargestGroup: 16, TotalCleared: 90, Seed: 2, EndReason: "no_moves"},
		{GameID: "circlepop3", Player: "ann", Score: 40, MovesUsed: 25, LargestGroup: 5, TotalCleared: 60, Seed: 3, EndReason: "out_of_moves"},
	}
	for _, r := range records {
		if _, err := store.SaveGame(r); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	recent, err := store.RecentGames("circlepop4", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(recent))
	}
	if recent[0].Player != "bob" || recent[0].EndReason != "no_moves" || recent[0].Seed != 2 {
		t.Errorf("Newest game first expected, got %+v", recent[0])
	}

	all, err := store.RecentGames("", 10)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 games across variants, got %d", len(all))
	}

	// Each game also lands on the score table.
	if high, _ := store.HighScore("circlepop4"); high != 120 {
		t.Errorf("Expected high score 120, got %d", high)
	}

	stats, err := store.Stats("circlepop4")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 120 || stats.AvgScore != 100 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LargestGroup != 16 || stats.TotalCleared != 230 {
		t.Errorf("Unexpected pop stats: %+v", stats)
	}
}

func TestStoreStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("circlepop4")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("circlepop4", "", 100)
	store.SaveGame(GameRecord{GameID: "circlepop4", Score: 200})
	store.SaveScore("circlepop3", "", 300)

	if err := store.ClearScores("circlepop4"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("circlepop4", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if games, _ := store.RecentGames("circlepop4", 10); len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
	if scores, _ := store.TopScores("circlepop3", 10); len(scores) != 1 {
		t.Error("Other variants should not be affected by the clear")
	}
}

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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{SceneID: "ride", Score: 100, Outcome: "fell_left", Seed: 1, Speed: 20},
		{SceneID: "ride", Score: 50, Outcome: "fell_right", Seed: 2, Speed: 25},
		{SceneID: "ride", Score: 200, Outcome: "fell_right", Seed: 3, Speed: 30},
		{SceneID: "other", Score: 500, Outcome: "fell_left", Seed: 4, Speed: 20},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("ride", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	// Should be sorted descending
	if top[0].Score != 200 || top[1].Score != 100 || top[2].Score != 50 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
	if top[0].Seed != 3 || top[0].Speed != 30 || top[0].Outcome != "fell_right" {
		t.Errorf("Run fields not preserved: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	other, err := store.TopRuns("other", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 run for other scene, got %d", len(other))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{SceneID: "ride", Score: (i + 1) * 100})
	}

	top, err := store.TopRuns("ride", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("ride")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty scene, got %d", best)
	}

	store.SaveRun(Run{SceneID: "ride", Score: 100})
	store.SaveRun(Run{SceneID: "ride", Score: 300})
	store.SaveRun(Run{SceneID: "ride", Score: 200})

	best, err = store.BestScore("ride")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{SceneID: "ride", Score: 100})
	store.SaveRun(Run{SceneID: "ride", Score: 200})
	store.SaveRun(Run{SceneID: "other", Score: 300})

	if err := store.ClearRuns("ride"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	rideRuns, _ := store.TopRuns("ride", 10)
	if len(rideRuns) != 0 {
		t.Errorf("Expected 0 ride runs after clear, got %d", len(rideRuns))
	}

	otherRuns, _ := store.TopRuns("other", 10)
	if len(otherRuns) != 1 {
		t.Errorf("Other scene should not be affected by clearing ride")
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(Run{SceneID: "ride", Score: i * 10})
	}

	runs, err := store.AllRuns("ride")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("ride")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty scene = %+v", empty)
	}

	store.SaveRun(Run{SceneID: "ride", Score: 10, Outcome: "fell_left"})
	store.SaveRun(Run{SceneID: "ride", Score: 30, Outcome: "fell_right"})
	store.SaveRun(Run{SceneID: "ride", Score: 20, Outcome: "fell_left"})
	store.SaveRun(Run{SceneID: "other", Score: 5, Outcome: "fell_right"})

	stats, err := store.Stats("ride")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.BestScore != 30 || stats.TotalTicks != 60 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.FellLeft != 2 || stats.FellRight != 1 {
		t.Errorf("FellLeft/FellRight = %d/%d, expected 2/1", stats.FellLeft, stats.FellRight)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllStats() returned %d scenes, expected 2", len(all))
	}
	if all["other"].RunsCount != 1 || all["other"].FellRight != 1 {
		t.Errorf("AllStats()[other] = %+v", all["other"])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/nested/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with home path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "nested", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under home directory")
	}
}

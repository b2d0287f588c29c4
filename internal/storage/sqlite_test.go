package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/replay"
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

func sampleRecording(seed int64, score int) replay.Recording {
	started := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	return replay.Recording{
		Seed:      seed,
		Preset:    "hard",
		Config:    config.DefaultBlockfallConfig(),
		StartedAt: started,
		EndedAt:   started.Add(95 * time.Second),
		Score:     score,
		Lines:     score / 100,
		Ticks:     240,
		GameOver:  true,
		Events: []replay.Event{
			{Kind: replay.EventTick, At: 400 * time.Millisecond},
			{Kind: "rotate", At: 512345678 * time.Nanosecond},
			{Kind: replay.EventTick, At: 800 * time.Millisecond},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRecording(sampleRecording(1, 100)); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Replays(10)
	if err != nil {
		t.Fatalf("Replays() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 replay after reopen, got %d", len(entries))
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	want := sampleRecording(42, 400)
	want.Config.Speed.InitialMS = 250

	id, err := store.SaveRecording(want)
	if err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	got, err := store.LoadReplay(id)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if got == nil {
		t.Fatal("LoadReplay() returned nil for a saved replay")
	}

	if got.ID != id || got.Seed != 42 || got.Preset != "hard" {
		t.Errorf("header = id %d seed %d preset %q", got.ID, got.Seed, got.Preset)
	}
	if got.Score != 400 || got.Lines != 4 || got.Ticks != 240 || !got.GameOver {
		t.Errorf("outcome = %+v", got)
	}
	if got.Config != want.Config {
		t.Errorf("config = %+v, expected %+v", got.Config, want.Config)
	}
	if !got.StartedAt.Equal(want.StartedAt) || got.Duration() != 95*time.Second {
		t.Errorf("times = %v .. %v", got.StartedAt, got.EndedAt)
	}

	if len(got.Events) != len(want.Events) {
		t.Fatalf("Expected %d events, got %d", len(want.Events), len(got.Events))
	}
	for i := range want.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], want.Events[i])
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.LoadReplay(999)
	if err != nil {
		t.Fatalf("LoadReplay() failed: %v", err)
	}
	if rec != nil {
		t.Error("Expected nil for a missing replay")
	}
}

func TestStoreReplaysNewestFirst(t *testing.T) {
	store := openTestStore(t)

	// Scores deliberately out of order: listing is by recency, not score.
	for i, score := range []int{300, 0, 1600, 100, 900} {
		if _, err := store.SaveRecording(sampleRecording(int64(i), score)); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}

	entries, err := store.Replays(3)
	if err != nil {
		t.Fatalf("Replays() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 replays with limit, got %d", len(entries))
	}
	if entries[0].Seed != 4 || entries[1].Seed != 3 || entries[2].Seed != 2 {
		t.Errorf("Replays not newest first: %d %d %d", entries[0].Seed, entries[1].Seed, entries[2].Seed)
	}
	if entries[0].Events != 3 {
		t.Errorf("Expected 3 events in summary, got %d", entries[0].Events)
	}
	if entries[0].Duration() != 95*time.Second {
		t.Errorf("Duration() = %v", entries[0].Duration())
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveRecording(sampleRecording(1, 100))
	drop, _ := store.SaveRecording(sampleRecording(2, 200))

	if err := store.DeleteReplay(drop); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}

	if rec, _ := store.LoadReplay(drop); rec != nil {
		t.Error("Deleted replay still loads")
	}
	if rec, _ := store.LoadReplay(keep); rec == nil || len(rec.Events) != 3 {
		t.Error("Other replay should not be affected")
	}

	var orphans int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_events WHERE replay_id = ?", drop).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("Expected events to be deleted, %d left", orphans)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	early := sampleRecording(1, 100)
	late := sampleRecording(2, 400)
	late.StartedAt = late.StartedAt.Add(time.Hour)
	late.EndedAt = late.EndedAt.Add(time.Hour)
	store.SaveRecording(late)
	store.SaveRecording(early)

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Sessions != 2 || stats.TotalLines != 5 || stats.TotalTicks != 480 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.LastPlayed.Equal(late.StartedAt) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, late.StartedAt)
	}
}

func TestStoreRecordedSessionVerifies(t *testing.T) {
	store := openTestStore(t)
	rec := replay.NewRecorder(store, "normal", log.New(io.Discard))

	cfg := config.DefaultBlockfallConfig()
	started := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	session, err := engine.NewSession(cfg, 8, started)
	if err != nil {
		t.Fatal(err)
	}

	rec.SessionStarted(cfg, 8, started)
	now := started
	for i := range 300 {
		if session.GameOver() {
			break
		}
		now = now.Add(session.Interval())
		rec.Ticked(now, session.Tick(now))
		if i%2 == 0 && !session.GameOver() {
			rec.Commanded(engine.CommandMoveRight, now, session.MoveRight())
		}
	}
	rec.SessionEnded(session.Snapshot(), now)

	if rec.LastID() == 0 {
		t.Fatal("recorder did not save to the store")
	}
	loaded, err := store.LoadReplay(rec.LastID())
	if err != nil || loaded == nil {
		t.Fatalf("LoadReplay() = %v, %v", loaded, err)
	}
	if _, err := replay.Verify(*loaded); err != nil {
		t.Errorf("Verify() after round trip failed: %v", err)
	}
}

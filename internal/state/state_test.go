package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nandakim/bgm/internal/store"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func TestGetSettings_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings on empty db, got %+v", *s)
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	saved := Settings{Volume: 60, Muted: true, Mode: store.Random}
	if err := saveSettings(db, saved); err != nil {
		t.Fatalf("saveSettings failed: %v", err)
	}

	got, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if *got != saved {
		t.Errorf("got %+v, want %+v", *got, saved)
	}
}

func TestSaveSettings_Overwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveSettings(db, Settings{Volume: 60, Muted: true, Mode: store.Random}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := saveSettings(db, Settings{Volume: 80, Muted: false, Mode: store.Sequential}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if got.Volume != 80 || got.Muted || got.Mode != store.Sequential {
		t.Errorf("second save not applied, got %+v", *got)
	}
}

func TestGetSettings_ClampsVolume(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO player_settings (id, volume, muted, playback_mode) VALUES (1, 250, 0, 'sequential')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	got, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if got.Volume != 100 {
		t.Errorf("volume = %d, want clamped to 100", got.Volume)
	}
}

func TestManager_DebouncedSave(t *testing.T) {
	m, err := OpenAt(filepath.Join(t.TempDir(), "bgm.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer m.Close()

	// Rapid updates should collapse into the last value.
	m.SaveSettings(Settings{Volume: 10, Mode: store.Sequential})
	m.SaveSettings(Settings{Volume: 20, Mode: store.Sequential})
	m.SaveSettings(Settings{Volume: 30, Muted: true, Mode: store.Random})

	time.Sleep(saveDebounce + 200*time.Millisecond)

	got, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Volume != 30 || !got.Muted || got.Mode != store.Random {
		t.Errorf("got %+v, want last saved value", *got)
	}
}

func TestManager_CloseFlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bgm.db")

	m, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}

	m.SaveSettings(Settings{Volume: 55, Mode: store.Sequential})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2, err := OpenAt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m2.Close()

	got, err := m2.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Volume != 55 {
		t.Errorf("volume = %d, want 55 flushed on close", got.Volume)
	}
}

package state

import (
	"database/sql"

	"github.com/nandakim/bgm/internal/store"
)

// Settings holds the persisted player settings.
type Settings struct {
	Volume int // 0-100
	Muted  bool
	Mode   store.Mode
}

// DefaultSettings is what a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{Volume: 100, Muted: false, Mode: store.Sequential}
}

func getSettings(db *sql.DB) (*Settings, error) {
	var volume int
	var muted bool
	var mode string

	row := db.QueryRow(`SELECT volume, muted, playback_mode FROM player_settings WHERE id = 1`)
	err := row.Scan(&volume, &muted, &mode)
	if err == sql.ErrNoRows {
		// Nothing saved yet; the caller falls back to its own defaults.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	return &Settings{
		Volume: volume,
		Muted:  muted,
		Mode:   store.ParseMode(mode),
	}, nil
}

func saveSettings(db *sql.DB, s Settings) error {
	_, err := db.Exec(`
		INSERT INTO player_settings (id, volume, muted, playback_mode)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted,
			playback_mode = excluded.playback_mode
	`, s.Volume, s.Muted, s.Mode.String())
	return err
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/averma/handwave/internal/gesture"
)

const scrollBaselineKey = "scroll.baseline"

// SettingsRepository provides key-value access to persisted settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Set stores a setting, replacing any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Get retrieves a setting value. Returns ErrNotFound for missing keys.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// SetGestureEnabled persists one gesture kind's enable flag.
func (r *SettingsRepository) SetGestureEnabled(kind gesture.Kind, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return r.Set("gesture."+string(kind), value)
}

// GestureFlags loads all persisted gesture enable flags. Kinds with no
// stored flag are absent from the map.
func (r *SettingsRepository) GestureFlags() (map[gesture.Kind]bool, error) {
	flags := make(map[gesture.Kind]bool)
	for _, kind := range gesture.Kinds() {
		value, err := r.Get("gesture." + string(kind))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		flags[kind] = value == "1"
	}
	return flags, nil
}

// SetScrollBaseline persists the open-palm index-reach calibration.
func (r *SettingsRepository) SetScrollBaseline(baseline float64) error {
	return r.Set(scrollBaselineKey, strconv.FormatFloat(baseline, 'f', -1, 64))
}

// ScrollBaseline loads the persisted calibration baseline. Returns
// ErrNotFound when never calibrated.
func (r *SettingsRepository) ScrollBaseline() (float64, error) {
	value, err := r.Get(scrollBaselineKey)
	if err != nil {
		return 0, err
	}
	baseline, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse scroll baseline: %w", err)
	}
	return baseline, nil
}

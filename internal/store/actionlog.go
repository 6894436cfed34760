package store

import (
	"database/sql"
	"time"

	"github.com/averma/handwave/internal/input"
)

// ActionEntry is one logged OS-action dispatch.
type ActionEntry struct {
	ID        string
	Action    input.Action
	Delta     int
	OK        bool
	Error     string
	CreatedAt time.Time
}

// ActionLogRepository records dispatched actions. It satisfies the
// dispatcher's Recorder interface.
type ActionLogRepository struct {
	db *sql.DB
}

// ActionLog returns the action log repository for this store.
func (s *Store) ActionLog() *ActionLogRepository {
	return &ActionLogRepository{db: s.db}
}

// Record logs one dispatched request and its outcome. Logging failures
// are swallowed; the action log is diagnostic only.
func (r *ActionLogRepository) Record(req input.Request, injectErr error) {
	ok := 1
	errText := ""
	if injectErr != nil {
		ok = 0
		errText = injectErr.Error()
	}
	r.db.Exec(
		`INSERT INTO action_log (id, action, delta, ok, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, string(req.Action), req.Delta, ok, errText, req.Time,
	)
}

// Recent returns the most recent entries, newest first.
func (r *ActionLogRepository) Recent(limit int) ([]ActionEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(
		`SELECT id, action, delta, ok, error, created_at
		 FROM action_log ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ActionEntry
	for rows.Next() {
		var e ActionEntry
		var ok int
		if err := rows.Scan(&e.ID, &e.Action, &e.Delta, &ok, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OK = ok == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the cutoff and returns how many were
// removed.
func (r *ActionLogRepository) Prune(before time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM action_log WHERE created_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

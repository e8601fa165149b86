package repos

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
)

// SettingsRepo is a typed get/set store for named JSON documents: the store
// profile, language choice and other auxiliary back-office state.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get unmarshals the named document into out; returns false when unset.
func (r *SettingsRepo) Get(name string, out any) (bool, error) {
	var raw string
	if err := r.db.Get(&raw, `SELECT value FROM settings WHERE name = ?`, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SettingsRepo) Put(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO settings(name, value, updated_at)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, name, string(raw))
	return err
}

func (r *SettingsRepo) Remove(name string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE name = ?`, name)
	return err
}

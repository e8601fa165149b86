package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, first_name, last_name, email, mobile, password_hash, COALESCE(created_at,'') AS created_at`

// ByIdentifier finds a shopper by email or mobile number; login accepts either.
func (r *UserRepo) ByIdentifier(identifier string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT `+userCols+` FROM users
	  WHERE LOWER(email) = LOWER(?) OR mobile = ?
	`, identifier, identifier)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	if err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether any user already holds the email or the mobile.
func (r *UserRepo) Exists(email, mobile string) (bool, error) {
	var n int
	err := r.DB.Get(&n, `
	  SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER(?) OR mobile = ?
	`, email, mobile)
	return n > 0, err
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id, first_name, last_name, email, mobile, password_hash)
	  VALUES(?,?,?,?,?,?)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.Mobile, u.Hash)
	return err
}

func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	return out, err
}

// UpdateContact edits the fields the back-office customer page exposes.
func (r *UserRepo) UpdateContact(id, firstName, lastName, email, mobile string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET first_name=?, last_name=?, email=?, mobile=? WHERE id=?
	`, firstName, lastName, email, mobile, id)
	return err
}

// Delete removes a shopper and their cart and sessions; orders stay for audit.
func (r *UserRepo) Delete(id string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var sessionIDs []string
	if err := tx.Select(&sessionIDs, `SELECT id FROM sessions WHERE user_id = ?`, id); err != nil {
		return err
	}
	if len(sessionIDs) > 0 {
		query, args, err := sqlx.In(`DELETE FROM cart_items WHERE session_id IN (?)`, sessionIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
		query, args, err = sqlx.In(`DELETE FROM sessions WHERE id IN (?)`, sessionIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// ---------- shopper sessions ----------

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id, user_id, last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = CURRENT_TIMESTAMP
	`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id, u.first_name, u.last_name, u.email, u.mobile, u.password_hash,
	         COALESCE(u.created_at,'') AS created_at
	  FROM sessions s JOIN users u ON u.id = s.user_id
	  WHERE s.id = ?
	`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return err
}

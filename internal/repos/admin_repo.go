package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// AdminRepo holds back-office accounts, the derived staff directory and admin
// sessions. It is deliberately separate from UserRepo: the shopper and admin
// login states are parallel and must not interfere.
type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

const adminCols = `id, name, COALESCE(contact,'') AS contact, email, role, password_hash, published`

func (r *AdminRepo) ByEmail(email string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := r.db.Get(&u, `SELECT `+adminCols+` FROM admin_users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepo) ByID(id string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := r.db.Get(&u, `SELECT `+adminCols+` FROM admin_users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepo) Exists(email string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM admin_users WHERE LOWER(email)=LOWER(?)`, email)
	return n > 0, err
}

func (r *AdminRepo) Create(u domain.AdminUser) error {
	_, err := r.db.Exec(`
	  INSERT INTO admin_users(id,name,contact,email,role,password_hash,published)
	  VALUES(?,?,?,?,?,?,?)
	`, u.ID, u.Name, u.Contact, u.Email, u.Role, u.Hash, u.Published)
	return err
}

func (r *AdminRepo) List() ([]domain.AdminUser, error) {
	out := []domain.AdminUser{}
	err := r.db.Select(&out, `SELECT `+adminCols+` FROM admin_users ORDER BY name`)
	return out, err
}

func (r *AdminRepo) Update(u domain.AdminUser) error {
	_, err := r.db.Exec(`
	  UPDATE admin_users SET name=?, contact=?, email=?, role=?, published=? WHERE id=?
	`, u.Name, u.Contact, u.Email, u.Role, u.Published, u.ID)
	return err
}

func (r *AdminRepo) UpdatePassword(id, hash string) error {
	_, err := r.db.Exec(`UPDATE admin_users SET password_hash=? WHERE id=?`, hash, id)
	return err
}

func (r *AdminRepo) SetPublished(id string, published bool) error {
	_, err := r.db.Exec(`UPDATE admin_users SET published=? WHERE id=?`, published, id)
	return err
}

func (r *AdminRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM admin_users WHERE id=?`, id)
	return err
}

// ---------- staff directory ----------

const staffCols = `id, name, COALESCE(contact,'') AS contact, email, role, status, join_date, published`

func (r *AdminRepo) StaffByEmail(email string) (*domain.StaffRecord, error) {
	var s domain.StaffRecord
	if err := r.db.Get(&s, `SELECT `+staffCols+` FROM staff WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AdminRepo) StaffExists(email string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM staff WHERE LOWER(email)=LOWER(?)`, email)
	return n > 0, err
}

func (r *AdminRepo) CreateStaff(s domain.StaffRecord) error {
	_, err := r.db.Exec(`
	  INSERT INTO staff(id,name,contact,email,role,status,join_date,published)
	  VALUES(?,?,?,?,?,?,?,?)
	`, s.ID, s.Name, s.Contact, s.Email, s.Role, s.Status, s.JoinDate, s.Published)
	return err
}

func (r *AdminRepo) ListStaff() ([]domain.StaffRecord, error) {
	out := []domain.StaffRecord{}
	err := r.db.Select(&out, `SELECT `+staffCols+` FROM staff ORDER BY join_date DESC, name`)
	return out, err
}

func (r *AdminRepo) UpdateStaff(s domain.StaffRecord) error {
	_, err := r.db.Exec(`
	  UPDATE staff SET name=?, contact=?, email=?, role=?, status=?, published=? WHERE id=?
	`, s.Name, s.Contact, s.Email, s.Role, s.Status, s.Published, s.ID)
	return err
}

func (r *AdminRepo) SetStaffPublished(id string, published bool) error {
	status := "Inactive"
	if published {
		status = "Active"
	}
	_, err := r.db.Exec(`UPDATE staff SET published=?, status=? WHERE id=?`, published, status, id)
	return err
}

func (r *AdminRepo) DeleteStaff(id string) error {
	_, err := r.db.Exec(`DELETE FROM staff WHERE id=?`, id)
	return err
}

// ---------- admin sessions ----------

func (r *AdminRepo) BindSession(asid, adminID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO admin_sessions(id, admin_id, last_seen)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET admin_id = excluded.admin_id, last_seen = CURRENT_TIMESTAMP
	`, asid, adminID)
	return err
}

func (r *AdminRepo) SessionAdmin(asid string) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := r.db.Get(&u, `
	  SELECT a.id, a.name, COALESCE(a.contact,'') AS contact, a.email, a.role,
	         a.password_hash, a.published
	  FROM admin_sessions s JOIN admin_users a ON a.id = s.admin_id
	  WHERE s.id = ?
	`, asid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AdminRepo) UnbindSession(asid string) error {
	_, err := r.db.Exec(`UPDATE admin_sessions SET admin_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?`, asid)
	return err
}

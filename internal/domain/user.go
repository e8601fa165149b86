package domain

type User struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Email     string `db:"email" json:"email"`
	Mobile    string `db:"mobile" json:"mobile"`
	Hash      string `db:"password_hash" json:"-"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Admin roles.
var AdminRoles = []string{"SuperAdmin", "CEO", "Manager", "Designer", "Technician"}

func ValidAdminRole(r string) bool {
	for _, v := range AdminRoles {
		if v == r {
			return true
		}
	}
	return false
}

// AdminUser is a back-office account. It lives in a store separate from
// shoppers; the two session flows never overlap.
type AdminUser struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Contact   string `db:"contact" json:"contact"`
	Email     string `db:"email" json:"email"`
	Role      string `db:"role" json:"role"`
	Hash      string `db:"password_hash" json:"-"`
	Published bool   `db:"published" json:"published"`
}

// StaffRecord is derived from an AdminUser on first successful login or
// registration for that email.
type StaffRecord struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Contact   string `db:"contact" json:"contact"`
	Email     string `db:"email" json:"email"`
	Role      string `db:"role" json:"role"`
	Status    string `db:"status" json:"status"`
	JoinDate  string `db:"join_date" json:"joinDate"`
	Published bool   `db:"published" json:"published"`
}

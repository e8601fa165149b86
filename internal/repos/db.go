package repos

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT 'Uncategorized',
  price NUMERIC NOT NULL CHECK (price >= 0),
  sale_price NUMERIC NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  status TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Active','Inactive')),
  published INTEGER NOT NULL DEFAULT 1,
  image TEXT,
  sku TEXT,
  description TEXT,
  slug TEXT,
  tags TEXT,
  latest INTEGER NOT NULL DEFAULT 0,
  date_added TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_title      ON products(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_products_date_added ON products(date_added);

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  parent TEXT,
  image TEXT,
  status TEXT NOT NULL DEFAULT 'Active',
  subcategories_json TEXT NOT NULL DEFAULT '[]'
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug);

CREATE TABLE IF NOT EXISTS coupons(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL CHECK (type IN ('percentage','fixed')),
  value NUMERIC NOT NULL CHECK (value > 0),
  min_order NUMERIC NOT NULL DEFAULT 0,
  start_date TEXT,
  end_date TEXT,
  usage_limit INTEGER NOT NULL DEFAULT 1,
  used_count INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'Active',
  apply_scope TEXT NOT NULL DEFAULT 'store' CHECK (apply_scope IN ('store','categories','products')),
  selected_categories TEXT NOT NULL DEFAULT '',
  description TEXT
);

-- Carts: one row per (session, product); adding an existing product increments.
CREATE TABLE IF NOT EXISTS cart_items(
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (session_id, product_id)
);

-- Orders: order_id is a random 6-digit number and deliberately carries no
-- unique constraint; rows are addressed by rowid.
CREATE TABLE IF NOT EXISTS orders(
  order_id INTEGER NOT NULL,
  session_id TEXT,
  full_name TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  district TEXT NOT NULL,
  state TEXT NOT NULL,
  pincode TEXT NOT NULL,
  country TEXT NOT NULL,
  payment_method TEXT NOT NULL CHECK (payment_method IN ('card','upi','cod')),
  payment_status TEXT NOT NULL CHECK (payment_status IN ('Paid','Pending')),
  card_type TEXT NOT NULL DEFAULT '',
  card_last4 TEXT NOT NULL DEFAULT '',
  upi_id TEXT NOT NULL DEFAULT '',
  coupon_code TEXT NOT NULL DEFAULT '',
  discount NUMERIC NOT NULL DEFAULT 0,
  shipping NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL,
  date TEXT NOT NULL,
  delivery_date TEXT NOT NULL,
  order_status TEXT NOT NULL DEFAULT 'Pending'
);
CREATE INDEX IF NOT EXISTS idx_orders_order_id ON orders(order_id);
CREATE INDEX IF NOT EXISTS idx_orders_session  ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_orders_date     ON orders(date);

CREATE TABLE IF NOT EXISTS order_items(
  order_rowid INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  title TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_rowid);

-- Shoppers & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL,
  mobile TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email  ON users(LOWER(email));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_mobile ON users(mobile);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Back-office accounts, staff and admin sessions; fully separate from the
-- shopper flow so the two login states never interfere.
CREATE TABLE IF NOT EXISTS admin_users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('SuperAdmin','CEO','Manager','Designer','Technician')),
  password_hash TEXT NOT NULL,
  published INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admin_users_email ON admin_users(LOWER(email));

CREATE TABLE IF NOT EXISTS staff(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  contact TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL,
  role TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Active',
  join_date TEXT NOT NULL,
  published INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_email ON staff(LOWER(email));

CREATE TABLE IF NOT EXISTS admin_sessions(
  id TEXT PRIMARY KEY,
  admin_id TEXT NULL REFERENCES admin_users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);

-- Auxiliary named JSON documents (store profile, language, UI state).
CREATE TABLE IF NOT EXISTS settings(
  name TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// SeedSuperAdmin ensures the built-in SuperAdmin account exists (idempotent;
// safe to run every start). It stands in for the original deployment's
// hardcoded admin identity, with a hashed credential.
func SeedSuperAdmin(db *sqlx.DB, email, password string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM admin_users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO admin_users(id,name,contact,email,role,password_hash,published)
		VALUES(?,?,?,?,?,?,1)
	`, uuid.NewString(), "Super Admin", "", email, "SuperAdmin", string(h))
	if err != nil {
		return err
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM staff WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = db.Exec(`
		INSERT INTO staff(id,name,contact,email,role,status,join_date,published)
		VALUES(?,?,?,?,?,?,?,1)
	`, uuid.NewString(), "Super Admin", "", email, "SuperAdmin", "Active", time.Now().Format("2006-01-02"))
	return err
}

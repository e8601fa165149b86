package repos

import (
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine joins a cart row with the product it references. Price is the
// product's current price, read at view time: if an admin edits the price
// mid-session the cart total moves with it. That drift is specified behavior.
type CartLine struct {
	ProductID string  `db:"product_id" json:"productId"`
	Title     string  `db:"title" json:"title"`
	Image     string  `db:"image" json:"image"`
	Price     float64 `db:"price" json:"price"`
	Qty       int     `db:"qty" json:"quantity"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
	Category  string  `db:"category" json:"category"`
}

// AddOne inserts a line with qty 1, or bumps the existing line by 1.
func (r *CartRepo) AddOne(sessionID, productID string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(session_id,product_id,qty,created_at)
		VALUES(?,?,1,CURRENT_TIMESTAMP)
		ON CONFLICT(session_id,product_id) DO UPDATE
		SET qty = cart_items.qty + 1, updated_at = CURRENT_TIMESTAMP
	`, sessionID, productID)
	return err
}

func (r *CartRepo) SetQty(sessionID, productID string, qty int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE session_id = ? AND product_id = ?
	`, qty, sessionID, productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *CartRepo) Remove(sessionID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE session_id = ? AND product_id = ?`, sessionID, productID)
	return err
}

func (r *CartRepo) Clear(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE session_id = ?`, sessionID)
	return err
}

func (r *CartRepo) Lines(sessionID string) ([]CartLine, error) {
	lines := []CartLine{}
	err := r.db.Select(&lines, `
	  SELECT ci.product_id, p.title, COALESCE(p.image,'') AS image, p.price, ci.qty,
	         (ci.qty * p.price) AS subtotal, p.category
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.session_id = ?
	  ORDER BY ci.created_at
	`, sessionID)
	return lines, err
}

package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `
  rowid, order_id, COALESCE(session_id,'') AS session_id, full_name, address, city,
  district, state, pincode, country, payment_method, payment_status, card_type,
  card_last4, upi_id, coupon_code, discount, shipping, total_price, date,
  delivery_date, order_status`

// Create inserts the order header and its frozen line items in one transaction.
func (r *OrderRepo) Create(o domain.Order) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO orders(order_id, session_id, full_name, address, city, district,
	    state, pincode, country, payment_method, payment_status, card_type,
	    card_last4, upi_id, coupon_code, discount, shipping, total_price, date,
	    delivery_date, order_status)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.OrderID, o.SessionID, o.FullName, o.Address, o.City, o.District, o.State,
		o.Pincode, o.Country, o.PaymentMethod, o.PaymentStatus, o.CardType,
		o.CardLast4, o.UPIID, o.CouponCode, o.Discount, o.Shipping, o.TotalPrice,
		o.Date, o.DeliveryDate, o.OrderStatus)
	if err != nil {
		return 0, err
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_rowid, product_id, title, image, unit_price, qty)
		  VALUES(?,?,?,?,?,?)
		`, rowID, it.ProductID, it.Title, it.Image, it.UnitPrice, it.Qty); err != nil {
			return 0, err
		}
	}
	return rowID, tx.Commit()
}

func (r *OrderRepo) items(rowID int64) ([]domain.OrderItem, error) {
	items := []domain.OrderItem{}
	err := r.db.Select(&items, `
	  SELECT order_rowid, product_id, title, image, unit_price, qty
	  FROM order_items WHERE order_rowid = ?
	`, rowID)
	return items, err
}

// Get returns a single order with items, addressed by rowid.
func (r *OrderRepo) Get(rowID int64) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE rowid = ?`, rowID); err != nil {
		return domain.Order{}, err
	}
	items, err := r.items(rowID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) attachItems(orders []domain.Order) error {
	for i := range orders {
		items, err := r.items(orders[i].RowID)
		if err != nil {
			return err
		}
		orders[i].Items = items
	}
	return nil
}

// ListAll returns the full order history, newest first, items included. The
// dashboard recomputes statistics from this list on every poll.
func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := r.db.Select(&orders, `SELECT `+orderCols+` FROM orders ORDER BY rowid DESC`); err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := r.db.Select(&orders, `
	  SELECT `+orderCols+` FROM orders WHERE session_id = ? ORDER BY rowid DESC
	`, sessionID); err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByUser returns orders for a user via session linkage, so history placed
// before login on the same session still shows up after.
func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var sessionIDs []string
	if err := r.db.Select(&sessionIDs, `SELECT id FROM sessions WHERE user_id = ?`, userID); err != nil {
		return nil, err
	}
	orders := []domain.Order{}
	if len(sessionIDs) == 0 {
		return orders, nil
	}
	query, args, err := sqlx.In(`SELECT `+orderCols+` FROM orders WHERE session_id IN (?) ORDER BY rowid DESC`, sessionIDs)
	if err != nil {
		return nil, err
	}
	if err := r.db.Select(&orders, query, args...); err != nil {
		return nil, err
	}
	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) UpdateStatus(rowID int64, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET order_status = ? WHERE rowid = ?`, status, rowID)
	return err
}

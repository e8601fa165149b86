package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponCols = `
  id, code, type, value, min_order, COALESCE(start_date,'') AS start_date,
  COALESCE(end_date,'') AS end_date, usage_limit, used_count, status, apply_scope,
  selected_categories, COALESCE(description,'') AS description`

func (r *CouponRepo) List() ([]domain.Coupon, error) {
	out := []domain.Coupon{}
	err := r.db.Select(&out, `SELECT `+couponCols+` FROM coupons ORDER BY code`)
	return out, err
}

func (r *CouponRepo) Get(id string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `SELECT `+couponCols+` FROM coupons WHERE id = ?`, id)
	return c, err
}

func (r *CouponRepo) ByCode(code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `SELECT `+couponCols+` FROM coupons WHERE UPPER(code) = UPPER(?)`, code)
	return c, err
}

func (r *CouponRepo) CodeExists(code, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM coupons WHERE UPPER(code) = UPPER(?) AND id != ?`, code, excludeID)
	return n > 0, err
}

func (r *CouponRepo) Upsert(c domain.Coupon) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO coupons(id,code,type,value,min_order,start_date,end_date,
	                      usage_limit,used_count,status,apply_scope,selected_categories,description)
	  VALUES(:id,:code,:type,:value,:min_order,:start_date,:end_date,
	         :usage_limit,:used_count,:status,:apply_scope,:selected_categories,:description)
	  ON CONFLICT(id) DO UPDATE SET
	    code=excluded.code, type=excluded.type, value=excluded.value,
	    min_order=excluded.min_order, start_date=excluded.start_date,
	    end_date=excluded.end_date, usage_limit=excluded.usage_limit,
	    status=excluded.status, apply_scope=excluded.apply_scope,
	    selected_categories=excluded.selected_categories, description=excluded.description
	`, c)
	return err
}

func (r *CouponRepo) SetStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE coupons SET status = ? WHERE id = ?`, status, id)
	return err
}

// IncrementUsage bumps used_count if the limit has headroom; reports whether a
// use was recorded.
func (r *CouponRepo) IncrementUsage(id string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE coupons SET used_count = used_count + 1
	  WHERE id = ? AND used_count < usage_limit
	`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DecrementUsage returns a consumed use, for checkouts that redeemed a coupon
// and then failed to persist the order.
func (r *CouponRepo) DecrementUsage(id string) error {
	_, err := r.db.Exec(`
	  UPDATE coupons SET used_count = used_count - 1
	  WHERE id = ? AND used_count > 0
	`, id)
	return err
}

func (r *CouponRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM coupons WHERE id = ?`, id)
	return err
}

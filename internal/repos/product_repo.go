package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, title, category, price, sale_price, stock, status, published,
  COALESCE(image,'') AS image,
  COALESCE(sku,'') AS sku, COALESCE(description,'') AS description,
  COALESCE(slug,'') AS slug, COALESCE(tags,'') AS tags, latest,
  COALESCE(date_added,'') AS date_added`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY date_added DESC`)
	return out, err
}

// ListPublished is the storefront view: published, Active products only.
func (r *ProductRepo) ListPublished() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE published = 1 AND status = 'Active'
	  ORDER BY date_added DESC
	`)
	return out, err
}

func (r *ProductRepo) ListLatest() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+` FROM products
	  WHERE latest = 1 AND published = 1 AND status = 'Active'
	  ORDER BY date_added DESC
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Upsert(p domain.Product) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO products(id,title,category,price,sale_price,stock,status,published,
	                       image,sku,description,slug,tags,latest,date_added)
	  VALUES(:id,:title,:category,:price,:sale_price,:stock,:status,:published,
	         :image,:sku,:description,:slug,:tags,:latest,:date_added)
	  ON CONFLICT(id) DO UPDATE SET
	    title=excluded.title, category=excluded.category, price=excluded.price,
	    sale_price=excluded.sale_price, stock=excluded.stock, status=excluded.status,
	    published=excluded.published, image=excluded.image, sku=excluded.sku,
	    description=excluded.description, slug=excluded.slug, tags=excluded.tags,
	    latest=excluded.latest
	`, p)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (r *ProductRepo) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *ProductRepo) SetStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE products SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *ProductRepo) SetPublished(id string, published bool) error {
	_, err := r.db.Exec(`UPDATE products SET published = ? WHERE id = ?`, published, id)
	return err
}

func (r *ProductRepo) SetLatest(id string, latest bool) error {
	_, err := r.db.Exec(`UPDATE products SET latest = ? WHERE id = ?`, latest, id)
	return err
}

// Categories returns the distinct category names present in the catalog.
func (r *ProductRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT category FROM products ORDER BY category`)
	return out, err
}

// Stock returns current stock for a product; sql.ErrNoRows when unknown.
func (r *ProductRepo) Stock(id string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT stock FROM products WHERE id = ?`, id)
	return qty, err
}

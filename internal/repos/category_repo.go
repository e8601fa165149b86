package repos

import (
	"eshop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `
  id, name, slug, COALESCE(description,'') AS description, COALESCE(parent,'') AS parent,
  COALESCE(image,'') AS image, status, subcategories_json`

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) SlugExists(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE slug = ? AND id != ?`, slug, excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Upsert(c domain.Category) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO categories(id,name,slug,description,parent,image,status,subcategories_json)
	  VALUES(:id,:name,:slug,:description,:parent,:image,:status,:subcategories_json)
	  ON CONFLICT(id) DO UPDATE SET
	    name=excluded.name, slug=excluded.slug, description=excluded.description,
	    parent=excluded.parent, image=excluded.image, status=excluded.status,
	    subcategories_json=excluded.subcategories_json
	`, c)
	return err
}

func (r *CategoryRepo) SetStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE categories SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

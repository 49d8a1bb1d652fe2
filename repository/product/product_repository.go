package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `id, name, brand, price, stock, image_url, description, category_id, offer, frame_type, lens_type`

	listProductsQuery  = `SELECT ` + productColumns + ` FROM products ORDER BY name ASC`
	getProductQuery    = `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	getProductsInQuery = `SELECT ` + productColumns + ` FROM products WHERE id IN (?)`
	insertProductQuery = `INSERT INTO products (` + productColumns + `) VALUES (:id, :name, :brand, :price, :stock, :image_url, :description, :category_id, :offer, :frame_type, :lens_type)`
	updateProductQuery = `UPDATE products SET name = :name, brand = :brand, price = :price, stock = :stock, image_url = :image_url, description = :description, category_id = :category_id, offer = :offer, frame_type = :frame_type, lens_type = :lens_type WHERE id = :id`
	deleteProductQuery = `DELETE FROM products WHERE id = ?`
	countProductsQuery = `SELECT COUNT(*) FROM products`
)

func (s *SQL) List(ctx context.Context) ([]model.Product, error) {
	items := make([]model.Product, 0)
	if err := s.conn.SelectContext(ctx, &items, listProductsQuery); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns nil without error when the product does not exist.
func (s *SQL) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := s.conn.GetContext(ctx, &p, s.conn.Rebind(getProductQuery), id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *SQL) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	items := make([]model.Product, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	query, args, err := sqlx.In(getProductsInQuery, ids)
	if err != nil {
		return nil, err
	}
	if err := s.conn.SelectContext(ctx, &items, s.conn.Rebind(query), args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) Create(ctx context.Context, product *model.Product) error {
	_, err := s.conn.NamedExecContext(ctx, insertProductQuery, product)
	return err
}

func (s *SQL) Update(ctx context.Context, product *model.Product) error {
	_, err := s.conn.NamedExecContext(ctx, updateProductQuery, product)
	return err
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(deleteProductQuery), id)
	return err
}

func (s *SQL) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.conn.GetContext(ctx, &total, countProductsQuery); err != nil {
		return 0, err
	}
	return total, nil
}

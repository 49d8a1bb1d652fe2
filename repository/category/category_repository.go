package category

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Count(ctx context.Context) (int, error)
}

func NewCategoryRepository(conn *sqlx.DB) CategoryRepository {
	return &SQL{conn: conn}
}

func (s *SQL) List(ctx context.Context) ([]model.Category, error) {
	items := make([]model.Category, 0)
	if err := s.conn.SelectContext(ctx, &items, `SELECT id, name FROM categories ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := s.conn.GetContext(ctx, &c, s.conn.Rebind(`SELECT id, name FROM categories WHERE id = ?`), id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *SQL) Count(ctx context.Context) (int, error) {
	var total int
	err := s.conn.GetContext(ctx, &total, `SELECT COUNT(*) FROM categories`)
	return total, err
}

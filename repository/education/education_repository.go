package education

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type EducationRepository interface {
	List(ctx context.Context) ([]model.EducationArticle, error)
	GetByID(ctx context.Context, id string) (*model.EducationArticle, error)
	Create(ctx context.Context, article *model.EducationArticle) error
	Update(ctx context.Context, article *model.EducationArticle) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

func NewEducationRepository(conn *sqlx.DB) EducationRepository {
	return &SQL{conn: conn}
}

const (
	listArticlesQuery  = `SELECT id, title, content, image_url, display_order FROM lens_education ORDER BY display_order ASC`
	getArticleQuery    = `SELECT id, title, content, image_url, display_order FROM lens_education WHERE id = ?`
	insertArticleQuery = `INSERT INTO lens_education (id, title, content, image_url, display_order) VALUES (:id, :title, :content, :image_url, :display_order)`
	updateArticleQuery = `UPDATE lens_education SET title = :title, content = :content, image_url = :image_url, display_order = :display_order WHERE id = :id`
)

func (s *SQL) List(ctx context.Context) ([]model.EducationArticle, error) {
	items := make([]model.EducationArticle, 0)
	if err := s.conn.SelectContext(ctx, &items, listArticlesQuery); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) GetByID(ctx context.Context, id string) (*model.EducationArticle, error) {
	var a model.EducationArticle
	if err := s.conn.GetContext(ctx, &a, s.conn.Rebind(getArticleQuery), id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *SQL) Create(ctx context.Context, article *model.EducationArticle) error {
	_, err := s.conn.NamedExecContext(ctx, insertArticleQuery, article)
	return err
}

func (s *SQL) Update(ctx context.Context, article *model.EducationArticle) error {
	_, err := s.conn.NamedExecContext(ctx, updateArticleQuery, article)
	return err
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`DELETE FROM lens_education WHERE id = ?`), id)
	return err
}

func (s *SQL) Count(ctx context.Context) (int, error) {
	var total int
	err := s.conn.GetContext(ctx, &total, `SELECT COUNT(*) FROM lens_education`)
	return total, err
}

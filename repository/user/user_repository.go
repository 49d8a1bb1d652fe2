package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/eyewear-store/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, req *model.UserEntity) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
	UpdateFullName(ctx context.Context, id, fullName string) error
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO users (id, full_name, email, phone, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	getUserBase     = `SELECT id, full_name, email, phone, password_hash, role, created_at, updated_at FROM users WHERE 1 = 1`
	updateNameQuery = `UPDATE users SET full_name = ?, updated_at = ? WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(insertUserQuery),
		data.ID, data.FullName, data.Email, data.Phone, data.PasswordHash, data.Role, data.CreatedAt)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 3)

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if filter.Phone != "" {
		query += " AND phone = ?"
		args = append(args, filter.Phone)
	}

	var entity model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, s.conn.Rebind(query), args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) UpdateFullName(ctx context.Context, id, fullName string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(updateNameQuery), fullName, time.Now().UTC(), id)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"invoice_idor/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserSQLite)(nil)

const (
	selectUserByUsernameSQL = `SELECT id, username, password FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password FROM users WHERE id = ?`
)

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
// The users table declares username with BINARY collation so the match is case-sensitive.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.scanOne(ctx, selectUserByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanOne(ctx, selectUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserSQLite) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

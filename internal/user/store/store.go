package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kasir/internal/user"
)

// Store keeps users in Postgres. Deleted users are soft-deleted and never
// returned again.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectUserColumns = `id, name, email, role, status, avatar, created_at`

func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var roleStr, statusStr string

	if err := s.Scan(&u.ID, &u.Name, &u.Email, &roleStr, &statusStr, &u.Avatar, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.Role = user.Role(roleStr)
	u.Status = user.Status(statusStr)

	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, role, status, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.Role,
		u.Status,
		u.Avatar,
		u.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, u.Name, u.Email, u.Role, u.Status, u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) ListUsers(ctx context.Context, query string) ([]*user.User, error) {
	q := `SELECT ` + selectUserColumns + ` FROM users WHERE deleted_at IS NULL`

	var args []any

	if query != "" {
		q += ` AND (name ILIKE $1 OR email ILIKE $1)`

		args = append(args, "%"+escapeLike(query)+"%")
	}

	q += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []*user.User{}

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}

	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

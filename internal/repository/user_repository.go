package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/example/mediatheque/internal/auth"
	"github.com/example/mediatheque/internal/model"
	"github.com/example/mediatheque/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a new user with the Client role and returns its ID.
// Registration never creates staff accounts; staff are provisioned
// directly in the database. The password is hashed here so that no
// caller ever handles the plain text beyond this point.
func (r *UserRepo) Create(ctx context.Context, lastName, firstName, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (last_name, first_name, email, password_hash, role_id, registered_at) VALUES (?,?,?,?,?,NOW())",
		lastName, firstName, email, hash, auth.RoleIDClient)
	if err != nil {
		// MySQL 1062: duplicate entry on the unique email index.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,last_name,first_name,email,password_hash,role_id,registered_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.LastName, &u.FirstName, &u.Email, &u.PasswordHash, &u.RoleID, &u.RegisteredAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,last_name,first_name,email,password_hash,role_id,registered_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.LastName, &u.FirstName, &u.Email, &u.PasswordHash, &u.RoleID, &u.RegisteredAt)
	return u, err
}

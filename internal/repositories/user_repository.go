package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"presentation-service/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

// UserRepository abstracts user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash, activeCode string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID int) (models.User, error)
	UpdateProfile(ctx context.Context, userID int, name, passwordHash string) (models.User, error)
	ListUsersByIDs(ctx context.Context, ids []int) ([]models.User, error)
	SearchUsers(ctx context.Context, search string) ([]models.User, error)
	AdminUpdateUser(ctx context.Context, userID int, upd models.AdminUserUpdate) error
	DeleteUser(ctx context.Context, userID int) error
	SetPassword(ctx context.Context, userID int, passwordHash string) error
	ActivateUser(ctx context.Context, userID int, activeCode string) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, name, email, password, role, is_active, active_code, created_at, updated_at`

// CreateUser inserts a new account.
func (r *UserRepo) CreateUser(ctx context.Context, name, email, passwordHash, activeCode string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`INSERT INTO users (name, email, password, active_code) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		name, email, passwordHash, activeCode)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

// GetUserByEmail fetches an account by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByID fetches an account by id.
func (r *UserRepo) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile changes the user's name and, when non-empty, password hash.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID int, name, passwordHash string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`UPDATE users SET name=$2, password=COALESCE(NULLIF($3, ''), password), updated_at=NOW() WHERE id=$1 RETURNING `+userColumns,
		userID, name, passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ListUsersByIDs returns the users matching the given ids, newest first.
func (r *UserRepo) ListUsersByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY created_at DESC`, pq.Array(ids))
	return users, err
}

// SearchUsers returns non-admin users, optionally filtered by a name or email
// substring, newest first.
func (r *UserRepo) SearchUsers(ctx context.Context, search string) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users
         WHERE role <> 'ADMIN' AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
         ORDER BY created_at DESC`, search)
	return users, err
}

// AdminUpdateUser applies partial updates on behalf of an administrator.
func (r *UserRepo) AdminUpdateUser(ctx context.Context, userID int, upd models.AdminUserUpdate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name=COALESCE($2, name), is_active=COALESCE($3, is_active), updated_at=NOW() WHERE id=$1`,
		userID, upd.Name, upd.IsActive)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes an account.
func (r *UserRepo) DeleteUser(ctx context.Context, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetPassword replaces the stored password hash.
func (r *UserRepo) SetPassword(ctx context.Context, userID int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password=$2, updated_at=NOW() WHERE id=$1`, userID, passwordHash)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ActivateUser marks an account active when the activation code matches.
func (r *UserRepo) ActivateUser(ctx context.Context, userID int, activeCode string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active=TRUE, updated_at=NOW() WHERE id=$1 AND active_code=$2`, userID, activeCode)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

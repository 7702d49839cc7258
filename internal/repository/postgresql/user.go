package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/user"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByEmail implements user.UserRepository.
func (u *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return u.getBy(ctx, "email = $1", email)
}

// GetByID implements user.UserRepository.
func (u *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return u.getBy(ctx, "id = $1", id)
}

func (u *userRepositoryImpl) getBy(ctx context.Context, cond string, arg any) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE ` + cond

	var usr user.User
	var role string
	err := q.QueryRow(ctx, query, arg).Scan(
		&usr.ID, &usr.Email, &usr.PasswordHash, &role, &usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	usr.Role = user.Role(role)
	return usr, nil
}

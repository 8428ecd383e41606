// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"fmt"

	"offerbase/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserRepository реализует интерфейс для работы с пользователями
type UserRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *bun.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID возвращает пользователя по ID
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	ctx := context.Background()
	user := new(model.User)

	err := r.db.NewSelect().
		Model(user).
		Where("u.user_id = ?", id).
		Scan(ctx)

	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by ID: %w", err)
	}

	return user, nil
}

// Register вставляет пользователя, если его еще нет.
// Существующая строка не перезаписывается.
func (r *UserRepository) Register(user *model.User) error {
	ctx := context.Background()

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	return nil
}

// SetRole безусловно перезаписывает роль пользователя.
// Для неизвестного ID создается запись: бан должен работать и до того,
// как пользователь впервые написал боту.
func (r *UserRepository) SetRole(id int64, role model.Role) error {
	ctx := context.Background()

	user := &model.User{UserID: id, Role: role}

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (user_id) DO UPDATE").
		Set("role = EXCLUDED.role").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}

	return nil
}

// GetAll возвращает всех пользователей
func (r *UserRepository) GetAll() ([]model.User, error) {
	ctx := context.Background()
	var users []model.User

	err := r.db.NewSelect().
		Model(&users).
		Order("joined_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return users, nil
}

// Package service содержит бизнес-логику приложения.
package service

import (
	"errors"
	"fmt"

	"offerbase/internal/model"

	"go.uber.org/zap"
)

// ErrSuperadminImmutable возвращается при попытке изменить роль супер-админа
var ErrSuperadminImmutable = errors.New("superadmin role cannot be changed")

// UserService содержит бизнес-логику для работы с пользователями
type UserService struct {
	repo         model.UserRepository
	superadminID int64
	logger       *zap.Logger
}

// NewUserService создает новый сервис пользователей
func NewUserService(repo model.UserRepository, superadminID int64, logger *zap.Logger) *UserService {
	return &UserService{
		repo:         repo,
		superadminID: superadminID,
		logger:       logger,
	}
}

// ResolveRole возвращает роль пользователя.
// Супер-админ определяется конфигурацией и резолвится без обращения
// к реестру; для неизвестного пользователя known равен false.
func (s *UserService) ResolveRole(userID int64) (role model.Role, known bool, err error) {
	if userID == s.superadminID {
		return model.RoleSuperadmin, true, nil
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve role: %w", err)
	}
	if user == nil {
		return "", false, nil
	}

	return user.Role, true, nil
}

// Register регистрирует пользователя, если его еще нет.
// Существующая запись не перезаписывается.
func (s *UserService) Register(userID int64, username string, role model.Role) error {
	user := &model.User{
		UserID:   userID,
		Username: username,
		Role:     role,
	}

	if err := s.repo.Register(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)))

	return nil
}

// SetRole безусловно перезаписывает роль пользователя.
// Роль супер-админа изменить нельзя.
func (s *UserService) SetRole(userID int64, role model.Role) error {
	if userID == s.superadminID {
		return ErrSuperadminImmutable
	}

	if err := s.repo.SetRole(userID, role); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	s.logger.Info("User role changed",
		zap.Int64("user_id", userID),
		zap.String("role", string(role)))

	return nil
}

// ListUsers возвращает всех пользователей реестра
func (s *UserService) ListUsers() ([]model.User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SuperadminID возвращает идентификатор супер-админа
func (s *UserService) SuperadminID() int64 {
	return s.superadminID
}

// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"
	"strings"

	"offerbase/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// inviteCodeLength — длина короткого кода приглашения
const inviteCodeLength = 8

// InviteService содержит бизнес-логику для работы с инвайтами
type InviteService struct {
	repo   model.InviteRepository
	logger *zap.Logger
}

// NewInviteService создает новый сервис инвайтов
func NewInviteService(repo model.InviteRepository, logger *zap.Logger) *InviteService {
	return &InviteService{
		repo:   repo,
		logger: logger,
	}
}

// Create создает инвайт и возвращает его код
func (s *InviteService) Create(role model.Role, uses int) (string, error) {
	if !role.Grantable() {
		return "", fmt.Errorf("role %s is not grantable via invite", role)
	}
	if uses < 1 {
		uses = 1
	}

	invite := &model.Invite{
		Code:     NewInviteCode(),
		Role:     role,
		UsesLeft: uses,
	}

	if err := s.repo.Create(invite); err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}

	s.logger.Info("Invite created",
		zap.String("role", string(role)),
		zap.Int("uses", uses))

	return invite.Code, nil
}

// CreateBatch создает несколько одноразовых инвайтов
func (s *InviteService) CreateBatch(role model.Role, count int) ([]string, error) {
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := s.Create(role, 1)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Redeem погашает инвайт и возвращает выданную роль.
// Неизвестный или исчерпанный код дает model.ErrInviteInvalid.
func (s *InviteService) Redeem(code string) (model.Role, error) {
	role, err := s.repo.Redeem(code)
	if err != nil {
		return "", err
	}

	s.logger.Info("Invite redeemed", zap.String("role", string(role)))
	return role, nil
}

// NewInviteCode генерирует короткий неугадываемый код приглашения
func NewInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:inviteCodeLength]
}

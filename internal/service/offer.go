// Package service содержит бизнес-логику приложения.
package service

import (
	"errors"
	"fmt"
	"strings"

	"offerbase/internal/geo"
	"offerbase/internal/model"

	"go.uber.org/zap"
)

// Ошибки операций с офферами. Запрет доступа и отсутствие оффера
// различимы для вызывающего.
var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrNotOwner      = errors.New("offer belongs to another manager")
)

// OfferService содержит бизнес-логику для работы с офферами
type OfferService struct {
	repo   model.OfferRepository
	logger *zap.Logger
}

// NewOfferService создает новый сервис офферов
func NewOfferService(repo model.OfferRepository, logger *zap.Logger) *OfferService {
	return &OfferService{
		repo:   repo,
		logger: logger,
	}
}

// Create создает оффер и возвращает его ID
func (s *OfferService) Create(fields model.OfferFields, ownerID int64) (int64, error) {
	fields.Geo = geo.Normalize(fields.Geo)
	fields.ApplyDefaults()

	offer := &model.Offer{
		SourceName: fields.SourceName,
		OfferName:  fields.OfferName,
		Geo:        fields.Geo,
		Rate:       fields.Rate,
		Guarantee:  fields.Guarantee,
		Note:       fields.Note,
		Status:     model.StatusActive,
		OwnerID:    ownerID,
	}

	if err := s.repo.Create(offer); err != nil {
		return 0, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.Info("Offer created",
		zap.Int64("offer_id", offer.ID),
		zap.String("source", offer.SourceName),
		zap.Int64("owner_id", ownerID))

	return offer.ID, nil
}

// Update перезаписывает изменяемые поля оффера с проверкой владения.
// Менеджер может менять только свои офферы: чужой оффер дает ErrNotOwner,
// отсутствующий — ErrOfferNotFound.
func (s *OfferService) Update(id int64, fields model.OfferFields, callerID int64, role model.Role) error {
	if !role.Can(model.CapManageAny) {
		offer, err := s.repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to check offer ownership: %w", err)
		}
		if offer == nil {
			return ErrOfferNotFound
		}
		if !offer.OwnedBy(callerID) {
			return ErrNotOwner
		}
	}

	fields.Geo = geo.Normalize(fields.Geo)
	fields.ApplyDefaults()

	ok, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if !ok {
		return ErrOfferNotFound
	}

	s.logger.Info("Offer updated",
		zap.Int64("offer_id", id),
		zap.Int64("caller_id", callerID))

	return nil
}

// Archive переводит оффер в архив и возвращает снимок полей до архивации.
// Правило владения то же, что у Update.
func (s *OfferService) Archive(id int64, callerID int64, role model.Role) (*model.Offer, error) {
	if !role.Can(model.CapManageAny) {
		offer, err := s.repo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to check offer ownership: %w", err)
		}
		if offer == nil {
			return nil, ErrOfferNotFound
		}
		if !offer.OwnedBy(callerID) {
			return nil, ErrNotOwner
		}
	}

	snapshot, err := s.repo.Archive(id)
	if err != nil {
		return nil, fmt.Errorf("failed to archive offer: %w", err)
	}
	if snapshot == nil {
		return nil, ErrOfferNotFound
	}

	s.logger.Info("Offer archived",
		zap.Int64("offer_id", id),
		zap.Int64("caller_id", callerID))

	return snapshot, nil
}

// Get возвращает оффер по ID
func (s *OfferService) Get(id int64) (*model.Offer, error) {
	offer, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

// CheckOwnership проверяет право пользователя трогать оффер.
// Для admin и superadmin всегда true; отсутствующий оффер дает false,
// ошибкой это не считается.
func (s *OfferService) CheckOwnership(id int64, callerID int64, role model.Role) bool {
	if role.Can(model.CapManageAny) {
		return true
	}

	offer, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("Ownership check failed", zap.Int64("offer_id", id), zap.Error(err))
		return false
	}
	if offer == nil {
		return false
	}

	return offer.OwnedBy(callerID)
}

// Search возвращает офферы по текстовому запросу, новые первыми.
// Сбой хранилища деградирует до пустого списка: поиск никогда не
// роняет вызывающего.
func (s *OfferService) Search(query string, includeArchived bool, ownerRestriction int64) []model.Offer {
	filter := s.buildFilter(query, includeArchived, ownerRestriction)

	offers, err := s.repo.Search(filter)
	if err != nil {
		s.logger.Error("Search degraded to empty result", zap.String("query", query), zap.Error(err))
		return []model.Offer{}
	}

	return offers
}

// SearchForExport возвращает строки выгрузки с именами владельцев
// по тем же правилам фильтрации, что и Search
func (s *OfferService) SearchForExport(query string, includeArchived bool, ownerRestriction int64) ([]model.OfferExportRow, error) {
	filter := s.buildFilter(query, includeArchived, ownerRestriction)

	rows, err := s.repo.SearchWithOwners(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to collect export rows: %w", err)
	}

	return rows, nil
}

// MyOffers возвращает активные офферы пользователя
func (s *OfferService) MyOffers(userID int64) []model.Offer {
	return s.Search("", false, userID)
}

// buildFilter раскрывает каждое ключевое слово запроса в группу
// гео-синонимов
func (s *OfferService) buildFilter(query string, includeArchived bool, ownerRestriction int64) model.OfferFilter {
	filter := model.OfferFilter{
		IncludeArchived: includeArchived,
		OwnerID:         ownerRestriction,
	}

	for _, word := range strings.Fields(query) {
		filter.Keywords = append(filter.Keywords, geo.SearchVariations(word))
	}

	return filter
}

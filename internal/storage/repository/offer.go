// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"offerbase/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// OfferRepository реализует интерфейс для работы с офферами
type OfferRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewOfferRepository создает новый репозиторий офферов
func NewOfferRepository(db *bun.DB, logger *zap.Logger) *OfferRepository {
	return &OfferRepository{
		db:     db,
		logger: logger,
	}
}

// Create создает новый оффер
func (r *OfferRepository) Create(offer *model.Offer) error {
	ctx := context.Background()

	if offer.Status == "" {
		offer.Status = model.StatusActive
	}

	_, err := r.db.NewInsert().
		Model(offer).
		Returning("id, created_at").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID возвращает оффер по ID
func (r *OfferRepository) GetByID(id int64) (*model.Offer, error) {
	ctx := context.Background()
	offer := new(model.Offer)

	err := r.db.NewSelect().
		Model(offer).
		Where("o.id = ?", id).
		Scan(ctx)

	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query offer by ID: %w", err)
	}

	return offer, nil
}

// UpdateFields перезаписывает изменяемые поля оффера.
// owner_id, status и created_at не затрагиваются.
// Возвращает false, если оффер не найден.
func (r *OfferRepository) UpdateFields(id int64, fields model.OfferFields) (bool, error) {
	ctx := context.Background()

	res, err := r.db.NewUpdate().
		Model((*model.Offer)(nil)).
		Set("source_name = ?", fields.SourceName).
		Set("offer_name = ?", fields.OfferName).
		Set("geo = ?", fields.Geo).
		Set("rate = ?", fields.Rate).
		Set("guarantee = ?", fields.Guarantee).
		Set("note = ?", fields.Note).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return false, fmt.Errorf("failed to update offer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}

	return affected > 0, nil
}

// Archive переводит оффер в архив и возвращает снимок полей до архивации.
// Любая существующая строка архивируема: повторная архивация возвращает
// снимок без наблюдаемых изменений. Возвращает nil, если оффера нет.
func (r *OfferRepository) Archive(id int64) (*model.Offer, error) {
	ctx := context.Background()
	snapshot := new(model.Offer)

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(snapshot).
			Where("o.id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if err.Error() == "sql: no rows in result set" {
				snapshot = nil
				return nil
			}
			return fmt.Errorf("failed to query offer for archive: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*model.Offer)(nil)).
			Set("status = ?", model.StatusArchived).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to archive offer: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Search возвращает офферы по фильтру, новые первыми.
// Сбой хранилища логируется, вызывающему возвращается пустой список.
func (r *OfferRepository) Search(filter model.OfferFilter) ([]model.Offer, error) {
	ctx := context.Background()
	var offers []model.Offer

	q := r.db.NewSelect().Model(&offers)
	q = applyOfferFilter(q, filter)

	err := q.Order("o.id DESC").Scan(ctx)
	if err != nil {
		r.logger.Error("Offer search failed", zap.Error(err))
		return []model.Offer{}, fmt.Errorf("failed to search offers: %w", err)
	}

	return offers, nil
}

// SearchWithOwners возвращает офферы по фильтру вместе с именами владельцев
func (r *OfferRepository) SearchWithOwners(filter model.OfferFilter) ([]model.OfferExportRow, error) {
	ctx := context.Background()
	var rows []model.OfferExportRow

	q := r.db.NewSelect().
		Model(&rows).
		ColumnExpr("o.*").
		ColumnExpr("u.username AS owner_username").
		Join("LEFT JOIN users AS u ON u.user_id = o.owner_id")
	q = applyOfferFilter(q, filter)

	err := q.Order("o.id DESC").Scan(ctx)
	if err != nil {
		r.logger.Error("Offer export query failed", zap.Error(err))
		return nil, fmt.Errorf("failed to query offers for export: %w", err)
	}

	return rows, nil
}

// applyOfferFilter накладывает условия фильтра на запрос.
// Все условия объединяются через AND; варианты ключевого слова — через OR
// по полям source_name, offer_name и geo.
func applyOfferFilter(q *bun.SelectQuery, filter model.OfferFilter) *bun.SelectQuery {
	if !filter.IncludeArchived {
		q = q.Where("o.status = ?", model.StatusActive)
	}

	if filter.OwnerID != 0 {
		q = q.Where("o.owner_id = ?", filter.OwnerID)
	}

	for _, variants := range filter.Keywords {
		variants := variants
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, variant := range variants {
				pattern := "%" + variant + "%"
				q = q.WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.
						Where("o.source_name ILIKE ?", pattern).
						WhereOr("o.offer_name ILIKE ?", pattern).
						WhereOr("o.geo ILIKE ?", pattern)
				})
			}
			return q
		})
	}

	return q
}

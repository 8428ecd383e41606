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

// InviteRepository реализует интерфейс для работы с инвайтами
type InviteRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewInviteRepository создает новый репозиторий инвайтов
func NewInviteRepository(db *bun.DB, logger *zap.Logger) *InviteRepository {
	return &InviteRepository{
		db:     db,
		logger: logger,
	}
}

// Create создает новый инвайт
func (r *InviteRepository) Create(invite *model.Invite) error {
	ctx := context.Background()

	_, err := r.db.NewInsert().
		Model(invite).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

// Redeem атомарно списывает одно использование кода.
// Декремент выполняется одним UPDATE с условием uses_left > 0: при
// конкурентном погашении последнего использования успеет ровно один
// вызов. Код с нулем использований удаляется в той же транзакции и
// неотличим от несуществующего.
func (r *InviteRepository) Redeem(code string) (model.Role, error) {
	ctx := context.Background()
	invite := new(model.Invite)

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(invite).
			Set("uses_left = uses_left - 1").
			Where("code = ? AND uses_left > 0", code).
			Returning("role, uses_left").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to redeem invite: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read redeem result: %w", err)
		}
		if affected == 0 {
			return model.ErrInviteInvalid
		}

		if invite.UsesLeft <= 0 {
			_, err = tx.NewDelete().
				Model((*model.Invite)(nil)).
				Where("code = ?", code).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete exhausted invite: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	return invite.Role, nil
}

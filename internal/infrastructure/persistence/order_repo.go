package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/errcodes"
)

const orderStatusNew = "new"

// OrderDraftRepository — внешний коллаборатор-приёмник заявок: принимает
// собранный OrderDraft и ведёт его жизненный цикл по статусам (сам цикл
// обрабатывается админским контуром).
type OrderDraftRepository struct {
	db *sqlx.DB
}

func NewOrderDraftRepository(db *sqlx.DB) *OrderDraftRepository {
	return &OrderDraftRepository{db: db}
}

func (r *OrderDraftRepository) Create(ctx context.Context, draft *entity.OrderDraft) error {
	query := `
		INSERT INTO order_drafts (
			id, caller_id, amount, network, wallet_address,
			locked_price, total, locked_at, status, created_at
		) VALUES (
			:id, :caller_id, :amount, :network, :wallet_address,
			:locked_price, :total, :locked_at, :status, :created_at
		)
		ON CONFLICT (id) DO NOTHING` // Повторная доставка задачи не дублирует заявку

	if _, err := r.db.NamedExecContext(ctx, query, fromOrderDraft(draft)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to create order draft")
	}

	return nil
}

func (r *OrderDraftRepository) GetByID(ctx context.Context, id string) (*entity.OrderDraft, error) {
	query := `SELECT id, caller_id, amount, network, wallet_address,
		locked_price, total, locked_at, status, created_at
		FROM order_drafts WHERE id = $1`

	var schema orderDraftSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.OrderNotFound, "order draft not found")
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get order draft")
	}

	return schema.toDomain(), nil
}

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

type PartnerProfileRepository struct {
	db *sqlx.DB
}

func NewPartnerProfileRepository(db *sqlx.DB) *PartnerProfileRepository {
	return &PartnerProfileRepository{db: db}
}

// GetByCallerID читает профиль на каждый вызов, включая is_active —
// резолвер наценки обязан видеть приостановку партнёра сразу.
func (r *PartnerProfileRepository) GetByCallerID(ctx context.Context, callerID string) (*entity.MarkupProfile, error) {
	query := `SELECT caller_id, markup_percent, is_active, price_source, updated_at
		FROM partner_profiles WHERE caller_id = $1`

	var schema partnerProfileSchema
	if err := r.db.GetContext(ctx, &schema, query, callerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.PartnerNotFound, "partner profile not found")
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get partner profile")
	}

	return schema.toDomain()
}

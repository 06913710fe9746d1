package persistence

import (
	"time"

	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
)

// partnerProfileSchema — представление таблицы partner_profiles в БД.
type partnerProfileSchema struct {
	CallerID      string          `db:"caller_id"`
	MarkupPercent decimal.Decimal `db:"markup_percent"`
	IsActive      bool            `db:"is_active"`
	PriceSource   string          `db:"price_source"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (s *partnerProfileSchema) toDomain() (*entity.MarkupProfile, error) {
	source, err := value.ParsePriceSource(s.PriceSource)
	if err != nil {
		return nil, err
	}

	return &entity.MarkupProfile{
		CallerID:      s.CallerID,
		MarkupPercent: s.MarkupPercent,
		IsActive:      s.IsActive,
		Source:        source,
	}, nil
}

// orderDraftSchema — представление таблицы order_drafts в БД.
type orderDraftSchema struct {
	ID            string          `db:"id"`
	CallerID      string          `db:"caller_id"`
	Amount        decimal.Decimal `db:"amount"`
	Network       string          `db:"network"`
	WalletAddress string          `db:"wallet_address"`
	LockedPrice   decimal.Decimal `db:"locked_price"`
	Total         decimal.Decimal `db:"total"`
	LockedAt      time.Time       `db:"locked_at"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

func fromOrderDraft(e *entity.OrderDraft) *orderDraftSchema {
	return &orderDraftSchema{
		ID:            e.ID,
		CallerID:      e.CallerID,
		Amount:        e.Amount,
		Network:       e.Network.String(),
		WalletAddress: e.WalletAddress,
		LockedPrice:   e.LockedPrice,
		Total:         e.Total,
		LockedAt:      e.LockedAt,
		Status:        orderStatusNew,
		CreatedAt:     e.CreatedAt,
	}
}

func (s *orderDraftSchema) toDomain() *entity.OrderDraft {
	return &entity.OrderDraft{
		ID:            s.ID,
		CallerID:      s.CallerID,
		Amount:        s.Amount,
		Network:       value.Network(s.Network),
		WalletAddress: s.WalletAddress,
		LockedPrice:   s.LockedPrice,
		Total:         s.Total,
		LockedAt:      s.LockedAt,
		CreatedAt:     s.CreatedAt,
	}
}

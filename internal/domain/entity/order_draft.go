package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/value"
)

// OrderDraft — заявка, собранная из активного лока. Конструируется только
// сборщиком (service/order); LockedAt повторяет время лока, а не время
// отправки — это след для аудита.
type OrderDraft struct {
	ID            string
	CallerID      string
	Amount        decimal.Decimal
	Network       value.Network
	WalletAddress string
	LockedPrice   decimal.Decimal
	Total         decimal.Decimal
	LockedAt      time.Time
	CreatedAt     time.Time
}

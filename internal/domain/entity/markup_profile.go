package entity

import (
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/value"
)

// MarkupProfile — эффективная наценка для вызывающего. Либо публичный
// дефолт, либо договорный партнёрский профиль. Профиль создаётся и
// одобряется админским контуром, здесь он read-only.
type MarkupProfile struct {
	CallerID      string // пустой для анонимного/публичного клиента
	MarkupPercent decimal.Decimal
	IsActive      bool
	Source        value.PriceSource
}

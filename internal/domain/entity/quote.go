package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/value"
)

// Quote — котировка для конкретного клиента: базовая цена апстрима плюс
// применённая наценка. EffectivePrice всегда выводится из BasePrice и
// MarkupPercent и никогда не хранится отдельно.
type Quote struct {
	BasePrice      decimal.Decimal
	MarkupPercent  decimal.Decimal
	EffectivePrice decimal.Decimal

	// StandardPrice — цена по публичной наценке; нужна только для расчёта
	// Savings. Savings может быть отрицательным, если договорная наценка
	// партнёра выше публичной — не обнуляем.
	StandardPrice decimal.Decimal
	Savings       decimal.Decimal

	DailyChangePercent decimal.Decimal
	Volume             decimal.Decimal
	High24h            decimal.Decimal
	Low24h             decimal.Decimal
	TradeCount         int64

	Source    value.PriceSource
	FetchedAt time.Time

	// Stale — котировка отдана из последнего удачного снимка, потому что
	// апстрим недоступен. Деградация видимая, не молчаливая.
	Stale bool
}

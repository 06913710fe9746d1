package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"otc_desk/internal/domain/value"
)

// Ticker — сырой снимок апстрима: последняя цена пары и статистика за 24ч.
// Без наценки. Снимок неизменяемый: протухший просто заменяется новым.
type Ticker struct {
	LastPrice          decimal.Decimal
	DailyChangePercent decimal.Decimal
	Volume             decimal.Decimal
	High24h            decimal.Decimal
	Low24h             decimal.Decimal
	TradeCount         int64
	Source             value.PriceSource
	FetchedAt          time.Time
}

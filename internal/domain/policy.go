package domain

import "github.com/shopspring/decimal"

// Ценовая политика деска. Константы, а не конфиг: их изменение — это
// бизнес-решение, которое должно проходить через ревью кода.
var (
	// DefaultMarkupPercent — публичная наценка для анонимных клиентов.
	// StandardPrice в котировке всегда считается от неё, независимо от
	// профиля запрашивающего, чтобы savings были сравнимы между партнёрами.
	DefaultMarkupPercent = decimal.RequireFromString("1.0") //nolint:gochecknoglobals

	// MinOrderSize — минимальный объём заявки в USDT.
	MinOrderSize = decimal.NewFromInt(100) //nolint:gochecknoglobals
)

// PriceScale — точность отображения цены пары (знаков после запятой).
const PriceScale = 4

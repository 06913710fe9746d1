package quote

import (
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain"
)

// ComputeEffectivePrice применяет наценку к базовой цене и округляет до
// точности отображения пары. Единственная точка этой арифметики: превью на
// клиенте и авторитетный расчёт обязаны проходить через неё, иначе
// показанная и списанная цена разойдутся.
func ComputeEffectivePrice(basePrice, markupPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(markupPercent.Div(decimal.NewFromInt(100))) //nolint:mnd

	return basePrice.Mul(factor).Round(domain.PriceScale)
}

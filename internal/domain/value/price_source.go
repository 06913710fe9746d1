package value

import (
	"otc_desk/internal/domain"
	"otc_desk/pkg/errcodes"
)

// PriceSource — апстрим рыночных данных. Разные источники могут расходиться
// в цене, поэтому источник входит в ключ кэша котировок.
type PriceSource string

const (
	SourceBinance PriceSource = "binance"
	SourceOKX     PriceSource = "okx"
)

// DefaultSource используется для публичного профиля и для партнёров,
// не закрепивших за собой другой апстрим.
const DefaultSource = SourceBinance

func (s PriceSource) String() string {
	return string(s)
}

func ParsePriceSource(raw string) (PriceSource, error) {
	switch PriceSource(raw) {
	case SourceBinance, SourceOKX:
		return PriceSource(raw), nil
	case "":
		return DefaultSource, nil
	default:
		return "", domain.NewError(errcodes.UnknownPriceSource, "unknown price source: "+raw)
	}
}

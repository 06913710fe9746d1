package value

// Network — сеть вывода USDT. Закрытый набор: расширение требует
// обновления таблицы правил в валидаторе адресов.
type Network string

const (
	NetworkTRC20   Network = "TRC20"
	NetworkERC20   Network = "ERC20"
	NetworkBEP20   Network = "BEP20"
	NetworkPolygon Network = "POLYGON"
)

func (n Network) String() string {
	return string(n)
}

// IsEVM — ERC20, BEP20 и POLYGON используют один и тот же формат адреса.
func (n Network) IsEVM() bool {
	switch n {
	case NetworkERC20, NetworkBEP20, NetworkPolygon:
		return true
	default:
		return false
	}
}

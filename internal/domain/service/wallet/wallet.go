package wallet

import (
	"strings"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

const (
	tronAddressLen = 34
	evmAddressLen  = 42 // "0x" + 40 hex
)

// Validate — строгая форматная проверка адреса для сети вывода. Чистая
// функция, без I/O: существование адреса в сети здесь не проверяется.
func Validate(address string, network value.Network) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.NewError(errcodes.InvalidWalletAddress, "address required")
	}

	switch {
	case network == value.NetworkTRC20:
		return validateTron(address)
	case network.IsEVM():
		return validateEVM(address)
	default:
		return domain.NewError(errcodes.UnsupportedNetwork, "unsupported network")
	}
}

func validateTron(address string) error {
	if !strings.HasPrefix(address, "T") {
		return domain.NewError(errcodes.InvalidWalletAddress, "TRC20 address must start with T")
	}

	if len(address) != tronAddressLen {
		return domain.NewError(errcodes.InvalidWalletAddress, "TRC20 address must be 34 characters long")
	}

	for _, c := range address {
		if !isAlphanumeric(c) {
			return domain.NewError(errcodes.InvalidWalletAddress, "TRC20 address must be alphanumeric")
		}
	}

	return nil
}

func validateEVM(address string) error {
	if !strings.HasPrefix(address, "0x") {
		return domain.NewError(errcodes.InvalidWalletAddress, "address must start with 0x")
	}

	if len(address) != evmAddressLen {
		return domain.NewError(errcodes.InvalidWalletAddress, "address must be 42 characters long")
	}

	for _, c := range address[2:] {
		if !isHex(c) {
			return domain.NewError(errcodes.InvalidWalletAddress, "address must be valid hex")
		}
	}

	return nil
}

func isAlphanumeric(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isHex(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

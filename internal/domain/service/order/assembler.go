package order

import (
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/wallet"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

// Assemble собирает заявку из активного лока. Всё, что искажает денежное
// обязательство — не тот статус лока, сумма ниже минимума, кривой адрес —
// жёсткий отказ без молчаливой коррекции. UI не должен допускать отправку
// без лока, но сборщик всё равно проверяет: это контракт, а не UX.
func Assemble(
	lock entity.PriceLock,
	callerID string,
	amount decimal.Decimal,
	network value.Network,
	walletAddress string,
) (entity.OrderDraft, error) {
	if lock.State != entity.LockStateLocked {
		return entity.OrderDraft{}, domain.NewError(errcodes.LockNotActive, "order requires an active price lock")
	}

	if amount.LessThan(domain.MinOrderSize) {
		return entity.OrderDraft{}, domain.NewError(errcodes.InvalidAmount, "amount below minimum order size")
	}

	if err := wallet.Validate(walletAddress, network); err != nil {
		return entity.OrderDraft{}, err
	}

	return entity.OrderDraft{
		ID:            xid.New().String(),
		CallerID:      callerID,
		Amount:        amount,
		Network:       network,
		WalletAddress: walletAddress,
		LockedPrice:   lock.LockedPrice,
		Total:         amount.Mul(lock.LockedPrice),
		// LockedAt повторяет время лока, не время отправки.
		LockedAt:  lock.LockedAt,
		CreatedAt: time.Now(),
	}, nil
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type LockState string

const (
	LockStateUnlocked LockState = "unlocked"
	LockStateLocked   LockState = "locked"
	LockStateExpired  LockState = "expired"
)

// PriceLock — снимок состояния лока на момент чтения. Сам автомат живёт в
// service/pricelock; сущность используется для передачи наружу (HTTP, сборка
// заявки), чтобы проверка состояния и чтение цены были атомарными.
type PriceLock struct {
	ID          string
	State       LockState
	Policy      string
	LockedPrice decimal.Decimal
	LockedAt    time.Time
	Remaining   time.Duration
}

package pricelock

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/errcodes"
)

const tickInterval = time.Second

// Policy — длительность лока. Две именованные политики вместо одной
// "правильной": стандартный лок для формы заявки и короткий экспресс-лок.
// Длительность всегда передаётся явно, молчаливого дефолта нет.
type Policy struct {
	Name     string
	Duration time.Duration
}

var (
	StandardPolicy = Policy{Name: "standard", Duration: 300 * time.Second} //nolint:gochecknoglobals
	ExpressPolicy  = Policy{Name: "express", Duration: 120 * time.Second}  //nolint:gochecknoglobals
)

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case StandardPolicy.Name:
		return StandardPolicy, nil
	case ExpressPolicy.Name:
		return ExpressPolicy, nil
	default:
		return Policy{}, domain.NewError(errcodes.UnknownLockPolicy, "unknown lock policy: "+name)
	}
}

// ExpireFunc вызывается ровно один раз при переходе Locked → Expired.
type ExpireFunc func(snapshot entity.PriceLock)

// Lock — автомат Unlocked → Locked → Expired с ручной отменой и
// принудительным разлоком при изменении суммы. Зафиксированная цена
// неизменна, пока лок активен; тикает раз в секунду на инжектированных
// часах, так что тесты двигают время без настоящего ожидания.
type Lock struct {
	mu       sync.Mutex
	clk      clock.Clock
	policy   Policy
	onExpire ExpireFunc

	id          string
	state       entity.LockState
	lockedPrice decimal.Decimal
	lockedAt    time.Time

	stopTick chan struct{}
}

func New(policy Policy, clk clock.Clock, onExpire ExpireFunc) *Lock {
	if clk == nil {
		clk = clock.New()
	}

	return &Lock{
		clk:      clk,
		policy:   policy,
		onExpire: onExpire,
		state:    entity.LockStateUnlocked,
	}
}

// Lock фиксирует EffectivePrice котировки. Разрешён только из Unlocked или
// Expired; после истечения старая цена не переиспользуется — нужна свежая
// котировка.
func (l *Lock) Lock(quote entity.Quote, amount decimal.Decimal) (entity.PriceLock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == entity.LockStateLocked {
		return entity.PriceLock{}, domain.NewError(errcodes.LockAlreadyActive, "price lock already active")
	}

	if amount.LessThan(domain.MinOrderSize) {
		return entity.PriceLock{}, domain.NewError(errcodes.InvalidAmount, "amount below minimum order size")
	}

	l.id = xid.New().String()
	l.state = entity.LockStateLocked
	l.lockedPrice = quote.EffectivePrice
	l.lockedAt = l.clk.Now()

	l.startTickerLocked()

	return l.snapshotLocked(), nil
}

// Cancel — явная отмена пользователем. Идемпотентна: повторный вызов на
// неактивном локе — no-op.
func (l *Lock) Cancel() {
	l.unlock()
}

// AmountChanged — любое изменение суммы или стороны сделки при активном
// локе немедленно его снимает: зафиксированная цена не действительна для
// другого объёма.
func (l *Lock) AmountChanged() {
	l.unlock()
}

func (l *Lock) unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != entity.LockStateLocked {
		return
	}

	l.state = entity.LockStateUnlocked
	l.lockedPrice = decimal.Decimal{}
	l.lockedAt = time.Time{}

	l.stopTickerLocked()
}

// Snapshot атомарно читает состояние: проверка статуса и чтение цены одной
// операцией, чтобы сборщик заявки не попал между тиком и чтением.
func (l *Lock) Snapshot() entity.PriceLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

func (l *Lock) State() entity.LockState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

func (l *Lock) snapshotLocked() entity.PriceLock {
	snapshot := entity.PriceLock{
		ID:          l.id,
		State:       l.state,
		Policy:      l.policy.Name,
		LockedPrice: l.lockedPrice,
		LockedAt:    l.lockedAt,
		Remaining:   0,
	}

	if l.state == entity.LockStateLocked {
		if remaining := l.deadlineLocked().Sub(l.clk.Now()); remaining > 0 {
			snapshot.Remaining = remaining
		}
	}

	return snapshot
}

func (l *Lock) deadlineLocked() time.Time {
	return l.lockedAt.Add(l.policy.Duration)
}

func (l *Lock) startTickerLocked() {
	ticker := l.clk.Ticker(tickInterval)
	stop := make(chan struct{})
	l.stopTick = stop

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				if l.tick(now) {
					return
				}
			}
		}
	}()
}

// stopTickerLocked идемпотентна: остановка уже остановленного тикера — no-op.
func (l *Lock) stopTickerLocked() {
	if l.stopTick == nil {
		return
	}

	close(l.stopTick)
	l.stopTick = nil
}

// tick возвращает true, когда тикер больше не нужен. Граница включающая:
// лок истекает ровно на now >= lockedAt + duration, не на тик позже.
func (l *Lock) tick(now time.Time) bool {
	l.mu.Lock()

	if l.state != entity.LockStateLocked {
		l.mu.Unlock()
		return true
	}

	if now.Before(l.deadlineLocked()) {
		l.mu.Unlock()
		return false
	}

	l.state = entity.LockStateExpired
	l.stopTick = nil
	snapshot := l.snapshotLocked()
	onExpire := l.onExpire

	l.mu.Unlock()

	// Переход под мьютексом случается один раз, поэтому и уведомление
	// уходит ровно один раз.
	if onExpire != nil {
		onExpire(snapshot)
	}

	return true
}

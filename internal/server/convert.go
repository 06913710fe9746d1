package server

import (
	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/pkg/rest"
)

func newRESTQuote(quote entity.Quote) rest.Quote {
	return rest.Quote{
		BasePrice:          quote.BasePrice.String(),
		MarkupPercent:      quote.MarkupPercent.String(),
		EffectivePrice:     quote.EffectivePrice.StringFixed(domain.PriceScale),
		StandardPrice:      quote.StandardPrice.StringFixed(domain.PriceScale),
		Savings:            quote.Savings.String(),
		DailyChangePercent: quote.DailyChangePercent.String(),
		Volume:             quote.Volume.String(),
		High24h:            quote.High24h.String(),
		Low24h:             quote.Low24h.String(),
		TradeCount:         quote.TradeCount,
		Source:             quote.Source.String(),
		FetchedAt:          quote.FetchedAt,
		Stale:              quote.Stale,
	}
}

func newRESTLock(lock entity.PriceLock) rest.Lock {
	restLock := rest.Lock{
		ID:               lock.ID,
		State:            string(lock.State),
		Policy:           lock.Policy,
		LockedAt:         lock.LockedAt,
		RemainingSeconds: int64(lock.Remaining.Seconds()),
	}

	if lock.State == entity.LockStateLocked {
		restLock.LockedPrice = lock.LockedPrice.StringFixed(domain.PriceScale)
	}

	return restLock
}

func newRESTOrderDraft(draft entity.OrderDraft) rest.OrderDraft {
	return rest.OrderDraft{
		ID:            draft.ID,
		Amount:        draft.Amount.String(),
		Network:       draft.Network.String(),
		WalletAddress: draft.WalletAddress,
		LockedPrice:   draft.LockedPrice.StringFixed(domain.PriceScale),
		Total:         draft.Total.String(),
		LockedAt:      draft.LockedAt,
	}
}

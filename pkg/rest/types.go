// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

type Quote struct {
	BasePrice          string    `json:"basePrice"`
	MarkupPercent      string    `json:"markupPercent"`
	EffectivePrice     string    `json:"effectivePrice"`
	StandardPrice      string    `json:"standardPrice"`
	Savings            string    `json:"savings"`
	DailyChangePercent string    `json:"dailyChangePercent"`
	Volume             string    `json:"volume"`
	High24h            string    `json:"high24h"`
	Low24h             string    `json:"low24h"`
	TradeCount         int64     `json:"tradeCount"`
	Source             string    `json:"source"`
	FetchedAt          time.Time `json:"fetchedAt"`
	Stale              bool      `json:"stale"`
}

type LockRequest struct {
	Policy string `json:"policy" validate:"required,oneof=standard express"`
	Amount string `json:"amount" validate:"required"`
}

type Lock struct {
	ID               string    `json:"id"`
	State            string    `json:"state"`
	Policy           string    `json:"policy"`
	LockedPrice      string    `json:"lockedPrice"`
	LockedAt         time.Time `json:"lockedAt"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

type OrderRequest struct {
	Amount        string `json:"amount" validate:"required"`
	Network       string `json:"network" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
}

type OrderDraft struct {
	ID            string    `json:"id"`
	Amount        string    `json:"amount"`
	Network       string    `json:"network"`
	WalletAddress string    `json:"walletAddress"`
	LockedPrice   string    `json:"lockedPrice"`
	Total         string    `json:"total"`
	LockedAt      time.Time `json:"lockedAt"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string

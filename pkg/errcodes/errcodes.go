package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Коды ценового ядра
	SourceUnavailable   failure.ErrorCode = "SourceUnavailable"   // Апстрим с котировками недоступен
	ResolverUnavailable failure.ErrorCode = "ResolverUnavailable" // Не удалось прочитать партнёрский профиль
	PartnerNotFound     failure.ErrorCode = "PartnerNotFound"     // Активного партнёрского профиля нет
	UnknownPriceSource  failure.ErrorCode = "UnknownPriceSource"

	// Коды price-lock и заявок
	InvalidAmount        failure.ErrorCode = "InvalidAmount"        // Сумма ниже минимальной
	InvalidWalletAddress failure.ErrorCode = "InvalidWalletAddress" // Адрес не прошёл форматную проверку
	UnsupportedNetwork   failure.ErrorCode = "UnsupportedNetwork"
	LockNotActive        failure.ErrorCode = "LockNotActive" // Заявка собирается только из активного лока
	LockAlreadyActive    failure.ErrorCode = "LockAlreadyActive"
	LockNotFound         failure.ErrorCode = "LockNotFound"
	UnknownLockPolicy    failure.ErrorCode = "UnknownLockPolicy"
	OrderNotFound        failure.ErrorCode = "OrderNotFound"
)

package server

import (
	"git.appkode.ru/pub/go/failure"

	"otc_desk/internal/domain"
	"otc_desk/pkg/errcodes"
)

// asFailure переводит доменные ошибки в failure-ошибки, чтобы reply.Error
// отдал правильный HTTP-статус и код наружу.
func asFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.LockNotFound, errcodes.OrderNotFound, errcodes.PartnerNotFound:
		return failure.NewNotFoundErrorFromError(err, failure.WithCode(code))
	case errcodes.InvalidAmount,
		errcodes.InvalidWalletAddress,
		errcodes.UnsupportedNetwork,
		errcodes.UnknownLockPolicy,
		errcodes.UnknownPriceSource:
		return failure.NewInvalidArgumentErrorFromError(err, failure.WithCode(code))
	case errcodes.LockNotActive, errcodes.LockAlreadyActive:
		return failure.NewConflictErrorFromError(err, failure.WithCode(code))
	default:
		return err
	}
}

package quote

import (
	"context"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

type PartnerProfileRepository interface {
	GetByCallerID(ctx context.Context, callerID string) (*entity.MarkupProfile, error)
}

// MarkupResolver определяет эффективную наценку для вызывающего: публичный
// дефолт или договорный партнёрский профиль. Профиль читается из хранилища
// на каждый вызов — статус партнёра может измениться между запросами, и
// закэшированное "активен" — это дыра, а не оптимизация.
type MarkupResolver struct {
	partners PartnerProfileRepository
}

func NewMarkupResolver(partners PartnerProfileRepository) *MarkupResolver {
	return &MarkupResolver{partners: partners}
}

// DefaultProfile — публичный профиль для анонимных клиентов.
func DefaultProfile() entity.MarkupProfile {
	return entity.MarkupProfile{
		CallerID:      "",
		MarkupPercent: domain.DefaultMarkupPercent,
		IsActive:      true,
		Source:        value.DefaultSource,
	}
}

func (r *MarkupResolver) Resolve(ctx context.Context, callerID string) (entity.MarkupProfile, error) {
	if callerID == "" {
		return DefaultProfile(), nil
	}

	profile, err := r.partners.GetByCallerID(ctx, callerID)
	if err != nil {
		if code, ok := domain.GetCode(err); ok && code == errcodes.PartnerNotFound {
			return DefaultProfile(), nil
		}

		return entity.MarkupProfile{}, domain.WrapError(err, errcodes.ResolverUnavailable, "partner profile lookup failed")
	}

	if !profile.IsActive {
		return DefaultProfile(), nil
	}

	// Договорная наценка может быть ниже, равна или выше публичной —
	// не клампим.
	return *profile, nil
}

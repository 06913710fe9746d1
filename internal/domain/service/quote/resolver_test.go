package quote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"otc_desk/internal/domain"
	"otc_desk/internal/domain/entity"
	"otc_desk/internal/domain/service/quote"
	"otc_desk/internal/domain/value"
	"otc_desk/pkg/errcodes"
)

type partnerRepoStub struct {
	profile *entity.MarkupProfile
	err     error
}

func (r partnerRepoStub) GetByCallerID(context.Context, string) (*entity.MarkupProfile, error) {
	return r.profile, r.err
}

func TestResolveEmptyCallerReturnsDefault(t *testing.T) {
	rq := require.New(t)

	resolver := quote.NewMarkupResolver(partnerRepoStub{err: errors.New("must not be called")})

	profile, err := resolver.Resolve(context.Background(), "")
	rq.NoError(err)
	rq.Equal(quote.DefaultProfile(), profile)
}

func TestResolveActivePartner(t *testing.T) {
	rq := require.New(t)

	want := entity.MarkupProfile{
		CallerID:      "partner-1",
		MarkupPercent: decimal.RequireFromString("0.5"),
		IsActive:      true,
		Source:        value.SourceOKX,
	}

	resolver := quote.NewMarkupResolver(partnerRepoStub{profile: &want})

	profile, err := resolver.Resolve(context.Background(), "partner-1")
	rq.NoError(err)
	rq.Equal(want, profile)
}

func TestResolveUnknownPartnerReturnsDefault(t *testing.T) {
	rq := require.New(t)

	resolver := quote.NewMarkupResolver(partnerRepoStub{
		err: domain.NewError(errcodes.PartnerNotFound, "partner profile not found"),
	})

	profile, err := resolver.Resolve(context.Background(), "unknown")
	rq.NoError(err)
	rq.Equal(quote.DefaultProfile(), profile)
}

func TestResolveInactivePartnerReturnsDefault(t *testing.T) {
	rq := require.New(t)

	resolver := quote.NewMarkupResolver(partnerRepoStub{
		profile: &entity.MarkupProfile{
			CallerID:      "partner-1",
			MarkupPercent: decimal.RequireFromString("0.5"),
			IsActive:      false,
			Source:        value.SourceBinance,
		},
	})

	profile, err := resolver.Resolve(context.Background(), "partner-1")
	rq.NoError(err)
	rq.Equal(quote.DefaultProfile(), profile)
}

func TestResolveStorageFailure(t *testing.T) {
	rq := require.New(t)

	resolver := quote.NewMarkupResolver(partnerRepoStub{err: errors.New("connection refused")})

	_, err := resolver.Resolve(context.Background(), "partner-1")
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.ResolverUnavailable, code)
}

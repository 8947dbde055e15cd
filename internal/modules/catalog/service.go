package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brokerage/internal/domain"
	"brokerage/internal/pkg/pricing"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	properties      PropertyRepository
	defaultCurrency string
	logger          *zap.Logger
}

func NewService(properties PropertyRepository, defaultCurrency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{properties: properties, defaultCurrency: defaultCurrency, logger: logger}
}

func (s *Service) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*domain.Property, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	currency, err := validator.NormalizeCurrency(req.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}

	p := &domain.Property{
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Title:        strings.TrimSpace(req.Title),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		Kind:         domain.PropertyKind(req.Kind),
		Operation:    domain.PropertyOperation(req.Operation),
		BasePrice:    req.BasePrice,
		DiscountPct:  req.DiscountPct,
		SurchargePct: req.SurchargePct,
		Currency:     currency,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.logger.Info("property created", zap.Int64("property_id", p.ID), zap.String("code", p.Code))
	return p, nil
}

func (s *Service) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// ResolveProperty turns an id-or-code reference into the stored property.
func (s *Service) ResolveProperty(ctx context.Context, ref domain.Ref) (*domain.Property, error) {
	if id, ok := ref.ID(); ok {
		return s.GetProperty(ctx, id)
	}
	code, ok := ref.Name()
	if !ok {
		return nil, validator.Required("property")
	}
	p, err := s.properties.GetByCode(ctx, code)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context, f repository.PropertyFilter) ([]domain.Property, int64, error) {
	return s.properties.List(ctx, f)
}

func (s *Service) UpdatePricing(ctx context.Context, id int64, req UpdatePricingRequest) (*domain.Property, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if err := s.properties.UpdatePricing(ctx, id, req.BasePrice, req.DiscountPct, req.SurchargePct); err != nil {
		return nil, notFound(err)
	}
	return s.GetProperty(ctx, id)
}

func (s *Service) QuotePrice(ctx context.Context, id int64, req QuoteRequest) (*Quote, error) {
	p, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	base, discount, surcharge := p.BasePrice, p.DiscountPct, p.SurchargePct
	if req.BasePrice != nil {
		base = *req.BasePrice
	}
	if req.DiscountPct != nil {
		discount = *req.DiscountPct
	}
	if req.SurchargePct != nil {
		surcharge = *req.SurchargePct
	}

	b := pricing.Compute(base, discount, surcharge)
	return &Quote{
		PropertyID: p.ID,
		Code:       p.Code,
		Currency:   p.Currency,
		Breakdown:  b,
		Price:      b.Final,
	}, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPropertyNotFound
	}
	return err
}

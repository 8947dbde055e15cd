package contact

import (
	"context"
	"errors"
	"fmt"

	"brokerage/internal/domain"
	"brokerage/internal/modules/rental"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"go.uber.org/zap"
)

// conversionPlan holds the payload once validated and resolved to ids, so
// nothing inside the transaction depends on raw input.
type conversionPlan struct {
	target    domain.ContactCategory
	candidate *Candidate
	tenant    *rental.Terms
	owned     []int64
}

// Convert moves a lead to tenant or owner. The subject is an existing
// contact, a candidate resolved by phone then email, or the sender of a
// consultation. A candidate nobody knows becomes a new lead first, so
// converting the same person twice never creates two contacts.
//
// The category change, the rental, the links and the consultation binding
// commit together or not at all.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (*ConversionResult, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	plan, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	var out *ConversionResult
	run := func(ctx context.Context) error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			res, err := s.convertInTx(ctx, tx, req, plan)
			if err != nil {
				return err
			}
			out = res
			return nil
		})
	}

	if plan.tenant != nil {
		err = s.booker.WithPropertyLock(ctx, plan.tenant.PropertyID, func(ctx context.Context) error {
			return s.retryOnDuplicate(ctx, run)
		})
	} else {
		err = s.retryOnDuplicate(ctx, run)
	}
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.Int64("contact_id", out.Contact.ID),
		zap.String("category", string(out.Contact.Category)),
		zap.Bool("created", out.Created),
	}
	if out.Rental != nil {
		fields = append(fields,
			zap.Int64("rental_id", out.Rental.ID),
			zap.Int64("property_id", out.Rental.PropertyID))
	}
	s.logger.Info("contact converted", fields...)
	return out, nil
}

func (s *Service) plan(ctx context.Context, req ConvertRequest) (*conversionPlan, error) {
	p := &conversionPlan{target: domain.ContactCategory(req.Target)}

	if req.Candidate != nil {
		c := req.Candidate.candidate()
		if !c.hasIdentity() {
			return nil, ErrMissingIdentity
		}
		phone, email, err := identity(c.Phone, c.Email)
		if err != nil {
			return nil, err
		}
		c.Phone, c.Email = phone, email
		p.candidate = &c
	}
	if req.ContactID == nil && p.candidate == nil && req.ConsultationID == nil {
		return nil, ErrMissingIdentity
	}

	switch p.target {
	case domain.CategoryTenant:
		t := req.Tenant
		if t == nil {
			return nil, validator.Required("tenant")
		}
		ref, ok := t.Property.Ref()
		if !ok {
			return nil, validator.Required("property")
		}
		terms, err := rental.ParseTerms(t.StartDate, t.EndDate, t.MonthlyAmount, t.Currency, s.booker.DefaultCurrency())
		if err != nil {
			return nil, err
		}
		prop, err := s.properties.ResolveProperty(ctx, ref)
		if err != nil {
			return nil, err
		}
		terms.PropertyID = prop.ID
		p.tenant = &terms

	case domain.CategoryOwner:
		if req.Owner == nil {
			break
		}
		seen := make(map[int64]bool)
		for _, pr := range req.Owner.Properties {
			ref, ok := pr.Ref()
			if !ok {
				return nil, validator.Required("property")
			}
			prop, err := s.properties.ResolveProperty(ctx, ref)
			if err != nil {
				return nil, err
			}
			if !seen[prop.ID] {
				seen[prop.ID] = true
				p.owned = append(p.owned, prop.ID)
			}
		}
	}
	return p, nil
}

func (s *Service) convertInTx(ctx context.Context, tx repository.Tx, req ConvertRequest, p *conversionPlan) (*ConversionResult, error) {
	var cons *domain.Consultation
	if req.ConsultationID != nil {
		var err error
		if cons, err = s.getConsultation(ctx, tx, *req.ConsultationID); err != nil {
			return nil, err
		}
	}

	c, created, err := s.subject(ctx, tx, req, p, cons)
	if err != nil {
		return nil, err
	}
	if cons != nil && cons.ContactID != nil && *cons.ContactID != c.ID {
		return nil, ErrConsultationMismatch
	}

	if err := CheckTransition(c.Category, p.target); err != nil {
		return nil, err
	}

	out := &ConversionResult{Created: created}
	if p.tenant != nil {
		terms := *p.tenant
		terms.TenantID = c.ID
		r, err := s.booker.BookInTx(ctx, tx, terms)
		if err != nil {
			return nil, err
		}
		out.Rental = r
	}
	for _, propertyID := range p.owned {
		if err := tx.Links().Create(ctx, &domain.PropertyLink{
			ContactID: c.ID, PropertyID: propertyID, Kind: domain.LinkOwnership,
		}); err != nil {
			return nil, fmt.Errorf("link ownership: %w", err)
		}
	}

	if err := tx.Contacts().UpdateCategory(ctx, c.ID, p.target); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	c.Category = p.target

	if cons != nil {
		if err := tx.Consultations().BindContact(ctx, cons.ID, c.ID); err != nil {
			return nil, fmt.Errorf("bind consultation: %w", err)
		}
		if err := tx.Consultations().MarkRead(ctx, cons.ID); err != nil {
			return nil, fmt.Errorf("mark consultation read: %w", err)
		}
		out.ConsultationID = &cons.ID
	}

	links, err := tx.Links().ListByContact(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	out.Contact = c
	out.Links = links
	return out, nil
}

// subject finds the contact being converted, creating a lead for an
// unknown candidate.
func (s *Service) subject(ctx context.Context, tx repository.Tx, req ConvertRequest, p *conversionPlan, cons *domain.Consultation) (*domain.Contact, bool, error) {
	if req.ContactID != nil {
		c, err := tx.Contacts().GetByID(ctx, *req.ContactID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, false, ErrContactNotFound
			}
			return nil, false, err
		}
		return c, false, nil
	}

	if p.candidate != nil {
		return findOrCreateLead(ctx, tx, *p.candidate)
	}

	// only the consultation is left
	if cons.ContactID != nil {
		c, err := tx.Contacts().GetByID(ctx, *cons.ContactID)
		if err == nil {
			return c, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
	}
	first, last := splitName(cons.Name)
	c, created, err := findOrCreateLead(ctx, tx, Candidate{
		FirstName: first,
		LastName:  last,
		Phone:     cons.Phone,
		Email:     cons.Email,
	})
	if err != nil {
		return nil, false, err
	}
	// the stored contact id pointed at a removed contact
	cons.ContactID = nil
	return c, created, nil
}

package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brokerage/internal/domain"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	store      repository.Transactor
	properties PropertyResolver
	booker     Booker
	logger     *zap.Logger
}

func NewService(store repository.Transactor, properties PropertyResolver, booker Booker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, properties: properties, booker: booker, logger: logger}
}

// identity validates and normalizes a phone/email pair. At least one must
// be present.
func identity(phone, email string) (string, string, error) {
	var err error
	if strings.TrimSpace(phone) != "" {
		if phone, err = validator.ValidatePhoneDigits(phone); err != nil {
			return "", "", err
		}
	} else {
		phone = ""
	}
	if strings.TrimSpace(email) != "" {
		if !validator.ValidateEmail(email) {
			return "", "", &validator.ValidationError{Code: validator.CodeInvalidEmail, Field: "email", Message: "is not a valid address"}
		}
		email = validator.NormalizeEmail(email)
	} else {
		email = ""
	}
	if phone == "" && email == "" {
		return "", "", ErrMissingIdentity
	}
	return phone, email, nil
}

// CreateContact registers a lead entered by staff. A candidate already known
// by phone or email is rejected with a *DuplicateContactError.
func (s *Service) CreateContact(ctx context.Context, req CreateContactRequest) (*domain.Contact, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	phone, email, err := identity(req.Phone, req.Email)
	if err != nil {
		return nil, err
	}

	c := &domain.Contact{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     phone,
		Email:     email,
		DNI:       strings.TrimSpace(req.DNI),
		Notes:     req.Notes,
		Category:  domain.CategoryLead,
	}

	for attempt := 0; attempt < 2; attempt++ {
		res, err := NewResolver(s.store.Contacts()).Resolve(ctx, Candidate{Phone: phone, Email: email})
		if err != nil {
			return nil, err
		}
		if res.Found() {
			s.logger.Info("duplicate contact rejected",
				zap.Int64("contact_id", res.Contact.ID),
				zap.String("matched_by", string(res.MatchedBy)))
			return nil, &DuplicateContactError{ExistingID: res.Contact.ID, Field: string(res.MatchedBy)}
		}

		err = s.store.Contacts().Create(ctx, c)
		if err == nil {
			s.logger.Info("contact created", zap.Int64("contact_id", c.ID))
			return c, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("create contact: %w", err)
		}
		// lost a race with a concurrent insert; resolve again
	}
	return nil, ErrDuplicateContact
}

func (s *Service) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	c, err := s.store.Contacts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ListContacts(ctx context.Context, f repository.ContactFilter) ([]domain.Contact, int64, error) {
	if f.Category != "" && !f.Category.Valid() {
		return nil, 0, &validator.ValidationError{Code: validator.CodeInvalidValue, Field: "category", Message: "unknown category " + string(f.Category)}
	}
	return s.store.Contacts().List(ctx, f)
}

// UpdateContact edits names, identity and notes. Phone and email stay
// unique across contacts other than this one.
func (s *Service) UpdateContact(ctx context.Context, id int64, req UpdateContactRequest) (*domain.Contact, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	phone, email, err := identity(req.Phone, req.Email)
	if err != nil {
		return nil, err
	}

	c, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	contacts := s.store.Contacts()
	if phone != "" {
		other, err := contacts.FindByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, &DuplicateContactError{ExistingID: other.ID, Field: "phone"}
		}
	}
	if email != "" {
		other, err := contacts.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, &DuplicateContactError{ExistingID: other.ID, Field: "email"}
		}
	}

	c.FirstName = strings.TrimSpace(req.FirstName)
	c.LastName = strings.TrimSpace(req.LastName)
	c.Phone = phone
	c.Email = email
	c.DNI = strings.TrimSpace(req.DNI)
	c.Notes = req.Notes

	if err := contacts.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrContactNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateContact
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return s.GetContact(ctx, id)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	err := s.store.Contacts().Delete(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("contact deleted", zap.Int64("contact_id", id))
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrContactNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrContactInUse
	}
	return fmt.Errorf("delete contact: %w", err)
}

// ResolveContact exposes the resolver read-only.
func (s *Service) ResolveContact(ctx context.Context, req ResolveRequest) (Resolution, error) {
	return NewResolver(s.store.Contacts()).Resolve(ctx, Candidate{Phone: req.Phone, Email: req.Email})
}

// AddInterest links a contact to a property it asked about.
func (s *Service) AddInterest(ctx context.Context, contactID int64, req InterestRequest) (*domain.PropertyLink, error) {
	ref, ok := req.Property.Ref()
	if !ok {
		return nil, validator.Required("property")
	}
	p, err := s.properties.ResolveProperty(ctx, ref)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetContact(ctx, contactID); err != nil {
		return nil, err
	}

	l := &domain.PropertyLink{ContactID: contactID, PropertyID: p.ID, Kind: domain.LinkInterest}
	if err := s.store.Links().Create(ctx, l); err != nil {
		return nil, fmt.Errorf("link interest: %w", err)
	}
	return l, nil
}

func (s *Service) ListLinks(ctx context.Context, contactID int64) ([]domain.PropertyLink, error) {
	if _, err := s.GetContact(ctx, contactID); err != nil {
		return nil, err
	}
	return s.store.Links().ListByContact(ctx, contactID)
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// SubmitConsultation records a web inquiry. The sender is resolved to an
// existing contact or, when unknown, created as a lead.
func (s *Service) SubmitConsultation(ctx context.Context, req SubmitConsultationRequest) (*ConsultationResult, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	phone, email, err := identity(req.Phone, req.Email)
	if err != nil {
		return nil, err
	}

	var propertyID *int64
	ctype := domain.ConsultationType(req.Type)
	if ctype == "" {
		ctype = domain.ConsultationGeneral
	}
	if req.Property != nil {
		if ref, ok := req.Property.Ref(); ok {
			p, err := s.properties.ResolveProperty(ctx, ref)
			if err != nil {
				return nil, err
			}
			propertyID = &p.ID
			if ctype == domain.ConsultationGeneral {
				ctype = domain.ConsultationProperty
			}
		}
	}

	first, last := splitName(req.Name)
	cand := Candidate{FirstName: first, LastName: last, Phone: phone, Email: email}

	var out *ConsultationResult
	err = s.retryOnDuplicate(ctx, func(ctx context.Context) error {
		return s.store.Transaction(ctx, func(tx repository.Tx) error {
			c, created, err := findOrCreateLead(ctx, tx, cand)
			if err != nil {
				return err
			}

			cons := &domain.Consultation{
				ContactID:  &c.ID,
				PropertyID: propertyID,
				Type:       ctype,
				Name:       strings.TrimSpace(req.Name),
				Phone:      phone,
				Email:      email,
				Message:    req.Message,
			}
			if err := tx.Consultations().Create(ctx, cons); err != nil {
				return fmt.Errorf("create consultation: %w", err)
			}
			if propertyID != nil {
				if err := tx.Links().Create(ctx, &domain.PropertyLink{
					ContactID: c.ID, PropertyID: *propertyID, Kind: domain.LinkInterest,
				}); err != nil {
					return fmt.Errorf("link interest: %w", err)
				}
			}
			out = &ConsultationResult{Consultation: cons, Contact: c, ContactCreated: created}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("consultation received",
		zap.Int64("consultation_id", out.Consultation.ID),
		zap.Int64("contact_id", out.Contact.ID),
		zap.Bool("contact_created", out.ContactCreated))
	return out, nil
}

// findOrCreateLead resolves cand on tx and creates a lead only when no
// contact matches.
func findOrCreateLead(ctx context.Context, tx repository.Tx, cand Candidate) (*domain.Contact, bool, error) {
	res, err := NewResolver(tx.Contacts()).Resolve(ctx, cand)
	if err != nil {
		return nil, false, err
	}
	if res.Found() {
		return res.Contact, false, nil
	}

	if strings.TrimSpace(cand.FirstName) == "" {
		return nil, false, validator.Required("first_name")
	}
	phone := validator.NormalizePhone(cand.Phone)
	email := validator.NormalizeEmail(cand.Email)
	c := &domain.Contact{
		FirstName: strings.TrimSpace(cand.FirstName),
		LastName:  strings.TrimSpace(cand.LastName),
		Phone:     phone,
		Email:     email,
		DNI:       strings.TrimSpace(cand.DNI),
		Category:  domain.CategoryLead,
	}
	if err := tx.Contacts().Create(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// retryOnDuplicate re-runs fn once when it failed on a unique identity
// key, which happens when a concurrent request created the same contact
// between resolution and insert. The second run resolves to that contact.
func (s *Service) retryOnDuplicate(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil && errors.Is(err, repository.ErrDuplicate) {
		s.logger.Warn("identity insert raced, resolving again", zap.Error(err))
		err = fn(ctx)
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateContact
	}
	return err
}

func (s *Service) ListConsultations(ctx context.Context, f repository.ConsultationFilter) ([]domain.Consultation, int64, error) {
	return s.store.Consultations().List(ctx, f)
}

func (s *Service) MarkConsultationRead(ctx context.Context, id int64) error {
	if err := s.store.Consultations().MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConsultationNotFound
		}
		return err
	}
	return nil
}

// RespondConsultation stores the staff answer and marks the consultation read.
func (s *Service) RespondConsultation(ctx context.Context, id int64, req RespondRequest) (*domain.Consultation, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	err := s.store.Consultations().Respond(ctx, id, strings.TrimSpace(req.Response), time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return s.getConsultation(ctx, s.store, id)
}

func (s *Service) getConsultation(ctx context.Context, tx repository.Tx, id int64) (*domain.Consultation, error) {
	c, err := tx.Consultations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return c, nil
}

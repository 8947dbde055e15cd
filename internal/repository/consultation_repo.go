package repository

import (
	"context"
	"time"

	"brokerage/internal/domain"

	"gorm.io/gorm"
)

type ConsultationRepository struct {
	db *gorm.DB
}

var _ ConsultationStore = (*ConsultationRepository)(nil)

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

type consultationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ContactID   *int64     `gorm:"column:contact_id;index"`
	PropertyID  *int64     `gorm:"column:property_id;index"`
	Type        string     `gorm:"column:type;size:16;not null"`
	Name        string     `gorm:"column:name;size:240"`
	Phone       *string    `gorm:"column:phone;size:20"`
	Email       *string    `gorm:"column:email;size:254"`
	Message     string     `gorm:"column:message;type:text;not null"`
	Read        bool       `gorm:"column:read;not null;default:false;index"`
	Response    *string    `gorm:"column:response;type:text"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`

	Contact  *contactModel  `gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL"`
	Property *propertyModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL"`
}

func (consultationModel) TableName() string { return "consultations" }

func toDomainConsultation(m consultationModel) *domain.Consultation {
	return &domain.Consultation{
		ID:          m.ID,
		ContactID:   m.ContactID,
		PropertyID:  m.PropertyID,
		Type:        domain.ConsultationType(m.Type),
		Name:        m.Name,
		Phone:       deref(m.Phone),
		Email:       deref(m.Email),
		Message:     m.Message,
		Read:        m.Read,
		Response:    deref(m.Response),
		RespondedAt: m.RespondedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *domain.Consultation) error {
	m := consultationModel{
		ContactID:  c.ContactID,
		PropertyID: c.PropertyID,
		Type:       string(c.Type),
		Name:       c.Name,
		Phone:      nullable(c.Phone),
		Email:      nullable(c.Email),
		Message:    c.Message,
		Read:       c.Read,
		Response:   nullable(c.Response),
		CreatedAt:  c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = *toDomainConsultation(m)
	return nil
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	var m consultationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainConsultation(m), nil
}

func (r *ConsultationRepository) List(ctx context.Context, f ConsultationFilter) ([]domain.Consultation, int64, error) {
	q := r.db.WithContext(ctx).Model(&consultationModel{})
	if f.UnreadOnly {
		q = q.Where("read = ?", false)
	}
	if f.ContactID > 0 {
		q = q.Where("contact_id = ?", f.ContactID)
	}
	if f.PropertyID > 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page(f.Limit, f.Offset)
	var rows []consultationModel
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Consultation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainConsultation(m))
	}
	return out, total, nil
}

func (r *ConsultationRepository) BindContact(ctx context.Context, id, contactID int64) error {
	return r.update(ctx, id, map[string]interface{}{"contact_id": contactID})
}

func (r *ConsultationRepository) MarkRead(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]interface{}{"read": true})
}

func (r *ConsultationRepository) Respond(ctx context.Context, id int64, response string, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"response":     response,
		"responded_at": at,
		"read":         true,
	})
}

func (r *ConsultationRepository) update(ctx context.Context, id int64, values map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&consultationModel{}).Where("id = ?", id).Updates(values)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

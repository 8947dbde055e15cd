package repository

import (
	"context"
	"time"

	"brokerage/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LinkRepository struct {
	db *gorm.DB
}

var _ LinkStore = (*LinkRepository)(nil)

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

type linkModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ContactID  int64     `gorm:"column:contact_id;not null;uniqueIndex:idx_links_contact_property_kind,priority:1"`
	PropertyID int64     `gorm:"column:property_id;not null;uniqueIndex:idx_links_contact_property_kind,priority:2;index"`
	Kind       string    `gorm:"column:kind;size:16;not null;uniqueIndex:idx_links_contact_property_kind,priority:3"`
	RentalID   *int64    `gorm:"column:rental_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	Contact  *contactModel  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Property *propertyModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

func (linkModel) TableName() string { return "contact_property_links" }

func toDomainLink(m linkModel) domain.PropertyLink {
	return domain.PropertyLink{
		ID:         m.ID,
		ContactID:  m.ContactID,
		PropertyID: m.PropertyID,
		Kind:       domain.LinkKind(m.Kind),
		RentalID:   m.RentalID,
		CreatedAt:  m.CreatedAt,
	}
}

// Create inserts the link or, when it already exists, refreshes its rental reference.
func (r *LinkRepository) Create(ctx context.Context, l *domain.PropertyLink) error {
	m := linkModel{
		ContactID:  l.ContactID,
		PropertyID: l.PropertyID,
		Kind:       string(l.Kind),
		RentalID:   l.RentalID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact_id"}, {Name: "property_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"rental_id"}),
	}).Create(&m).Error
	if err != nil {
		return translate(err)
	}
	*l = toDomainLink(m)
	return nil
}

func (r *LinkRepository) ListByContact(ctx context.Context, contactID int64) ([]domain.PropertyLink, error) {
	var rows []linkModel
	if err := r.db.WithContext(ctx).Where("contact_id = ?", contactID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.PropertyLink, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainLink(m))
	}
	return out, nil
}

package repository

import (
	"context"
	"time"

	"brokerage/internal/domain"

	"gorm.io/gorm"
)

type RentalRepository struct {
	db *gorm.DB
}

var _ RentalStore = (*RentalRepository)(nil)

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

type rentalModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	PropertyID    int64     `gorm:"column:property_id;not null;index:idx_rentals_property_start,priority:1"`
	TenantID      int64     `gorm:"column:tenant_id;not null;index"`
	StartDate     time.Time `gorm:"column:start_date;type:date;not null;index:idx_rentals_property_start,priority:2"`
	EndDate       time.Time `gorm:"column:end_date;type:date;not null;check:chk_rentals_dates,end_date > start_date"`
	MonthlyAmount float64   `gorm:"column:monthly_amount;type:decimal(12,2);not null"`
	Currency      string    `gorm:"column:currency;size:3;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	Property *propertyModel `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT"`
	Tenant   *contactModel  `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT"`
}

func (rentalModel) TableName() string { return "rentals" }

func toDomainRental(m rentalModel) *domain.Rental {
	return &domain.Rental{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		TenantID:      m.TenantID,
		StartDate:     m.StartDate.UTC(),
		EndDate:       m.EndDate.UTC(),
		MonthlyAmount: m.MonthlyAmount,
		Currency:      m.Currency,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toRentalModel(r *domain.Rental) rentalModel {
	return rentalModel{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		TenantID:      r.TenantID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		MonthlyAmount: r.MonthlyAmount,
		Currency:      r.Currency,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	m := toRentalModel(rental)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*rental = *toDomainRental(m)
	return nil
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	tx := r.db.WithContext(ctx).Model(&rentalModel{}).Where("id = ?", rental.ID).
		Updates(map[string]interface{}{
			"start_date":     rental.StartDate,
			"end_date":       rental.EndDate,
			"monthly_amount": rental.MonthlyAmount,
			"currency":       rental.Currency,
			"updated_at":     time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	var m rentalModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainRental(m), nil
}

// FindByProperty returns every rental of the property ordered by start date.
func (r *RentalRepository) FindByProperty(ctx context.Context, propertyID int64) ([]domain.Rental, error) {
	return r.find(ctx, "property_id = ?", propertyID)
}

func (r *RentalRepository) FindByTenant(ctx context.Context, tenantID int64) ([]domain.Rental, error) {
	return r.find(ctx, "tenant_id = ?", tenantID)
}

func (r *RentalRepository) find(ctx context.Context, query string, arg interface{}) ([]domain.Rental, error) {
	var rows []rentalModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("start_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Rental, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRental(m))
	}
	return out, nil
}

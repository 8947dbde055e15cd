package repository

import (
	"context"
	"strings"
	"time"

	"brokerage/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PropertyRepository struct {
	db *gorm.DB
}

var _ PropertyStore = (*PropertyRepository)(nil)

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Code         string    `gorm:"column:code;size:32;not null;uniqueIndex"`
	Title        string    `gorm:"column:title;size:200;not null"`
	Address      string    `gorm:"column:address;size:255"`
	City         string    `gorm:"column:city;size:120;index"`
	Kind         string    `gorm:"column:kind;size:16;not null"`
	Operation    string    `gorm:"column:operation;size:8;not null;index"`
	BasePrice    float64   `gorm:"column:base_price;type:decimal(14,2);not null;default:0"`
	DiscountPct  float64   `gorm:"column:discount_pct;type:decimal(6,2);not null;default:0"`
	SurchargePct float64   `gorm:"column:surcharge_pct;type:decimal(6,2);not null;default:0"`
	Currency     string    `gorm:"column:currency;size:3;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:           m.ID,
		Code:         m.Code,
		Title:        m.Title,
		Address:      m.Address,
		City:         m.City,
		Kind:         domain.PropertyKind(m.Kind),
		Operation:    domain.PropertyOperation(m.Operation),
		BasePrice:    m.BasePrice,
		DiscountPct:  m.DiscountPct,
		SurchargePct: m.SurchargePct,
		Currency:     m.Currency,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := propertyModel{
		Code:         strings.ToUpper(strings.TrimSpace(p.Code)),
		Title:        p.Title,
		Address:      p.Address,
		City:         p.City,
		Kind:         string(p.Kind),
		Operation:    string(p.Operation),
		BasePrice:    p.BasePrice,
		DiscountPct:  p.DiscountPct,
		SurchargePct: p.SurchargePct,
		Currency:     p.Currency,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) GetByCode(ctx context.Context, code string) (*domain.Property, error) {
	var m propertyModel
	err := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainProperty(m), nil
}

// LockForUpdate reads the property row with FOR UPDATE so concurrent rental
// writers for the same property queue behind the current transaction.
// SQLite ignores the locking clause.
func (r *PropertyRepository) LockForUpdate(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) List(ctx context.Context, f PropertyFilter) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{})
	if f.Operation != "" {
		q = q.Where("operation = ?", string(f.Operation))
	}
	if c := strings.TrimSpace(f.City); c != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(c))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page(f.Limit, f.Offset)
	var rows []propertyModel
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}

func (r *PropertyRepository) UpdatePricing(ctx context.Context, id int64, basePrice, discountPct, surchargePct float64) error {
	tx := r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"base_price":    basePrice,
			"discount_pct":  discountPct,
			"surcharge_pct": surchargePct,
			"updated_at":    time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"brokerage/internal/domain"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

var _ ContactStore = (*ContactRepository)(nil)

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

type contactModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name;size:120;not null"`
	LastName  string    `gorm:"column:last_name;size:120"`
	Phone     *string   `gorm:"column:phone;size:20;uniqueIndex:idx_contacts_phone"`
	Email     *string   `gorm:"column:email;size:254;uniqueIndex:idx_contacts_email"`
	DNI       *string   `gorm:"column:dni;size:20;index"`
	Category  string    `gorm:"column:category;size:16;not null;default:lead;index"`
	Notes     *string   `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (contactModel) TableName() string { return "contacts" }

func toDomainContact(m contactModel) *domain.Contact {
	return &domain.Contact{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     deref(m.Phone),
		Email:     deref(m.Email),
		DNI:       deref(m.DNI),
		Category:  domain.ContactCategory(m.Category),
		Notes:     deref(m.Notes),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toContactModel(c *domain.Contact) contactModel {
	return contactModel{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     nullable(c.Phone),
		Email:     nullable(strings.ToLower(c.Email)),
		DNI:       nullable(c.DNI),
		Category:  string(c.Category),
		Notes:     nullable(c.Notes),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	m := toContactModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*c = *toDomainContact(m)
	return nil
}

// Update writes the editable fields. Category is changed only through UpdateCategory.
func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) error {
	m := toContactModel(c)
	tx := r.db.WithContext(ctx).Model(&contactModel{ID: c.ID}).
		Select("first_name", "last_name", "phone", "email", "dni", "notes", "updated_at").
		Updates(map[string]interface{}{
			"first_name": m.FirstName,
			"last_name":  m.LastName,
			"phone":      m.Phone,
			"email":      m.Email,
			"dni":        m.DNI,
			"notes":      m.Notes,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) UpdateCategory(ctx context.Context, id int64, category domain.ContactCategory) error {
	tx := r.db.WithContext(ctx).Model(&contactModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"category": string(category), "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&contactModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	var m contactModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainContact(m), nil
}

func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	if phone == "" {
		return nil, nil
	}
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return r.findOne(ctx, "LOWER(email) = ?", email)
}

func (r *ContactRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.Contact, error) {
	var m contactModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainContact(m), nil
}

func (r *ContactRepository) List(ctx context.Context, f ContactFilter) ([]domain.Contact, int64, error) {
	q := r.db.WithContext(ctx).Model(&contactModel{})
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := page(f.Limit, f.Offset)
	var rows []contactModel
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Contact, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainContact(m))
	}
	return out, total, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"brokerage/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock, gdb
}

var contactColumns = []string{"id", "first_name", "last_name", "phone", "email", "dni", "category", "notes", "created_at", "updated_at"}

func TestContactRepository_FindByPhone(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(contactColumns).
		AddRow(7, "Lucia", "Gomez", "+542211234567", nil, nil, "lead", nil, now, now)
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE phone = \$1`).
		WillReturnRows(rows)

	c, err := NewContactRepository(gdb).FindByPhone(context.Background(), "+542211234567")

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "+542211234567", c.Phone)
	assert.Equal(t, "", c.Email)
	assert.Equal(t, domain.CategoryLead, c.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByPhone_NoMatch(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE phone = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	c, err := NewContactRepository(gdb).FindByPhone(context.Background(), "+542211234567")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByEmail_IsCaseInsensitive(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(contactColumns).
		AddRow(3, "Ana", "", nil, "ana@example.com", nil, "owner", nil, now, now)
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE LOWER\(email\) = \$1`).
		WillReturnRows(rows)

	c, err := NewContactRepository(gdb).FindByEmail(context.Background(), "  Ana@Example.COM ")

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, domain.CategoryOwner, c.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_FindByEmail_EmptySkipsQuery(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	c, err := NewContactRepository(gdb).FindByEmail(context.Background(), "   ")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Create_DuplicatePhone(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO "contacts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_contacts_phone"})

	err := NewContactRepository(gdb).Create(context.Background(), &domain.Contact{
		FirstName: "Lucia",
		Phone:     "+542211234567",
		Category:  domain.CategoryLead,
	})

	assert.ErrorIs(t, err, ErrDuplicate)
	assert.True(t, DuplicateOn(err, "phone"))
	assert.False(t, DuplicateOn(err, "email"))
}

func TestRentalRepository_Create_ExclusionViolation(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO "rentals"`).
		WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "rentals_no_overlap"})

	err := NewRentalRepository(gdb).Create(context.Background(), &domain.Rental{
		PropertyID:    1,
		TenantID:      2,
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		MonthlyAmount: 400000,
		Currency:      "ARS",
	})

	assert.ErrorIs(t, err, ErrOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_FindByProperty_OrderedByStart(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "property_id", "tenant_id", "start_date", "end_date", "monthly_amount", "currency", "created_at", "updated_at"}).
		AddRow(1, 9, 4, jan, jun, 350000.0, "ARS", jan, jan).
		AddRow(2, 9, 5, jun, dec, 380000.0, "ARS", jan, jan)
	mock.ExpectQuery(`SELECT \* FROM "rentals" WHERE property_id = \$1 ORDER BY start_date ASC, id ASC`).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	rentals, err := NewRentalRepository(gdb).FindByProperty(context.Background(), 9)

	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, jan, rentals[0].StartDate)
	assert.Equal(t, int64(5), rentals[1].TenantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Delete_Referenced(t *testing.T) {
	db, mock, gdb := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM "contacts"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_rentals_tenant"})

	err := NewContactRepository(gdb).Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrReferenced)
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(errors.New("UNIQUE constraint failed: contacts.email")), ErrDuplicate)
	assert.ErrorIs(t, translate(errors.New("FOREIGN KEY constraint failed")), ErrReferenced)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

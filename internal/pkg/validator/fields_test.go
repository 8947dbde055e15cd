package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"+54 221 123 4567", "+542211234567"},
		{"(221) 123-4567", "2211234567"},
		{"221.123.4567", "2211234567"},
		{"++54 221", "+54221"},
		{"54+221", "54221"},
		{"  +1 (555) 010-9999 ", "+15550109999"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"", "+", "++", "+54 (221) 123-4567", "1.2.3", "abc 12", "+ 1 + 2", "(((", "0054 9 11 5555-1234"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "input %q", in)
	}
}

func FuzzNormalizePhone(f *testing.F) {
	f.Add("+54 221 123 4567")
	f.Add("(221) 123-4567")
	f.Add("++--..")
	f.Fuzz(func(t *testing.T, in string) {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Fatalf("NormalizePhone not idempotent for %q: %q then %q", in, once, twice)
		}
	})
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ana@example.com"))
	assert.True(t, ValidateEmail("  Ana.Perez+web@inmo.com.ar "))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("   "))
	assert.False(t, ValidateEmail("ana@example"))
	assert.False(t, ValidateEmail("ana@example.abcdefg"))
	assert.False(t, ValidateEmail("ana.example.com"))
}

func TestValidatePhoneDigits(t *testing.T) {
	phone, err := ValidatePhoneDigits("+54 221 123 4567")
	require.NoError(t, err)
	assert.Equal(t, "+542211234567", phone)

	_, err = ValidatePhoneDigits("123456789")
	assert.True(t, IsCode(err, CodeInvalidPhoneFormat))

	_, err = ValidatePhoneDigits("1234567890123456")
	assert.True(t, IsCode(err, CodeInvalidPhoneFormat))

	_, err = ValidatePhoneDigits("tel 221 123 4567")
	assert.True(t, IsCode(err, CodeInvalidPhoneFormat))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateDateRange(t *testing.T) {
	r, err := ValidateDateRange("2025-01-01", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), r.End)

	r, err = ValidateDateRange("01/03/2025", "2025-09-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.March, r.Start.Month())
	assert.Equal(t, 0, r.End.Hour())

	_, err = ValidateDateRange("2025-02-30", "2025-06-01")
	assert.True(t, IsCode(err, CodeInvalidDate))

	_, err = ValidateDateRange("2025-01-01", "soon")
	assert.True(t, IsCode(err, CodeInvalidDate))

	_, err = ValidateDateRange("2025-06-01", "2025-06-01")
	assert.True(t, IsCode(err, CodeEndBeforeStart))

	_, err = ValidateDateRange("2025-06-01", "2025-01-01")
	assert.True(t, IsCode(err, CodeEndBeforeStart))
}

func TestValidateAmountAndCurrency(t *testing.T) {
	assert.NoError(t, ValidateAmount("monthly_amount", 350000))
	assert.True(t, IsCode(ValidateAmount("monthly_amount", 0), CodeInvalidAmount))
	assert.True(t, IsCode(ValidateAmount("monthly_amount", -10), CodeInvalidAmount))

	cur, err := NormalizeCurrency(" usd ", "ARS")
	require.NoError(t, err)
	assert.Equal(t, "USD", cur)

	cur, err = NormalizeCurrency("", "ars")
	require.NoError(t, err)
	assert.Equal(t, "ARS", cur)

	_, err = NormalizeCurrency("BTC", "ARS")
	assert.True(t, IsCode(err, CodeInvalidCurrency))
}

func TestValidate_StructTags(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Phone string `validate:"omitempty,phone"`
		Email string `validate:"omitempty,loose_email"`
	}

	assert.Nil(t, Validate(req{Name: "Ana", Phone: "+54 221 123 4567", Email: "ana@example.com"}))

	errs := Validate(req{Phone: "123", Email: "nope"})
	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "phone", errs["Phone"])
	assert.Equal(t, "loose_email", errs["Email"])
}

func TestCheck_FirstFieldWins(t *testing.T) {
	type req struct {
		Phone string `json:"phone" validate:"required,phone"`
		Email string `json:"email" validate:"omitempty,loose_email"`
		Kind  string `json:"kind" validate:"oneof=a b"`
	}

	assert.NoError(t, Check(req{Phone: "+54 221 123 4567", Kind: "a"}))

	err := Check(req{Phone: "+54 221 123 4567", Email: "nope", Kind: "z"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, IsCode(err, CodeInvalidEmail))

	err = Check(req{Phone: "+54 221 123 4567", Kind: "z"})
	assert.True(t, IsCode(err, CodeInvalidValue))

	var ve *ValidationError
	require.ErrorAs(t, Check(req{Kind: "a"}), &ve)
	assert.Equal(t, "phone", ve.Field)
	assert.Equal(t, CodeRequired, ve.Code)
}

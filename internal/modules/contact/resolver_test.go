package contact

import (
	"context"
	"errors"
	"testing"

	"brokerage/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactFinder struct {
	mock.Mock
}

func (m *MockContactFinder) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactFinder) FindByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func TestResolve_PhoneWinsOverEmail(t *testing.T) {
	finder := new(MockContactFinder)
	a := &domain.Contact{ID: 1, Phone: "+542211234567"}

	finder.On("FindByPhone", mock.Anything, "+542211234567").Return(a, nil)

	res, err := NewResolver(finder).Resolve(context.Background(), Candidate{
		Phone: "+54 221 123 4567",
		Email: "b@example.com",
	})

	require.NoError(t, err)
	assert.True(t, res.Found())
	assert.Equal(t, int64(1), res.Contact.ID)
	assert.Equal(t, MatchPhone, res.MatchedBy)
	finder.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestResolve_FallsBackToEmail(t *testing.T) {
	finder := new(MockContactFinder)
	b := &domain.Contact{ID: 2, Email: "b@example.com"}

	finder.On("FindByPhone", mock.Anything, "2211234567").Return(nil, nil)
	finder.On("FindByEmail", mock.Anything, "b@example.com").Return(b, nil)

	res, err := NewResolver(finder).Resolve(context.Background(), Candidate{
		Phone: "(221) 123-4567",
		Email: " B@Example.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Contact.ID)
	assert.Equal(t, MatchEmail, res.MatchedBy)
	finder.AssertExpectations(t)
}

func TestResolve_NotFound(t *testing.T) {
	finder := new(MockContactFinder)
	finder.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)

	res, err := NewResolver(finder).Resolve(context.Background(), Candidate{Email: "new@example.com"})

	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Equal(t, MatchNone, res.MatchedBy)
	finder.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}

func TestResolve_MissingIdentity(t *testing.T) {
	finder := new(MockContactFinder)
	_, err := NewResolver(finder).Resolve(context.Background(), Candidate{Phone: " - ", Email: "  "})
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestResolve_StoreFailure(t *testing.T) {
	finder := new(MockContactFinder)
	boom := errors.New("connection reset")
	finder.On("FindByPhone", mock.Anything, "+542211234567").Return(nil, boom)

	_, err := NewResolver(finder).Resolve(context.Background(), Candidate{Phone: "+542211234567"})
	assert.ErrorIs(t, err, boom)
}

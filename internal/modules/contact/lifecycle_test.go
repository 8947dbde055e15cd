package contact

import (
	"testing"

	"brokerage/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	all := []domain.ContactCategory{domain.CategoryLead, domain.CategoryTenant, domain.CategoryOwner}
	allowed := map[[2]domain.ContactCategory]bool{
		{domain.CategoryLead, domain.CategoryTenant}: true,
		{domain.CategoryLead, domain.CategoryOwner}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			err := CheckTransition(from, to)
			if allowed[[2]domain.ContactCategory{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var te *TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, from, te.From)
			assert.Equal(t, to, te.To)
		}
	}
}

package token

import (
	"testing"
	"time"

	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = domain.AdminUser{
	ID:    "user-1",
	Email: "admin@babisha.com",
	Name:  "Admin User",
	Role:  "admin",
}

func TestIssueVerify(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		a := NewAuthority("test-secret", time.Hour)

		signed, err := a.Issue(testUser)
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		claims, err := a.Verify(signed)
		require.NoError(t, err)
		assert.Equal(t, testUser.ID, claims.UserID)
		assert.Equal(t, testUser.Email, claims.Email)
		assert.Equal(t, testUser.Name, claims.Name)
		assert.Equal(t, testUser.Role, claims.Role)
	})

	t.Run("Expired", func(t *testing.T) {
		a := NewAuthority("test-secret", time.Hour)

		issuedAt := time.Now().Add(-2 * time.Hour)
		a.now = func() time.Time { return issuedAt }
		signed, err := a.Issue(testUser)
		require.NoError(t, err)

		a.now = time.Now
		_, err = a.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		signed, err := NewAuthority("secret-a", time.Hour).Issue(testUser)
		require.NoError(t, err)

		_, err = NewAuthority("secret-b", time.Hour).Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		a := NewAuthority("test-secret", time.Hour)

		for _, raw := range []string{"", "not-a-token", "a.b.c"} {
			_, err := a.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		}
	})

	t.Run("ZeroTTLUsesDefault", func(t *testing.T) {
		a := NewAuthority("test-secret", 0)
		assert.Equal(t, DefaultTTL, a.ttl)
	})
}

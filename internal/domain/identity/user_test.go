package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid username and password", func(t *testing.T) {
		user, err := NewUser("admin", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Password123", user.PasswordHash)
		assert.Nil(t, user.AgreementAcceptedAt)
		assert.Equal(t, 1, user.GetVersion())

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes username", func(t *testing.T) {
		user, err := NewUser("  Admin.User  ", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "admin.user", user.Username)
	})

	tests := []struct {
		name     string
		username string
		password string
		msg      string
	}{
		{"empty username", "", "Password123", "cannot be empty"},
		{"short username", "ab", "Password123", "at least 3 characters"},
		{"long username", strings.Repeat("a", 101), "Password123", "cannot exceed 100"},
		{"invalid username characters", "ad min", "Password123", "only contain letters"},
		{"empty password", "admin", "", "cannot be empty"},
		{"short password", "admin", "Pass1", "at least 8 characters"},
		{"long password", "admin", strings.Repeat("a1", 65), "cannot exceed 128"},
		{"password without digits", "admin", "Password", "at least one letter and one number"},
		{"password without letters", "admin", "12345678", "at least one letter and one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.password)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestUser_VerifyPassword(t *testing.T) {
	user, err := NewUser("admin", "Password123")
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("Password123"))
	assert.False(t, user.VerifyPassword("password123"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("admin", "Password123")
	require.NoError(t, err)

	err = user.ChangePassword("wrong", "NewPassword1")
	assert.ErrorContains(t, err, "incorrect")

	err = user.ChangePassword("Password123", "short")
	assert.ErrorContains(t, err, "at least 8 characters")

	require.NoError(t, user.ChangePassword("Password123", "NewPassword1"))
	assert.True(t, user.VerifyPassword("NewPassword1"))
}

func TestUser_SetEmail(t *testing.T) {
	user, _ := NewUser("admin", "Password123")

	require.NoError(t, user.SetEmail(" Admin@Example.com "))
	assert.Equal(t, "admin@example.com", user.Email)

	assert.Error(t, user.SetEmail("not-an-email"))
	require.NoError(t, user.SetEmail(""))
	assert.Empty(t, user.Email)
}

func TestUser_AcceptAgreement(t *testing.T) {
	user, _ := NewUser("admin", "Password123")
	user.ClearDomainEvents()

	user.AcceptAgreement()
	require.True(t, user.HasAcceptedAgreement())
	first := *user.AgreementAcceptedAt
	assert.Len(t, user.GetDomainEvents(), 1)

	user.AcceptAgreement()
	assert.Equal(t, first, *user.AgreementAcceptedAt)
	assert.Len(t, user.GetDomainEvents(), 1)
}

func TestUser_LoginFailures(t *testing.T) {
	user, _ := NewUser("admin", "Password123")

	for i := 0; i < 4; i++ {
		assert.False(t, user.RecordLoginFailure(5, 15*time.Minute))
	}
	assert.False(t, user.IsLocked())
	assert.Equal(t, 4, user.FailedLogins)

	assert.True(t, user.RecordLoginFailure(5, 15*time.Minute))
	assert.True(t, user.IsLocked())
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *user.LockedUntil, time.Second)

	t.Run("expired lock is not in force", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		user.LockedUntil = &past
		assert.False(t, user.IsLocked())
	})

	t.Run("success resets the counter", func(t *testing.T) {
		user.RecordLoginFailure(5, 15*time.Minute)
		user.RecordLoginSuccess("127.0.0.1")

		assert.Zero(t, user.FailedLogins)
		assert.Nil(t, user.LockedUntil)
		assert.Equal(t, "127.0.0.1", user.LastLoginIP)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestUser_GetDisplayNameOrUsername(t *testing.T) {
	user, _ := NewUser("admin", "Password123")
	assert.Equal(t, "admin", user.GetDisplayNameOrUsername())

	require.NoError(t, user.SetDisplayName("Office Manager"))
	assert.Equal(t, "Office Manager", user.GetDisplayNameOrUsername())
}
